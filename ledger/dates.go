/*
dates.go - Calendar dates and the free-text date interpreter

PURPOSE:
  Everything that turns text into a calendar date lives here, and only
  here. Two very different inputs share the machinery:

  1. User-supplied date expressions ("today", "yesterday", "23/4",
     "23 April") on the summary path -> Interpret.
  2. Stored session timestamps, whose format drifted across historical
     partitions -> ExtractDateFromTimestamp.

RESOLUTION ORDER (Interpret, first success wins):
  1. "" or "today"        -> current local date
  2. "yesterday"          -> current local date minus one day
  3. D/M or D-M           -> that day/month in the current year
  4. month-name shapes    -> "23 April [2026]" / "April 23[, 2026]",
                             full or three-letter month, year optional
  5. general parse        -> dateparse.ParseAny

  The month-name layer sits in front of the general parser because the
  facility's own timestamp convention must resolve identically on every
  host, independent of what the library happens to accept.

TIMESTAMP EXTRACTION:
  Historical partitions contain non-breaking spaces, narrow no-break
  spaces, and zero-width characters pasted in from other tools. All input
  is pushed through an x/text transform chain first (format characters
  stripped, exotic space separators mapped to ASCII space). Extraction
  never returns an error: a timestamp that yields no date simply matches
  no date, and the caller skips the row.

SEE ALSO:
  - matcher.go: uses ExtractDateFromTimestamp to match sessions to days
  - summary.go: uses it to classify rows for a day's report
*/
package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// =============================================================================
// CALENDAR DATE - Day-granular date value
// =============================================================================

// CalendarDate is a single calendar day in the host's local calendar.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate builds a date from its parts.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns local midnight of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d CalendarDate) Equal(other CalendarDate) bool { return d == other }
func (d CalendarDate) IsZero() bool                  { return d == CalendarDate{} }

// AddDays returns the date n days later (negative n for earlier).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Format renders the date with a time.Time layout.
func (d CalendarDate) Format(layout string) string {
	return d.Time().Format(layout)
}

func (d CalendarDate) String() string {
	return d.Format("2006-01-02")
}

// validDate rejects overflowing day/month combinations ("31/2") that
// time.Date would silently normalize into the next month.
func validDate(year int, month time.Month, day int) (CalendarDate, bool) {
	if month < time.January || month > time.December || day < 1 {
		return CalendarDate{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return CalendarDate{}, false
	}
	return DateOf(t), true
}

// =============================================================================
// WHITESPACE NORMALIZATION
// =============================================================================

// whitespaceNormalizer strips Unicode format characters (zero-width space,
// joiners, BOM) and maps every space separator (NBSP, narrow NBSP, ...) to
// a plain ASCII space.
var whitespaceNormalizer = transform.Chain(
	runes.Remove(runes.In(unicode.Cf)),
	runes.Map(func(r rune) rune {
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}),
)

func normalizeWhitespace(s string) string {
	out, _, err := transform.String(whitespaceNormalizer, s)
	if err != nil {
		return s
	}
	return out
}

// =============================================================================
// DATE INTERPRETER
// =============================================================================

var (
	dayMonthNumeric = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)

	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	// "23 April 2026", "23rd Apr", "Monday, 27 October 2025, 09:00:00"
	dayMonthName = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNames + `)\.?(?:,?\s+(\d{4}))?\b`)
	// "April 23, 2026", "Apr 23"
	monthNameDay = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
)

// DateInterpreter resolves free-form text into calendar dates. The zero
// value is usable; Now is overridable for tests.
type DateInterpreter struct {
	Now func() time.Time
}

// NewDateInterpreter returns an interpreter on the host clock.
func NewDateInterpreter() *DateInterpreter {
	return &DateInterpreter{Now: time.Now}
}

func (di *DateInterpreter) now() time.Time {
	if di.Now != nil {
		return di.Now()
	}
	return time.Now()
}

// Interpret parses a user-supplied date expression. Returns
// AmbiguousDateError when no strategy succeeds.
func (di *DateInterpreter) Interpret(text string) (CalendarDate, error) {
	input := strings.TrimSpace(normalizeWhitespace(text))

	switch strings.ToLower(input) {
	case "", "today":
		return DateOf(di.now()), nil
	case "yesterday":
		return DateOf(di.now().AddDate(0, 0, -1)), nil
	}

	if m := dayMonthNumeric.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if d, ok := validDate(di.now().Year(), time.Month(month), day); ok {
			return d, nil
		}
		return CalendarDate{}, &AmbiguousDateError{Input: text}
	}

	if d, ok := di.matchMonthName(input, true); ok {
		return d, nil
	}

	if t, err := dateparse.ParseAny(input); err == nil {
		return DateOf(t), nil
	}

	return CalendarDate{}, &AmbiguousDateError{Input: text}
}

// ExtractDateFromTimestamp recovers the calendar date encoded in a stored
// session timestamp. Returns ok=false, never an error, when the text yields
// no date; callers treat that as "matches no day".
func (di *DateInterpreter) ExtractDateFromTimestamp(text string) (CalendarDate, bool) {
	input := strings.TrimSpace(normalizeWhitespace(text))
	if input == "" {
		return CalendarDate{}, false
	}

	// Stored timestamps always carry an explicit year; a yearless match
	// here would silently pin historical rows to the current year.
	if d, ok := di.matchMonthName(input, false); ok {
		return d, true
	}

	if t, err := dateparse.ParseAny(input); err == nil {
		return DateOf(t), true
	}

	return CalendarDate{}, false
}

// matchMonthName tries the day-first shape, then the month-first shape.
func (di *DateInterpreter) matchMonthName(input string, allowYearless bool) (CalendarDate, bool) {
	if m := dayMonthName.FindStringSubmatch(input); m != nil {
		if d, ok := di.dateFromParts(m[2], m[1], m[3], allowYearless); ok {
			return d, true
		}
	}
	if m := monthNameDay.FindStringSubmatch(input); m != nil {
		if d, ok := di.dateFromParts(m[1], m[2], m[3], allowYearless); ok {
			return d, true
		}
	}
	return CalendarDate{}, false
}

func (di *DateInterpreter) dateFromParts(monthText, dayText, yearText string, allowYearless bool) (CalendarDate, bool) {
	month, ok := monthByName(monthText)
	if !ok {
		return CalendarDate{}, false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return CalendarDate{}, false
	}
	year := 0
	if yearText == "" {
		if !allowYearless {
			return CalendarDate{}, false
		}
		year = di.now().Year()
	} else {
		year, _ = strconv.Atoi(yearText)
	}
	return validDate(year, month, day)
}

// monthByName resolves a full or abbreviated English month name.
func monthByName(name string) (time.Month, bool) {
	if len(name) < 3 {
		return 0, false
	}
	prefix := strings.ToLower(name[:3])
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()[:3]) == prefix {
			return m, true
		}
	}
	return 0, false
}
