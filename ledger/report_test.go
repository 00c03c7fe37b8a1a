package ledger_test

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/attendance-ledger/ledger"
)

func TestFormatCheckIn(t *testing.T) {
	report := ledger.SessionReport{
		Identity: ledger.Identity{ID: "kido1023", DisplayName: "Ana"},
		OpenedAt: "Monday, 27 October 2025, 09:00:00",
	}
	assert.Equal(t, "Ana clocked IN at 09:00:00", ledger.FormatCheckIn(report))
}

func TestFormatCheckOut(t *testing.T) {
	report := ledger.SessionReport{
		Identity: ledger.Identity{ID: "kido1023", DisplayName: "Ana"},
		OpenedAt: "Monday, 27 October 2025, 09:00:00",
		ClosedAt: "15:30:00",
	}
	assert.Equal(t, "Ana clocked OUT at 15:30:00", ledger.FormatCheckOut(report))
}

func TestFormatSummary_Golden(t *testing.T) {
	report := ledger.SummaryReport{
		Date: ledger.NewCalendarDate(2025, time.October, 27),
		Entries: []ledger.SummaryEntry{
			{
				Identity: ledger.Identity{ID: "kido1023", DisplayName: "Ana"},
				OpenedAt: "Monday, 27 October 2025, 09:00:00",
				ClosedAt: "15:30:00",
				Status:   ledger.StatusComplete,
				Hours:    decimal.RequireFromString("6.5"),
			},
			{
				Identity: ledger.Identity{ID: "kido1007", DisplayName: "Ben"},
				OpenedAt: "Monday, 27 October 2025, 09:15:00",
				Status:   ledger.StatusOpen,
				Hours:    decimal.Zero,
			},
		},
		TotalHours: decimal.RequireFromString("6.5"),
	}

	g := goldie.New(t)
	g.Assert(t, "summary", []byte(ledger.FormatSummary(report)))
}
