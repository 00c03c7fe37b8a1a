/*
main.go - CLI front-end for the attendance ledger

PURPOSE:
  A local command-line calling layer over the same ledger service the
  server exposes. Useful at the front desk and for admin chores the chat
  surface does not cover (seeding the roster, listing partitions).

COMMANDS:
  attendance in <id>              clock a child in
  attendance out <id>             clock a child out
  attendance summary [date...]    report for a day ("today" when omitted)
  attendance roster add <id> <name>
  attendance partitions           list month partitions

SEE ALSO:
  - cmd/server/main.go: HTTP front-end
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warp/attendance-ledger/ledger"
	"github.com/warp/attendance-ledger/store/sqlite"
)

func main() {
	var dbPath string

	var store *sqlite.Store
	var svc *ledger.Service

	rootCmd := &cobra.Command{
		Use:   "attendance",
		Short: "Daily clock-in/clock-out ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			store, err = sqlite.New(dbPath)
			if err != nil {
				return err
			}
			if _, err := store.CreatePartition(cmd.Context(), ledger.TemplatePartition); err != nil {
				return err
			}
			svc = ledger.NewService(store, store)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "attendance.db", "SQLite database path")

	inCmd := &cobra.Command{
		Use:   "in [id]",
		Short: "Clock a child in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := svc.CheckIn(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			fmt.Println(ledger.FormatCheckIn(report))
			return nil
		},
	}

	outCmd := &cobra.Command{
		Use:   "out [id]",
		Short: "Clock a child out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := svc.CheckOut(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			fmt.Println(ledger.FormatCheckOut(report))
			return nil
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [date...]",
		Short: "Show one day's attendance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := svc.Summarize(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(err)
			}
			fmt.Println(ledger.FormatSummary(report))
			return nil
		},
	}

	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage roster entries",
	}
	rosterAddCmd := &cobra.Command{
		Use:   "add [id] [name]",
		Short: "Add or update a roster entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ledger.CanonicalID(args[0])
			if err := store.AddIdentity(cmd.Context(), ledger.Identity{ID: id, DisplayName: args[1]}); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", args[1], id)
			return nil
		},
	}
	rosterCmd.AddCommand(rosterAddCmd)

	partitionsCmd := &cobra.Command{
		Use:   "partitions",
		Short: "List month partitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListPartitions(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(partitionsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// userError keeps ledger errors on one clean line; cobra prints them.
func userError(err error) error {
	if ledger.IsClientError(err) {
		return fmt.Errorf("%s", err.Error())
	}
	return err
}
