package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/chanrelay/internal/schedule"
)

var (
	scheduleExpr  string
	scheduleCount int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show upcoming re-announcement times",
	RunE: func(_ *cobra.Command, _ []string) error {
		expr := scheduleExpr
		if expr == "" {
			expr = settings.AnnounceSchedule
		}
		if expr == "" {
			return errors.New("no schedule: set ANNOUNCE_SCHEDULE or pass --expr")
		}

		sched, err := schedule.New(expr, nil)
		if err != nil {
			return err
		}

		fmt.Printf("%-4s %-25s %s\n", "#", "Next Run", "In")
		fmt.Println(strings.Repeat("-", 48))
		now := time.Now()
		next := now
		for i := 1; i <= scheduleCount; i++ {
			next = sched.Next(next)
			if next.IsZero() {
				break
			}
			fmt.Printf("%-4d %-25s %s\n", i, next.Format("2006-01-02 15:04 MST"), next.Sub(now).Round(time.Minute))
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleExpr, "expr", "e", "", "Cron expression (e.g. '0 9 * * *'); defaults to ANNOUNCE_SCHEDULE")
	scheduleCmd.Flags().IntVarP(&scheduleCount, "count", "n", 5, "Number of upcoming runs to show")
}
