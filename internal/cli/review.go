package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// reviewDays is the window of the history report: four full weeks.
const reviewDays = 28

func newReviewCommand(manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show a four-week history of worked time per day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadStore(manager)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			now := time.Now().UnixMilli()
			goalMS := int64(store.GoalMinutes) * timeline.MsPerMinute

			today := time.Now().In(time.Local)
			var weekTotal int64
			for i := reviewDays - 1; i >= 0; i-- {
				date := today.AddDate(0, 0, -i)
				day := timeline.DayOf(date)

				if date.Weekday() == time.Monday || i == reviewDays-1 {
					if i != reviewDays-1 {
						fmt.Fprintf(out, "  week total %s\n\n", formatDur(weekTotal))
					}
					fmt.Fprintf(out, "Week of %s\n", weekStart(date).Format("02 Jan"))
					weekTotal = 0
				}

				workedMS := int64(timeline.WorkedSeconds(day, now, store.Sessions) * 1000)
				weekTotal += workedMS

				marker := ""
				if goalMS > 0 && workedMS >= goalMS {
					marker = "  *"
				}
				fmt.Fprintf(out, "  %s  %-7s %s%s\n",
					date.Format("Mon 02"), formatDur(workedMS), bar(workedMS, goalMS), marker)
			}
			fmt.Fprintf(out, "  week total %s\n", formatDur(weekTotal))
			if goalMS > 0 {
				fmt.Fprintln(out, "\n* goal reached")
			}
			return nil
		},
	}
	return cmd
}

func weekStart(date time.Time) time.Time {
	// Weeks start on Monday.
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func bar(value, max int64) string {
	const width = 12
	if max <= 0 {
		max = 8 * timeline.MsPerHour
	}
	filled := int(int64(width) * value / max)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
