package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

func newTodayCommand(manager *files.Manager) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the worked sessions and breaks for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			store, rec, err := loadStore(manager)
			if err != nil {
				return err
			}

			day := timeline.DayOf(target)
			now := time.Now().UnixMilli()
			store.AssignDefaultNames(day)

			printDay(cmd, store, rec, day, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}

func printDay(cmd *cobra.Command, store *timeline.Store, rec files.Record, day timeline.Day, now int64) {
	out := cmd.OutOrStdout()

	segs := timeline.SegmentsForDay(day, now, store.Sessions)
	workedMS := int64(timeline.WorkedSeconds(day, now, store.Sessions) * 1000)

	fmt.Fprintf(out, "%s  worked %s / goal %s\n", day.Key(), formatDur(workedMS), formatMinutes(store.GoalMinutes))

	if len(segs) == 0 {
		fmt.Fprintln(out, "(no sessions)")
	} else {
		fmt.Fprintln(out)
		gaps := timeline.GapsForDay(day, now, segs)
		for i, seg := range segs {
			fmt.Fprintf(out, "  %s-%s  %s  %s\n",
				formatClock(seg.StartMS), formatClock(seg.EndMS), seg.Tag, formatDur(seg.EndMS-seg.StartMS))
			if i == len(segs)-1 {
				break
			}
			// The break between this segment and the next.
			for _, gap := range gaps {
				if gap.StartMS != seg.EndMS {
					continue
				}
				label := "(break)"
				if idx := store.FindBreakLog(gap.StartMS, gap.EndMS, gap.StartMS+(gap.EndMS-gap.StartMS)/2); idx >= 0 {
					label = store.BreakLogs[idx].Tag
				}
				fmt.Fprintf(out, "  %s-%s  %s  %s\n",
					formatClock(gap.StartMS), formatClock(gap.EndMS), label, formatDur(gap.EndMS-gap.StartMS))
				break
			}
		}
	}

	if totals := store.WorkTagTotals(day); len(totals) > 0 {
		fmt.Fprintln(out, "\nwork:")
		for _, tt := range totals {
			fmt.Fprintf(out, "  %s  %s\n", tt.Tag, formatDur(tt.MS))
		}
	}
	if totals := store.BreakTagTotals(day); len(totals) > 0 {
		fmt.Fprintln(out, "breaks:")
		for _, tt := range totals {
			fmt.Fprintf(out, "  %s  %s\n", tt.Tag, formatDur(tt.MS))
		}
	}

	if badges := achieve.ForDay(rec.Badges, day.Key()); len(badges) > 0 {
		names := make([]string, len(badges))
		for i, b := range badges {
			names[i] = b.ID.Label()
		}
		fmt.Fprintf(out, "badges: %s\n", strings.Join(names, ", "))
	}
}
