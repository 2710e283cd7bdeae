package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/files"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

func newClearCommand(manager *files.Manager) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete today's sessions, break labels, and badges.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

			store, rec, err := loadStore(manager)
			if err != nil {
				return err
			}

			day := timeline.DayOf(time.Now().In(time.Local))
			store.ClearDay(day)
			rec.Sessions = store.Sessions
			rec.BreakLogs = store.BreakLogs
			rec.Badges, _ = achieve.DropDay(rec.Badges, day.Key())

			if err := manager.Save(rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", day.Key())
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the clear")

	return cmd
}
