package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/files"
)

func newGoalCommand(manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal [minutes]",
		Short: "Show or set the daily goal in minutes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, rec, err := loadStore(manager)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "goal: %s\n", formatMinutes(store.GoalMinutes))
				return nil
			}

			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse minutes: %w", err)
			}
			store.SetGoal(minutes)
			rec.GoalMinutes = store.GoalMinutes
			if err := manager.Save(rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "goal set to %s\n", formatMinutes(store.GoalMinutes))
			return nil
		},
	}
	return cmd
}
