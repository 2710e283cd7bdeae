package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/files"
)

func newStreakCommand(manager *files.Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the consecutive-day streak.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rec, err := loadStore(manager)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "current: %d days\n", rec.Streak.Current)
			fmt.Fprintf(out, "best:    %d days\n", rec.Streak.Best)
			if rec.Streak.LastDay != "" {
				fmt.Fprintf(out, "last:    %s\n", rec.Streak.LastDay)
			}
			return nil
		},
	}
	return cmd
}
