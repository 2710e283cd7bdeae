package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakobkreft/caketimer/internal/version"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the caketimer version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
	return cmd
}
