package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newOutdatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "List source files a build would recompile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := c.app.Outdated(cmd.Context(), projectRoot(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, file := range files {
				_, _ = fmt.Fprintln(out, file)
			}
			return nil
		},
	}
}
