package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glot/pkg/glot"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display glot version information and the number of bundled dialects.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "glot v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "SQL transpiler with %d dialects\n", len(glot.Dialects()))
		},
	}
}
