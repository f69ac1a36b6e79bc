package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillhawk/skillhawk/internal/scaffold"
)

func newScaffoldCommand() *cobra.Command {
	var (
		dir         string
		description string
	)

	cmd := &cobra.Command{
		Use:   "scaffold <name>",
		Short: "Generate a starter SKILL.md",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scaffold.Create(dir, args[0], description)
			if err != nil {
				return usageError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Parent directory for the new skill")
	cmd.Flags().StringVar(&description, "description", "", "Initial skill description")

	return cmd
}
