package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// BuildVersion is overridden by release tooling (e.g. goreleaser).
var BuildVersion = "0.1.0-dev"

func NewRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "skillhawk",
		Short:         "Agent skill validation and security scanning",
		Long:          "SkillHawk validates, scores, and security-scans agent skill packages.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newValidateCommand(),
		newScanCommand(),
		newScaffoldCommand(),
		newRegistryCommand(),
		newVerifyCommand(),
		newVersionCommand(),
	)

	return cmd
}
