package cli

import (
	"github.com/spf13/cobra"

	"github.com/skillhawk/skillhawk/internal/config"
	"github.com/skillhawk/skillhawk/internal/discover"
	"github.com/skillhawk/skillhawk/internal/output"
)

type validateOptions struct {
	Format         string
	Exclude        []string
	BaselinePath   string
	DisableSecrets bool
	MinScore       int
}

func newValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate, score, and security-scan skills",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return usageError(err)
			}
			if cmd.Flags().Changed("min-score") {
				cfg.Score.MinimumScore = opts.MinScore
			}

			paths, err := discover.Skills(target, opts.Exclude)
			if err != nil {
				return usageError(err)
			}
			if len(paths) == 0 {
				return &ExitError{Code: exitUsage, Message: "no SKILL.md files found under " + target}
			}

			engine, err := buildEngine(cfg, opts.DisableSecrets, opts.BaselinePath)
			if err != nil {
				return usageError(err)
			}
			analyzer := buildAnalyzer(cmd.Context(), cfg, engine)

			batch, err := analyzer.AnalyzeBatch(cmd.Context(), paths)
			if err != nil {
				return usageError(err)
			}

			if err := output.Render(cmd.OutOrStdout(), opts.Format, batch); err != nil {
				return usageError(err)
			}
			if !batch.Passed {
				return &ExitError{Code: exitFailure, Message: "validation failed"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", output.FormatCLI, "Output format: cli|json|github")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Glob patterns to skip (relative to path)")
	cmd.Flags().StringVar(&opts.BaselinePath, "baseline", "", "Accepted-findings baseline file")
	cmd.Flags().BoolVar(&opts.DisableSecrets, "no-secrets", false, "Disable secret detection")
	cmd.Flags().IntVar(&opts.MinScore, "min-score", 70, "Minimum passing global score")

	return cmd
}
