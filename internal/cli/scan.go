package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillhawk/skillhawk/internal/config"
	"github.com/skillhawk/skillhawk/internal/discover"
	"github.com/skillhawk/skillhawk/internal/model"
	"github.com/skillhawk/skillhawk/internal/parser"
	"github.com/skillhawk/skillhawk/internal/verify"
)

type scanOptions struct {
	Format         string
	Exclude        []string
	BaselinePath   string
	DisableSecrets bool
	Verify         bool
}

// scanResult pairs one skill with its security result for JSON output.
type scanResult struct {
	Skill    string                   `json:"skill"`
	Path     string                   `json:"path"`
	Security model.SecurityScanResult `json:"security"`
}

func newScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Run only the security scanner",
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

			results := make([]scanResult, 0, len(paths))
			secure := true
			for _, path := range paths {
				skill, err := parser.ParseFile(path)
				if err != nil {
					return usageError(err)
				}
				res, err := engine.Scan(cmd.Context(), skill)
				if err != nil {
					return usageError(err)
				}
				if opts.Verify {
					verify.AnnotateFindings(cmd.Context(), res.Findings, verify.Registry())
				}
				results = append(results, scanResult{Skill: skill.Name, Path: path, Security: res})
				if !res.IsSecure {
					secure = false
				}
			}

			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return usageError(err)
				}
			} else {
				for _, r := range results {
					status := "secure"
					if !r.Security.IsSecure {
						status = fmt.Sprintf("%d findings, max severity %s",
							len(r.Security.Findings), r.Security.MaxSeverity)
					}
					fmt.Fprintf(w, "%s: %s\n", r.Skill, status)
					for _, f := range r.Security.Findings {
						fmt.Fprintf(w, "  [%s] %s: %s (%s)\n", f.Severity, f.Category, f.Description, f.Location)
					}
				}
			}

			if !secure {
				return &ExitError{Code: exitFailure, Message: "insecure skills found"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "cli", "Output format: cli|json")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Glob patterns to skip (relative to path)")
	cmd.Flags().StringVar(&opts.BaselinePath, "baseline", "", "Accepted-findings baseline file")
	cmd.Flags().BoolVar(&opts.DisableSecrets, "no-secrets", false, "Disable secret detection")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Probe whether detected secrets are still active")

	return cmd
}
