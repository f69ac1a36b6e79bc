package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillhawk/skillhawk/internal/verify"
)

func newVerifyCommand() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "verify <secret>",
		Short: "Check whether a leaked credential is still active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := args[0]

			var v verify.Verifier
			var err error
			if provider != "" {
				v, err = verify.ByName(provider)
				if err != nil {
					return usageError(err)
				}
			} else if v = verify.ForSecret(secret); v == nil {
				return &ExitError{Code: exitUsage, Message: "unrecognized secret shape; use --provider"}
			}

			res, err := v.Verify(cmd.Context(), secret)
			if err != nil {
				return usageError(err)
			}

			payload, err := json.MarshalIndent(map[string]any{
				"provider": v.Name(),
				"active":   res.Active,
				"method":   res.Method,
				"details":  res.Details,
				"checked":  res.CheckedAt,
			}, "", "  ")
			if err != nil {
				return usageError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))

			if res.Active {
				return &ExitError{Code: exitFailure, Message: "credential is active"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Verifier to use (aws|github)")
	return cmd
}
