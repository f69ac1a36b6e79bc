package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

type Command = cobra.Command

func TestValidateFlagDefaults(t *testing.T) {
	cmd := newValidateCommand()

	tests := []struct {
		flag string
		want string
	}{
		{"format", "cli"},
		{"baseline", ""},
		{"min-score", "70"},
	}

	for _, tc := range tests {
		got := cmd.Flag(tc.flag)
		if got == nil {
			t.Fatalf("flag %q missing", tc.flag)
		}
		if got.DefValue != tc.want {
			t.Fatalf("flag %q default = %q, want %q", tc.flag, got.DefValue, tc.want)
		}
	}

	noSecrets := cmd.Flag("no-secrets")
	if noSecrets == nil {
		t.Fatal("flag no-secrets missing")
	}
	if noSecrets.DefValue != "false" {
		t.Fatalf("flag no-secrets default = %q, want false", noSecrets.DefValue)
	}
}

func TestScanFlagDefaults(t *testing.T) {
	cmd := newScanCommand()

	tests := []struct {
		flag string
		want string
	}{
		{"format", "cli"},
		{"baseline", ""},
	}

	for _, tc := range tests {
		got := cmd.Flag(tc.flag)
		if got == nil {
			t.Fatalf("flag %q missing", tc.flag)
		}
		if got.DefValue != tc.want {
			t.Fatalf("flag %q default = %q, want %q", tc.flag, got.DefValue, tc.want)
		}
	}
}
