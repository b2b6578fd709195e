// ABOUTME: Tests for root command setup
// ABOUTME: Verifies subcommand registration and persistent flags

package commands

import "testing"

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "tablescout" {
		t.Errorf("Use = %q, want %q", cmd.Use, "tablescout")
	}

	wantCommands := []string{"chat", "index", "search", "mcp", "version"}
	for _, name := range wantCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, flag := range []string{"format", "quiet", "verbose"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command missing persistent flag %q", flag)
		}
	}

	if got := cmd.PersistentFlags().Lookup("format").DefValue; got != "text" {
		t.Errorf("format default = %q, want %q", got, "text")
	}
}
