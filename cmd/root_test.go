package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{
		"deals", "submit", "review", "complete-conditions", "respond",
		"resubmit", "rescore", "rescore-all", "action-center", "summary",
		"deadline", "rules", "export", "serve",
	}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "nil-compliance", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDealsCommand_HasSubcommands(t *testing.T) {
	cmds := dealsCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"create", "get", "list", "events"} {
		assert.True(t, names[name], "deals should have subcommand %q", name)
	}
}

func TestDealsCreateCommand_RequiredFlags(t *testing.T) {
	flag := dealsCreateCmd.Flags().Lookup("facts")
	require.NotNil(t, flag, "deals create should have --facts flag")
}

func TestDealsListCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"athlete", "state", "status", "limit"} {
		flag := dealsListCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "deals list should have --%s flag", flagName)
	}
	assert.Equal(t, "100", dealsListCmd.Flags().Lookup("limit").DefValue)
}

func TestReviewCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"decision", "notes", "actor"} {
		flag := reviewCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "review should have --%s flag", flagName)
	}
}

func TestRulesCommand_HasSubcommands(t *testing.T) {
	cmds := rulesCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"list", "load"} {
		assert.True(t, names[name], "rules should have subcommand %q", name)
	}
}

func TestExportCommand_Flags(t *testing.T) {
	flag := exportCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "csv", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
