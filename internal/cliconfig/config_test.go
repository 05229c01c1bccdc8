package cliconfig_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMillerDev/drafter/internal/cliconfig"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := cliconfig.NewConfig()

	assert.Equal(t, cliconfig.JSONFormat, cfg.Format)
	assert.False(t, cfg.Sourcemap)
	assert.False(t, cfg.Validate)
	assert.False(t, cfg.RequireName)
}

func TestRegisterFlags_ParsesValues(t *testing.T) {
	t.Parallel()

	cfg := cliconfig.NewConfig()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cfg.RegisterFlags(cmd.Flags())

	cmd.SetArgs([]string{"--format", "yaml", "--sourcemap", "--validate", "--require-name"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, cliconfig.YAMLFormat, cfg.Format)
	assert.True(t, cfg.Sourcemap)
	assert.True(t, cfg.Validate)
	assert.True(t, cfg.RequireName)
}

func TestRegisterCompletions_OffersFormats(t *testing.T) {
	t.Parallel()

	cfg := cliconfig.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	fn, ok := cmd.GetFlagCompletionFunc(cfg.Flags.Format)
	require.True(t, ok)

	values, directive := fn(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []string{"json", "yaml"}, values)
}
