// Package cliconfig holds the CLI's own flag configuration, grounded on
// the teacher's repeated Flags/Config/RegisterFlags/RegisterCompletions
// convention (see profile.Config, profile.Flags): a Flags struct naming
// the flags, a Config struct holding the parsed values, NewConfig
// seeding both with defaults, and RegisterFlags/RegisterCompletions
// wiring them onto a [*pflag.FlagSet]/[*cobra.Command].
package cliconfig

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Format is an output serialization this CLI supports.
type Format string

const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// Flags holds the CLI flag names, so callers may rename them while
// keeping [NewConfig]'s defaults.
type Flags struct {
	Format      string
	Sourcemap   string
	Validate    string
	RequireName string
}

// NewConfig creates a [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f, Format: JSONFormat}
}

// Config holds the CLI's parsed flag values.
type Config struct {
	Flags Flags

	Format      Format
	Sourcemap   bool
	Validate    bool
	RequireName bool
}

// NewConfig creates a [Config] with default flag names and values
// (spec §6): `--format json`, sourcemap and validate-only both off.
func NewConfig() *Config {
	f := Flags{
		Format:      "format",
		Sourcemap:   "sourcemap",
		Validate:    "validate",
		RequireName: "require-name",
	}

	return f.NewConfig()
}

// RegisterFlags adds the CLI's flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar((*string)(&c.Format), c.Flags.Format, string(JSONFormat), "output format: json or yaml")
	flags.BoolVar(&c.Sourcemap, c.Flags.Sourcemap, false, "set the parser's ExportSourcemap option; the output carries no source-map tree")
	flags.BoolVar(&c.Validate, c.Flags.Validate, false, "parse only, report diagnostics, and exit without emitting a document")
	flags.BoolVar(&c.RequireName, c.Flags.RequireName, false, "treat a missing blueprint name as a fatal error")
}

// RegisterCompletions registers shell completions for the CLI's flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(c.Flags.Format, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(JSONFormat), string(YAMLFormat)}, cobra.ShellCompDirectiveNoFileComp
	})
}
