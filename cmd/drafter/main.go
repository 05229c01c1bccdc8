// Command drafter is the CLI front-end for the blueprint parser (spec
// §6): "deliberately thin, not the core". It reads an API Blueprint
// document from stdin or a file argument and writes the parsed
// Blueprint and its diagnostic report as JSON or YAML.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	drafterlog "github.com/SMillerDev/drafter/log"
	"github.com/SMillerDev/drafter/profile"
)

func main() {
	os.Exit(run())
}

func run() int {
	logCfg := drafterlog.NewConfig()
	profileCfg := profile.NewConfig()

	root := &cobra.Command{
		Use:           "drafter",
		Short:         "Parse API Blueprint documents into a structured Blueprint tree",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().AddFlagSet(newPersistentFlagSet(logCfg, profileCfg))

	root.AddCommand(newParseCommand(logCfg, profileCfg))
	root.AddCommand(newVersionCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if ec, ok := err.(exitCoder); ok {
			return ec.ExitCode()
		}

		return 2
	}

	return 0
}

// exitCoder lets a command error carry a specific process exit code
// (spec §6: 0 success, 1 fatal parse error, 2 invalid invocation).
type exitCoder interface {
	error
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }
func (e *exitError) Unwrap() error { return e.err }
