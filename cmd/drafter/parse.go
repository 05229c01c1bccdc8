package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	goyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/SMillerDev/drafter/blueprint"
	"github.com/SMillerDev/drafter/internal/cliconfig"
	"github.com/SMillerDev/drafter/internal/mdparse"
	drafterlog "github.com/SMillerDev/drafter/log"
	"github.com/SMillerDev/drafter/profile"
)

var errInvalidFormat = errors.New("invalid --format value")

func newParseCommand(logCfg *drafterlog.Config, profileCfg *profile.Config) *cobra.Command {
	cliCfg := cliconfig.NewConfig()

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an API Blueprint document and print its Blueprint tree and diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, cliCfg, logCfg, profileCfg)
		},
	}

	cliCfg.RegisterFlags(cmd.Flags())

	if err := cliCfg.RegisterCompletions(cmd); err != nil {
		panic(err)
	}

	return cmd
}

// parseOutput is the document emitted to stdout: the parsed Blueprint
// alongside its diagnostic report (spec §6's output pair).
type parseOutput struct {
	Blueprint *blueprint.Blueprint `json:"blueprint" yaml:"blueprint"`
	Errors    []diagnosticError    `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings  []diagnosticWarning  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type diagnosticError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

type diagnosticWarning struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func runParse(cmd *cobra.Command, args []string, cliCfg *cliconfig.Config, logCfg *drafterlog.Config, profileCfg *profile.Config) error {
	handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	logger := slog.New(handler)

	profiler := profileCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return &exitError{code: 2, err: err}
	}

	defer func() {
		if err := profiler.Stop(); err != nil {
			logger.Error("stopping profiler", "error", err)
		}
	}()

	src, err := readInput(cmd, args)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	if cliCfg.Format != cliconfig.JSONFormat && cliCfg.Format != cliconfig.YAMLFormat {
		return &exitError{code: 2, err: fmt.Errorf("%w: %q", errInvalidFormat, cliCfg.Format)}
	}

	root := mdparse.Parse(src)

	bp, report := blueprint.Parse(root, blueprint.Options{
		ExportSourcemap:      cliCfg.Sourcemap,
		RequireBlueprintName: cliCfg.RequireName,
	})

	logger.Info("parsed blueprint", "resource_groups", len(bp.ResourceGroups), "warnings", len(report.Warnings))

	var errs []diagnosticError
	if report.Err != nil {
		errs = []diagnosticError{{Code: string(report.Err.Code), Message: report.Err.Message}}
	}

	var warnings []diagnosticWarning
	for _, w := range report.Warnings {
		warnings = append(warnings, diagnosticWarning{Code: string(w.Code), Message: w.Message})
	}

	var writeErr error

	if cliCfg.Validate {
		writeErr = writeOutput(cmd.OutOrStdout(), cliCfg.Format, struct {
			Errors   []diagnosticError   `json:"errors,omitempty" yaml:"errors,omitempty"`
			Warnings []diagnosticWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
		}{errs, warnings})
	} else {
		writeErr = writeOutput(cmd.OutOrStdout(), cliCfg.Format, parseOutput{Blueprint: bp, Errors: errs, Warnings: warnings})
	}

	if writeErr != nil {
		return &exitError{code: 2, err: writeErr}
	}

	if report.Err != nil {
		return &exitError{code: 1, err: errors.New(report.Err.Message)}
	}

	return nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}

	return io.ReadAll(cmd.InOrStdin())
}

func writeOutput(w io.Writer, format cliconfig.Format, v any) error {
	if format == cliconfig.YAMLFormat {
		enc := goyaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(v)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
