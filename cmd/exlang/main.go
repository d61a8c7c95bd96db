// Package main provides the CLI entry point for exlang-go.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exlang-go/pkg/exlang"
)

var (
	verbose zlog.VerboseVar
	logger  = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

	charset    string
	outputPath string
	force      bool
	format     string
)

// exitError carries a process exit code alongside the message.
type exitError struct {
	Code    int
	Message string
}

func (e *exitError) Error() string { return e.Message }

// verboseFlag adapts zlog.VerboseVar to pflag.Value.
type verboseFlag struct{ v *zlog.VerboseVar }

func (f verboseFlag) Set(s string) error { return f.v.Set(s) }
func (f verboseFlag) String() string     { return f.v.String() }
func (f verboseFlag) Type() string       { return "count" }

// newRootCmd wires the command tree. Flag registration resets the
// bound globals to their defaults, so each returned command starts
// from a clean state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "exlang",
		Short:         "Compile EXLang markup to Excel workbooks",
		Long:          "EXLang: a concise language for deterministic, versionable Excel generation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().VarP(verboseFlag{&verbose}, "verbose", "v", "verbose output")
	rootCmd.PersistentFlags().Lookup("verbose").NoOptDefVal = "1"
	rootCmd.PersistentFlags().StringVar(&charset, "charset", "", "input file charset (default UTF-8)")

	compileCmd := &cobra.Command{
		Use:   "compile [input.xlang]",
		Short: "Compile an EXLang file to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output Excel file path (default: input with .xlsx)")
	compileCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite output file if it exists")

	validateCmd := &cobra.Command{
		Use:   "validate [input.xlang...]",
		Short: "Validate one or more EXLang files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVar(&format, "format", "text", "output format (text or json)")

	rootCmd.AddCommand(compileCmd, validateCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	out := outputPath
	if out == "" {
		out = defaultOutputPath(inputPath)
	}

	if _, err := os.Stat(out); err == nil && !force {
		return &exitError{Code: 2,
			Message: fmt.Sprintf("Error: Output file '%s' already exists. Use --force to overwrite.", out)}
	}

	logger.Debug("compiling", "input", inputPath, "output", out, "charset", charset)

	err := exlang.CompileFile(inputPath, out, charset)
	if err != nil {
		if os.IsNotExist(err) {
			return &exitError{Code: 1,
				Message: fmt.Sprintf("Error: Input file '%s' not found.", inputPath)}
		}
		var vErr *exlang.ValidationError
		if errors.As(err, &vErr) {
			return &exitError{Code: 3,
				Message: "Validation error:\n" + vErr.Error()}
		}
		return err
	}

	if fi, err := os.Stat(out); err == nil {
		logger.Debug("compiled", "output", out, "size", fi.Size())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully compiled to %s\n", out)
	return nil
}

// defaultOutputPath derives the output file name from the input by
// swapping the extension for .xlsx.
func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".xlsx"
}

type validateResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type validateReport struct {
	Results []validateResult `json:"results"`
	Summary struct {
		Total   int `json:"total"`
		Valid   int `json:"valid"`
		Invalid int `json:"invalid"`
	} `json:"summary"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (must be text or json)", format)
	}

	allValid := true
	fileNotFound := false
	var report validateReport

	for _, inputPath := range args {
		logger.Debug("validating", "input", inputPath)

		result := validateResult{File: inputPath, Errors: []string{}}
		ok, errs, err := exlang.ValidateFile(inputPath, charset)
		switch {
		case err != nil:
			allValid = false
			if os.IsNotExist(err) {
				fileNotFound = true
				result.Errors = append(result.Errors, "File not found")
			} else {
				result.Errors = append(result.Errors, err.Error())
			}
		case !ok:
			allValid = false
			result.Errors = append(result.Errors, errs...)
		default:
			result.Valid = true
		}
		report.Results = append(report.Results, result)

		if format == "text" {
			printTextResult(cmd, result)
		}
	}

	if format == "json" {
		report.Summary.Total = len(report.Results)
		for _, r := range report.Results {
			if r.Valid {
				report.Summary.Valid++
			} else {
				report.Summary.Invalid++
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	switch {
	case fileNotFound:
		return &exitError{Code: 2}
	case !allValid:
		return &exitError{Code: 1}
	}
	return nil
}

func printTextResult(cmd *cobra.Command, r validateResult) {
	if r.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: Valid\n", r.File)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: Invalid\n", r.File)
	for _, e := range r.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e)
	}
}
