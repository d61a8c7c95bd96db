// Package exlang compiles EXLang markup, a small declarative language
// for describing spreadsheet content, into an in-memory spreadsheet
// model and on to an XLSX file. It ties together the markup parser,
// the schema validator, the model compiler and the output sink.
package exlang

import (
	"github.com/ukaji3/exlang-go/pkg/exlang/compiler"
	"github.com/ukaji3/exlang-go/pkg/exlang/markup"
	"github.com/ukaji3/exlang-go/pkg/exlang/models"
	"github.com/ukaji3/exlang-go/pkg/exlang/output"
	"github.com/ukaji3/exlang-go/pkg/exlang/validator"
)

// Compile parses, validates and compiles an EXLang document into a
// spreadsheet model.
//
// Malformed markup returns a *markup.ParseError. Schema violations
// return a *ValidationError carrying the complete error list. Address
// and range errors during model construction fail fast on the first
// offender. Only a nil error yields a model.
func Compile(text string) (*models.Workbook, error) {
	root, err := markup.Parse(text)
	if err != nil {
		return nil, err
	}
	if errs := validator.Validate(root); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return compiler.Compile(root)
}

// CompileToFile compiles an EXLang document and persists it as an XLSX
// file at path. The sink is only invoked on a fully valid, fully
// resolved model; on any error nothing is written.
func CompileToFile(text, path string) error {
	wb, err := Compile(text)
	if err != nil {
		return err
	}
	sink := output.NewXLSXSink()
	defer sink.Close()
	if err := output.Apply(wb, sink); err != nil {
		return err
	}
	return sink.Save(path)
}

// CompileFile reads an EXLang file (transcoding from the named charset
// when given) and compiles it to an XLSX file at outputPath.
func CompileFile(inputPath, outputPath, charset string) error {
	text, err := ReadFile(inputPath, charset)
	if err != nil {
		return err
	}
	return CompileToFile(text, outputPath)
}

// Validate checks an EXLang document and returns the pass/fail flag
// plus the complete, ordered error-message list. Malformed markup is
// reported as a single list entry rather than an error.
func Validate(text string) (bool, []string) {
	root, err := markup.Parse(text)
	if err != nil {
		return false, []string{err.Error()}
	}
	errs := validator.Validate(root)
	return len(errs) == 0, errs
}

// ValidateFile validates an EXLang file. The returned error reports
// I/O problems only; document problems come back in the list.
func ValidateFile(path, charset string) (bool, []string, error) {
	text, err := ReadFile(path, charset)
	if err != nil {
		return false, nil, err
	}
	ok, errs := Validate(text)
	return ok, errs, nil
}
