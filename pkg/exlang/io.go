package exlang

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// GetEncoding resolves a charset name to an encoding. UTF-8 (and the
// empty name) resolve to nil, meaning no transcoding is needed.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// ReadFile reads an EXLang document from path, transcoding from the
// named charset when one is given.
func ReadFile(path, encName string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	enc, err := GetEncoding(encName)
	if err != nil {
		return "", err
	}
	if enc != nil {
		if b, err = enc.NewDecoder().Bytes(b); err != nil {
			return "", err
		}
	}
	return string(b), nil
}
