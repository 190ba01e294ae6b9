// Package datafile reads and writes the JSON record files the scrapers
// exchange with each other.
package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	MoleculeData = "molecule_data.json"
	PdbCodes     = "pdb_codes.json"
	PdbInfo      = "pdb_info.json"
)

// ErrMissingPrerequisite is returned by Read when the input file was never
// produced.
var ErrMissingPrerequisite = errors.New("prerequisite data file not found")

// ErrMalformed is returned by Read when the input file cannot be decoded.
var ErrMalformed = errors.New("malformed data file")

// Write stores v as indented JSON, non-ASCII and HTML characters are kept as is.
func Write(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return WriteText(path, buf.String())
}

// WriteText writes contents to path, creating parent directories as needed.
func WriteText(path, contents string) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(contents), 0644)
}

func Read[T any](path string) (T, error) {
	var out T
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return out, fmt.Errorf("%w: %s", ErrMissingPrerequisite, path)
	}
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(contents, &out)
	if err != nil {
		return out, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}
	return out, nil
}
