// Package jsonstore reads and writes arbitrary values as JSON files.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
)

// Write stores v as indented JSON at path, creating missing parent directories.
// The file is readable by its owner only since it may hold credentials.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to create directory of '%s'", path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to write '%s'", path), err)
	}
	return nil
}

// Read decodes the JSON file at path into v.
func Read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return derrors.NewIOError(fmt.Sprintf("failed to read '%s'", path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode '%s': %w", path, err)
	}
	return nil
}
