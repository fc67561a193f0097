package drivemirror

import (
	"fmt"
	"strings"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
)

// validateName checks that name is usable as a single remote title and a single local path segment.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", derrors.ErrInvalidPath)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("relative name '%s' is not allowed: %w", name, derrors.ErrInvalidPath)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name '%s' must not contain path separators: %w", name, derrors.ErrInvalidPath)
	}
	return nil
}
