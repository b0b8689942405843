// Package shared provides common utility functions used across multiple
// packages in the license-audit codebase.
package shared

import (
	"fmt"
	"strings"
)

// NewSet builds a membership set from an ordered sequence. It is used for
// lookups only; the sequence itself stays the source of truth for order.
func NewSet[T ~string](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// DisplayLicense renders an empty license string as UNKNOWN.
func DisplayLicense(license string) string {
	if strings.TrimSpace(license) == "" {
		return "UNKNOWN"
	}
	return license
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
