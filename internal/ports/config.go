package ports

import "license-audit/internal/types"

// ConfigStorePort loads and persists the license allowlist.
type ConfigStorePort interface {
	// Load fails when the file is missing, empty, or lacks either root
	// sequence.
	Load(path string) (types.Config, error)

	// GetOrDefault returns an empty allowlist when path does not exist and
	// otherwise behaves like Load.
	GetOrDefault(path string) (types.Config, error)

	Write(path string, cfg types.Config) error
}
