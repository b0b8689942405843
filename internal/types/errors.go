package types

import "fmt"

const (
	ConfigEmptyMessage    = "Configuration file found but it is empty."
	DependencyTreeMessage = "failed to parse dependency tree"
)

// ConfigSchemaMessage names the root key that is missing or not a sequence.
func ConfigSchemaMessage(key string) string {
	return fmt.Sprintf("Configuration file found but it does not have the expected root level '%s' array.", key)
}
