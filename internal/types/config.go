package types

// Config is the persisted allowlist. Both sequences keep approval order.
type Config struct {
	Licenses []string    `yaml:"licenses"`
	Modules  []ModuleKey `yaml:"modules"`
}

func DefaultConfig() Config {
	return Config{Licenses: []string{}, Modules: []ModuleKey{}}
}
