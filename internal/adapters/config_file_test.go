package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "allowlist.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "empty", content: "", wantMsg: types.ConfigEmptyMessage},
		{name: "whitespace only", content: "  \n\t\n", wantMsg: types.ConfigEmptyMessage},
		{name: "modules missing", content: "licenses:\n  - MIT\n", wantMsg: types.ConfigSchemaMessage("modules")},
		{name: "modules not a sequence", content: "licenses: []\nmodules: foo@1.0.0\n", wantMsg: types.ConfigSchemaMessage("modules")},
		{name: "modules null", content: "licenses: []\nmodules:\n", wantMsg: types.ConfigSchemaMessage("modules")},
		{name: "licenses missing", content: "modules: []\n", wantMsg: types.ConfigSchemaMessage("licenses")},
		{name: "licenses mapping", content: "modules: []\nlicenses:\n  MIT: true\n", wantMsg: types.ConfigSchemaMessage("licenses")},
		{name: "both missing reports modules first", content: "other: 1\n", wantMsg: types.ConfigSchemaMessage("modules")},
		{name: "root is a list", content: "- MIT\n", wantMsg: types.ConfigSchemaMessage("modules")},
	}
	adapter := NewConfigFileAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConfigLoadEmptySequences(t *testing.T) {
	cfg, err := NewConfigFileAdapter().Load(writeConfig(t, "licenses: []\nmodules: []\n"))
	require.NoError(t, err)
	if diff := cmp.Diff(types.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestConfigLoadKeepsOrder(t *testing.T) {
	content := `licenses:
  - ISC
  - MIT
  - (MIT OR CC0-1.0)
modules:
  - "@scope/pkg@1.0.0"
  - left-pad@1.3.0
`
	cfg, err := NewConfigFileAdapter().Load(writeConfig(t, content))
	require.NoError(t, err)
	want := types.Config{
		Licenses: []string{"ISC", "MIT", "(MIT OR CC0-1.0)"},
		Modules:  []types.ModuleKey{"@scope/pkg@1.0.0", "left-pad@1.3.0"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestConfigLoadMissingFile(t *testing.T) {
	_, err := NewConfigFileAdapter().Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestConfigGetOrDefault(t *testing.T) {
	adapter := NewConfigFileAdapter()

	cfg, err := adapter.GetOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	if diff := cmp.Diff(types.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("unexpected default config (-want +got):\n%s", diff)
	}

	cfg, err = adapter.GetOrDefault(writeConfig(t, "licenses:\n  - MIT\nmodules: []\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT"}, cfg.Licenses)

	_, err = adapter.GetOrDefault(writeConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.ConfigEmptyMessage)
}

func TestConfigWriteShape(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.Config
		want string
	}{
		{
			name: "both empty",
			cfg:  types.DefaultConfig(),
			want: "licenses: []\nmodules: []\n",
		},
		{
			name: "nil sequences",
			cfg:  types.Config{},
			want: "licenses: []\nmodules: []\n",
		},
		{
			name: "licenses only",
			cfg:  types.Config{Licenses: []string{"MIT", "ISC"}},
			want: "licenses:\n  - MIT\n  - ISC\nmodules: []\n",
		},
		{
			name: "both populated",
			cfg: types.Config{
				Licenses: []string{"Apache-2.0"},
				Modules:  []types.ModuleKey{"left-pad@1.3.0"},
			},
			want: "licenses:\n  - Apache-2.0\nmodules:\n  - left-pad@1.3.0\n",
		},
	}
	adapter := NewConfigFileAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "allowlist.yml")
			require.NoError(t, adapter.Write(path, tt.cfg))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, string(data)); diff != "" {
				t.Fatalf("unexpected file content (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	configs := []types.Config{
		types.DefaultConfig(),
		{
			Licenses: []string{"ISC", "MIT", "BSD-2-Clause", "(MIT OR CC0-1.0)", "1.0", "yes"},
			Modules:  []types.ModuleKey{},
		},
		{
			Licenses: []string{},
			Modules:  []types.ModuleKey{"@scope/pkg@1.0.0", "b@2.0.0", "a@1.0.0"},
		},
	}
	adapter := NewConfigFileAdapter()
	for _, cfg := range configs {
		path := filepath.Join(t.TempDir(), "allowlist.yml")
		require.NoError(t, adapter.Write(path, cfg))
		loaded, err := adapter.Load(path)
		require.NoError(t, err)
		if diff := cmp.Diff(cfg, loaded); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestConfigWriteReplacesExisting(t *testing.T) {
	path := writeConfig(t, "licenses:\n  - MIT\nmodules: []\n")
	adapter := NewConfigFileAdapter()
	require.NoError(t, adapter.Write(path, types.Config{Licenses: []string{"MIT", "ISC"}}))
	cfg, err := adapter.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT", "ISC"}, cfg.Licenses)
}

func TestConfigWriteEmptyPath(t *testing.T) {
	err := NewConfigFileAdapter().Write(" ", types.DefaultConfig())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
