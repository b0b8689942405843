package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func flatOf(entries ...any) *types.FlatModuleMap {
	flat := types.NewFlatModuleMap()
	for i := 0; i+1 < len(entries); i += 2 {
		flat.Add(types.ModuleKey(entries[i].(string)), types.ModuleRecord{Licenses: entries[i+1].(string)})
	}
	return flat
}

func TestValidate(t *testing.T) {
	flat := flatOf("A@1.0.0", "X")
	tests := []struct {
		name        string
		cfg         types.Config
		wantInvalid bool
	}{
		{
			name: "license approved",
			cfg:  types.Config{Licenses: []string{"X"}, Modules: []types.ModuleKey{}},
		},
		{
			name: "module approved",
			cfg:  types.Config{Licenses: []string{}, Modules: []types.ModuleKey{"A@1.0.0"}},
		},
		{
			name:        "nothing approved",
			cfg:         types.Config{Licenses: []string{}},
			wantInvalid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalid := Validate(t.Context(), flat, tt.cfg)
			if !tt.wantInvalid {
				assert.Nil(t, invalid)
				return
			}
			require.NotNil(t, invalid)
			record, ok := invalid.Get("A@1.0.0")
			require.True(t, ok)
			if diff := cmp.Diff(types.ModuleRecord{Licenses: "X"}, record); diff != "" {
				t.Fatalf("unexpected record (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateCompoundExpressionIsOpaque(t *testing.T) {
	flat := flatOf("dual@1.0.0", "(MIT OR CC0-1.0)")

	invalid := Validate(t.Context(), flat, types.Config{Licenses: []string{"MIT", "CC0-1.0"}})
	require.NotNil(t, invalid)
	assert.Equal(t, 1, invalid.Len())

	invalid = Validate(t.Context(), flat, types.Config{Licenses: []string{"(MIT OR CC0-1.0)"}})
	assert.Nil(t, invalid)
}

func TestValidateUnprocessedModule(t *testing.T) {
	flat := flatOf("bare@1.0.0", "", "ok@1.0.0", "MIT")
	invalid := Validate(t.Context(), flat, types.Config{Licenses: []string{"MIT"}})
	require.NotNil(t, invalid)
	if diff := cmp.Diff([]types.ModuleKey{"bare@1.0.0"}, invalid.Keys()); diff != "" {
		t.Fatalf("unexpected invalid keys (-want +got):\n%s", diff)
	}
}

func TestValidateEmptyMap(t *testing.T) {
	assert.Nil(t, Validate(t.Context(), types.NewFlatModuleMap(), types.DefaultConfig()))
}

func TestUnapprovedLicensesFirstAppearance(t *testing.T) {
	invalid := flatOf(
		"a@1.0.0", "CC-BY-3.0",
		"b@1.0.0", "",
		"c@1.0.0", "CC0-1.0",
		"d@1.0.0", "CC-BY-3.0",
	)
	if diff := cmp.Diff([]string{"CC-BY-3.0", "CC0-1.0"}, UnapprovedLicenses(invalid)); diff != "" {
		t.Fatalf("unexpected licenses (-want +got):\n%s", diff)
	}
	assert.Nil(t, UnapprovedLicenses(nil))
}
