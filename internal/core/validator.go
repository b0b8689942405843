package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// Validate returns the modules that are neither license-approved nor
// module-approved, or nil when every module is compliant. License strings
// are compared verbatim, so a compound expression only matches itself.
func Validate(ctx context.Context, flat *types.FlatModuleMap, cfg types.Config) *types.FlatModuleMap {
	licenses := shared.NewSet(cfg.Licenses)
	modules := shared.NewSet(cfg.Modules)

	var invalid *types.FlatModuleMap
	flat.Range(func(key types.ModuleKey, record types.ModuleRecord) bool {
		if approved(key, record, licenses, modules) {
			return true
		}
		if invalid == nil {
			invalid = types.NewFlatModuleMap()
		}
		invalid.Add(key, record)
		return true
	})
	log.Ctx(ctx).Debug().
		Int("modules", flat.Len()).
		Int("invalid", invalid.Len()).
		Msg("modules validated")
	return invalid
}

// UnapprovedLicenses lists the distinct non-empty license strings of the
// invalid set in order of first appearance.
func UnapprovedLicenses(invalid *types.FlatModuleMap) []string {
	seen := map[string]struct{}{}
	var licenses []string
	invalid.Range(func(_ types.ModuleKey, record types.ModuleRecord) bool {
		if record.Unprocessed() {
			return true
		}
		if _, ok := seen[record.Licenses]; ok {
			return true
		}
		seen[record.Licenses] = struct{}{}
		licenses = append(licenses, record.Licenses)
		return true
	})
	return licenses
}

func approved(key types.ModuleKey, record types.ModuleRecord, licenses map[string]struct{}, modules map[types.ModuleKey]struct{}) bool {
	if _, ok := licenses[record.Licenses]; ok {
		return true
	}
	_, ok := modules[key]
	return ok
}
