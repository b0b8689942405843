package core

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// Summarize buckets every module into approved, unapproved or unprocessed
// and groups each bucket by license string.
func Summarize(flat *types.FlatModuleMap, cfg types.Config) types.Summary {
	licenses := shared.NewSet(cfg.Licenses)
	modules := shared.NewSet(cfg.Modules)
	buckets := map[types.ComplianceStatus]map[string][]types.ModuleKey{
		types.ComplianceApproved:    {},
		types.ComplianceUnapproved:  {},
		types.ComplianceUnprocessed: {},
	}
	flat.Range(func(key types.ModuleKey, record types.ModuleRecord) bool {
		status := types.ComplianceUnapproved
		switch {
		case approved(key, record, licenses, modules):
			status = types.ComplianceApproved
		case record.Unprocessed():
			status = types.ComplianceUnprocessed
		}
		buckets[status][record.Licenses] = append(buckets[status][record.Licenses], key)
		return true
	})
	return types.Summary{
		Approved:    licenseGroups(buckets[types.ComplianceApproved]),
		Unapproved:  licenseGroups(buckets[types.ComplianceUnapproved]),
		Unprocessed: licenseGroups(buckets[types.ComplianceUnprocessed]),
	}
}

func licenseGroups(byLicense map[string][]types.ModuleKey) []types.LicenseGroup {
	groups := make([]types.LicenseGroup, 0, len(byLicense))
	for license, keys := range byLicense {
		sortModuleKeys(keys)
		groups = append(groups, types.LicenseGroup{License: license, Modules: keys})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].License < groups[j].License
	})
	return groups
}

// sortModuleKeys orders by name, then by semantic version when both sides
// parse, falling back to plain string order.
func sortModuleKeys(keys []types.ModuleKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		left, right := keys[i], keys[j]
		if left.Name() != right.Name() {
			return left.Name() < right.Name()
		}
		lv, lerr := semver.NewVersion(left.Version())
		rv, rerr := semver.NewVersion(right.Version())
		if lerr == nil && rerr == nil {
			return lv.LessThan(rv)
		}
		return left.Version() < right.Version()
	})
}
