package app

import "license-audit/internal/types"

type CheckRequest struct {
	ProjectDir    string
	AllowlistPath string
	Summary       bool
	SBOMPath      string
}

type CheckResult struct {
	ModuleCount int
	Invalid     *types.FlatModuleMap
	Summary     *types.Summary
	SBOMPath    string
}

// Compliant reports whether every module is approved.
func (r CheckResult) Compliant() bool {
	return r.Invalid.Len() == 0
}

type ReconcileRequest struct {
	ProjectDir    string
	AllowlistPath string
	ReviewModules bool
	SBOMPath      string
}

type ReconcileResult struct {
	AllowlistPath string
	AddedLicenses []string
	AddedModules  []types.ModuleKey
	Quit          bool
	// Remaining holds the modules still unapproved after the walk.
	Remaining *types.FlatModuleMap
}
