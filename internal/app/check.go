package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-audit/internal/core"
	"license-audit/internal/types"
)

// Check flattens the project's dependency tree and validates it against the
// allowlist. A missing allowlist is treated as empty.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	allowlist := strings.TrimSpace(req.AllowlistPath)
	if allowlist == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("allowlist path is required")
	}
	flat, err := s.flatten(ctx, req.ProjectDir)
	if err != nil {
		return CheckResult{}, err
	}
	cfg, err := s.ConfigStore.GetOrDefault(allowlist)
	if err != nil {
		return CheckResult{}, err
	}
	result := CheckResult{
		ModuleCount: flat.Len(),
		Invalid:     core.Validate(ctx, flat, cfg),
	}
	if req.Summary {
		summary := core.Summarize(flat, cfg)
		result.Summary = &summary
	}
	if err := s.writeSBOM(req.SBOMPath, req.ProjectDir, flat); err != nil {
		return CheckResult{}, err
	}
	result.SBOMPath = strings.TrimSpace(req.SBOMPath)
	log.Ctx(ctx).Info().
		Int("modules", result.ModuleCount).
		Int("invalid", result.Invalid.Len()).
		Msg("license check complete")
	return result, nil
}

func (s Service) flatten(ctx context.Context, projectDir string) (*types.FlatModuleMap, error) {
	dir := strings.TrimSpace(projectDir)
	if dir == "" {
		dir = "."
	}
	tree, err := s.PackageManager.DependencyTree(ctx, dir)
	if err != nil {
		return nil, err
	}
	return core.FlattenTree(ctx, tree)
}

func (s Service) writeSBOM(path string, projectDir string, flat *types.FlatModuleMap) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if s.SBOMWriter == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("sbom writer is not configured")
	}
	name := filepath.Base(filepath.Clean(strings.TrimSpace(projectDir)))
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	created := timeNow(s.Clock).Format(time.RFC3339)
	return s.SBOMWriter.WriteSBOM(path, name, created, flat)
}

// NonCompliantError is returned by callers that treat invalid modules as a
// failed run.
func NonCompliantError(invalid *types.FlatModuleMap) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("unapproved licenses found: %d modules", invalid.Len()))
}
