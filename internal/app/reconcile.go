package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-audit/internal/core"
	"license-audit/internal/types"
)

// Reconcile runs the interactive approval walk and writes the allowlist
// once afterwards, including after Save and Quit. Nothing is written when
// the walk fails.
func (s Service) Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error) {
	allowlist := strings.TrimSpace(req.AllowlistPath)
	if allowlist == "" {
		return ReconcileResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("allowlist path is required")
	}
	if s.Prompt == nil {
		return ReconcileResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("prompt is not configured")
	}
	flat, err := s.flatten(ctx, req.ProjectDir)
	if err != nil {
		return ReconcileResult{}, err
	}
	cfg, err := s.ConfigStore.GetOrDefault(allowlist)
	if err != nil {
		return ReconcileResult{}, err
	}
	if err := s.writeSBOM(req.SBOMPath, req.ProjectDir, flat); err != nil {
		return ReconcileResult{}, err
	}

	invalid := core.Validate(ctx, flat, cfg)
	out, err := core.NewReconciler(s.Prompt).Reconcile(ctx, core.ReconcileInput{
		Invalid:       invalid,
		Licenses:      cfg.Licenses,
		Modules:       cfg.Modules,
		ReviewModules: req.ReviewModules,
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	updated := types.Config{Licenses: out.Licenses, Modules: out.Modules}
	if err := s.ConfigStore.Write(allowlist, updated); err != nil {
		return ReconcileResult{}, err
	}
	log.Ctx(ctx).Info().
		Int("licenses_added", len(out.AddedLicenses)).
		Int("modules_added", len(out.AddedModules)).
		Bool("quit", out.Quit).
		Str("allowlist", allowlist).
		Msg("allowlist updated")

	return ReconcileResult{
		AllowlistPath: allowlist,
		AddedLicenses: out.AddedLicenses,
		AddedModules:  out.AddedModules,
		Quit:          out.Quit,
		Remaining:     core.Validate(ctx, flat, updated),
	}, nil
}
