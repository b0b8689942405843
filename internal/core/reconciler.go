package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"license-audit/internal/ports"
	"license-audit/internal/shared"
	"license-audit/internal/types"
)

type ReconcileInput struct {
	Invalid       *types.FlatModuleMap
	Licenses      []string
	Modules       []types.ModuleKey
	ReviewModules bool
}

// ReconcileOutput holds the updated allowlist. Licenses and Modules start
// with the input entries followed by newly approved ones in acceptance
// order; the Added slices contain only the new entries.
type ReconcileOutput struct {
	Licenses      []string
	Modules       []types.ModuleKey
	AddedLicenses []string
	AddedModules  []types.ModuleKey
	Quit          bool
}

// walkState is the outcome of a single prompt.
type walkState int

const (
	walkAccept walkState = iota
	walkReject
	walkQuit
)

// Reconciler walks unapproved licenses, then optionally unapproved
// modules, asking the operator about each one in turn.
type Reconciler struct {
	Prompt ports.PromptPort
}

func NewReconciler(prompt ports.PromptPort) Reconciler {
	return Reconciler{Prompt: prompt}
}

func (r Reconciler) Reconcile(ctx context.Context, in ReconcileInput) (ReconcileOutput, error) {
	out := ReconcileOutput{
		Licenses: append([]string{}, in.Licenses...),
		Modules:  append([]types.ModuleKey{}, in.Modules...),
	}
	known := shared.NewSet(out.Licenses)
	accepted := map[string]struct{}{}

	for _, license := range UnapprovedLicenses(in.Invalid) {
		if _, ok := known[license]; ok {
			continue
		}
		state, err := r.ask(ctx, fmt.Sprintf("Allow license %q?", license))
		if err != nil {
			return ReconcileOutput{}, err
		}
		switch state {
		case walkAccept:
			known[license] = struct{}{}
			accepted[license] = struct{}{}
			out.Licenses = append(out.Licenses, license)
			out.AddedLicenses = append(out.AddedLicenses, license)
		case walkQuit:
			out.Quit = true
			log.Ctx(ctx).Debug().Int("licenses_added", len(out.AddedLicenses)).Msg("reconciliation quit during license review")
			return out, nil
		}
	}
	log.Ctx(ctx).Debug().Int("licenses_added", len(out.AddedLicenses)).Msg("license review done")

	if !in.ReviewModules {
		return out, nil
	}

	knownModules := shared.NewSet(out.Modules)
	for _, key := range in.Invalid.Keys() {
		record, _ := in.Invalid.Get(key)
		if _, ok := accepted[record.Licenses]; ok {
			continue
		}
		if _, ok := knownModules[key]; ok {
			continue
		}
		question := fmt.Sprintf("Allow module %q (license %s)?", key, shared.DisplayLicense(record.Licenses))
		state, err := r.ask(ctx, question)
		if err != nil {
			return ReconcileOutput{}, err
		}
		switch state {
		case walkAccept:
			knownModules[key] = struct{}{}
			out.Modules = append(out.Modules, key)
			out.AddedModules = append(out.AddedModules, key)
		case walkQuit:
			out.Quit = true
			log.Ctx(ctx).Debug().Int("modules_added", len(out.AddedModules)).Msg("reconciliation quit during module review")
			return out, nil
		}
	}
	log.Ctx(ctx).Debug().Int("modules_added", len(out.AddedModules)).Msg("module review done")
	return out, nil
}

// ask blocks until the operator answers. An answer outside
// types.ReconcileAnswers breaks the prompt contract and panics.
func (r Reconciler) ask(ctx context.Context, question string) (walkState, error) {
	answer, err := r.Prompt.Ask(ctx, question, types.ReconcileAnswers)
	if err != nil {
		return walkReject, err
	}
	assert.NotEmpty(ctx, string(answer), "prompt returned an empty answer")
	switch answer {
	case types.AnswerYes:
		return walkAccept, nil
	case types.AnswerNo:
		return walkReject, nil
	case types.AnswerSaveAndQuit:
		return walkQuit, nil
	default:
		panic(fmt.Sprintf("prompt returned unknown answer %q", answer))
	}
}
