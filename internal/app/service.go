package app

import (
	"time"

	"license-audit/internal/adapters"
	"license-audit/internal/ports"
)

type Service struct {
	PackageManager ports.PackageManagerPort
	ConfigStore    ports.ConfigStorePort
	Prompt         ports.PromptPort
	SBOMWriter     ports.SBOMPort
	Clock          func() time.Time
}

type ServiceOptions struct {
	PackageManagerCommand string
	PackageManagerArgs    []string
	AccessiblePrompt      bool
}

func NewService(opts ServiceOptions) Service {
	return Service{
		PackageManager: adapters.NewNPMAdapter(opts.PackageManagerCommand, opts.PackageManagerArgs),
		ConfigStore:    adapters.NewConfigFileAdapter(),
		Prompt:         adapters.NewHuhPromptAdapter(opts.AccessiblePrompt),
		SBOMWriter:     adapters.NewSBOMWriterAdapter(),
		Clock:          time.Now,
	}
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
