package ports

import (
	"context"

	"license-audit/internal/types"
)

// PackageManagerPort produces the raw dependency tree of the project in dir.
type PackageManagerPort interface {
	DependencyTree(ctx context.Context, dir string) (*types.DependencyTree, error)
}
