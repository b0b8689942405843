package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-audit/internal/types"
)

// FlattenTree walks tree depth-first and returns every descendant exactly
// once, keyed by name@version in order of first visit. The root itself is
// never part of the result.
func FlattenTree(ctx context.Context, tree *types.DependencyTree) (*types.FlatModuleMap, error) {
	if tree == nil {
		return nil, structuralError("root node is missing")
	}
	flat := types.NewFlatModuleMap()
	visited := map[types.ModuleKey]struct{}{}
	if rootKey, ok := identity(tree); ok {
		visited[rootKey] = struct{}{}
	}
	if err := flattenChildren(tree, flat, visited); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("modules", flat.Len()).Msg("dependency tree flattened")
	return flat, nil
}

func flattenChildren(node *types.DependencyTree, flat *types.FlatModuleMap, visited map[types.ModuleKey]struct{}) error {
	for idx, child := range node.Dependencies {
		if child == nil {
			return structuralError(fmt.Sprintf("dependency %d of %q is empty", idx, node.Name))
		}
		key, ok := identity(child)
		if !ok {
			return structuralError(fmt.Sprintf("dependency %q of %q has no name@version identity", child.Name, node.Name))
		}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}
		flat.Add(key, types.ModuleRecord{
			Licenses: child.Licenses,
			Metadata: child.Metadata,
		})
		if err := flattenChildren(child, flat, visited); err != nil {
			return err
		}
	}
	return nil
}

func identity(node *types.DependencyTree) (types.ModuleKey, bool) {
	name := strings.TrimSpace(node.Name)
	version := strings.TrimSpace(node.Version)
	if name == "" || version == "" {
		return "", false
	}
	return types.NewModuleKey(name, version), true
}

func structuralError(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("malformed dependency tree: " + detail)
}
