package ports

import "license-audit/internal/types"

type SBOMPort interface {
	WriteSBOM(path string, documentName string, createdAt string, modules *types.FlatModuleMap) error
}
