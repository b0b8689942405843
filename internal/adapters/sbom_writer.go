package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/renameio/v2"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

const spdxNoAssertion = "NOASSERTION"

type SBOMWriterAdapter struct{}

func NewSBOMWriterAdapter() SBOMWriterAdapter {
	return SBOMWriterAdapter{}
}

// WriteSBOM emits an SPDX 2.3 JSON document listing every flattened module
// in flattening order with its declared license.
func (a SBOMWriterAdapter) WriteSBOM(path string, documentName string, createdAt string, modules *types.FlatModuleMap) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom path is empty")
	}
	if strings.TrimSpace(documentName) == "" {
		documentName = "license-audit"
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create sbom directory").
				WithCause(err)
		}
	}
	type spdxCreationInfo struct {
		Created  string   `json:"created"`
		Creators []string `json:"creators"`
	}
	type spdxPackage struct {
		SPDXID           string `json:"SPDXID"`
		Name             string `json:"name"`
		VersionInfo      string `json:"versionInfo"`
		DownloadLocation string `json:"downloadLocation"`
		LicenseConcluded string `json:"licenseConcluded"`
		LicenseDeclared  string `json:"licenseDeclared"`
		Supplier         string `json:"supplier"`
	}
	type spdxRelationship struct {
		SpdxElementID      string `json:"spdxElementId"`
		RelationshipType   string `json:"relationshipType"`
		RelatedSpdxElement string `json:"relatedSpdxElement"`
	}
	created := strings.TrimSpace(createdAt)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}
	payload := struct {
		SPDXVersion       string             `json:"SPDXVersion"`
		DataLicense       string             `json:"DataLicense"`
		SPDXID            string             `json:"SPDXID"`
		Name              string             `json:"name"`
		DocumentNamespace string             `json:"documentNamespace"`
		CreationInfo      spdxCreationInfo   `json:"creationInfo"`
		Packages          []spdxPackage      `json:"packages"`
		Relationships     []spdxRelationship `json:"relationships"`
		DocumentDescribes []string           `json:"documentDescribes"`
	}{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              fmt.Sprintf("%s dependencies", documentName),
		DocumentNamespace: fmt.Sprintf("https://spdx.org/spdxdocs/%s-%s", documentName, created),
		CreationInfo: spdxCreationInfo{
			Created:  created,
			Creators: []string{"Tool: license-audit"},
		},
		Packages:          []spdxPackage{},
		Relationships:     []spdxRelationship{},
		DocumentDescribes: []string{},
	}
	modules.Range(func(key types.ModuleKey, record types.ModuleRecord) bool {
		spdxID := spdxPackageID(key)
		declared := spdxNoAssertion
		if !record.Unprocessed() {
			declared = record.Licenses
		}
		download := spdxNoAssertion
		if resolved := strings.TrimSpace(record.Metadata["resolved"]); resolved != "" {
			download = resolved
		}
		payload.Packages = append(payload.Packages, spdxPackage{
			SPDXID:           spdxID,
			Name:             key.Name(),
			VersionInfo:      key.Version(),
			DownloadLocation: download,
			LicenseConcluded: spdxNoAssertion,
			LicenseDeclared:  declared,
			Supplier:         spdxNoAssertion,
		})
		payload.DocumentDescribes = append(payload.DocumentDescribes, spdxID)
		payload.Relationships = append(payload.Relationships, spdxRelationship{
			SpdxElementID:      "SPDXRef-DOCUMENT",
			RelationshipType:   "DESCRIBES",
			RelatedSpdxElement: spdxID,
		})
		return true
	})
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal sbom payload").
			WithCause(err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sbom file").
			WithCause(err)
	}
	return nil
}

func spdxPackageID(key types.ModuleKey) string {
	hash := sha256.Sum256([]byte(key))
	return "SPDXRef-Package-" + hex.EncodeToString(hash[:8])
}

var _ ports.SBOMPort = SBOMWriterAdapter{}
