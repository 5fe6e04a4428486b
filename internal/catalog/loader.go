package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/validation"
)

// File is the on-disk catalog document
type File struct {
	PunishmentTypes []domain.PunishmentType `yaml:"punishment_types" json:"punishment_types"`
}

// LoadFile reads a YAML catalog, validates it against the catalog schema in
// schemaDir and returns the custom types it defines.
func LoadFile(path string, v validation.SchemaValidator, schemaDir string) ([]domain.PunishmentType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFile, path, err)
	}
	return Parse(raw, path, v, schemaDir)
}

// Parse decodes and validates catalog YAML. name is only used in error messages.
func Parse(raw []byte, name string, v validation.SchemaValidator, schemaDir string) ([]domain.PunishmentType, error) {
	if v != nil {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf(ErrMsgParseCatalogFile, name, err)
		}
		// round-trip through JSON so the schema sees JSON-native values
		asJSON, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgParseCatalogFile, name, err)
		}
		if err := v.ValidateBytes(asJSON, filepath.Join(schemaDir, validation.SchemaPunishmentTypes)); err != nil {
			return nil, fmt.Errorf(ErrMsgValidateCatalog, name, err)
		}
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFile, name, err)
	}

	seen := make(map[int]string, len(f.PunishmentTypes))
	for _, t := range f.PunishmentTypes {
		if prev, ok := seen[t.Ordinal]; ok {
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateOrdinal, domain.ErrInvalidPunishmentType, t.Ordinal, prev, t.Name)
		}
		seen[t.Ordinal] = t.Name
		if err := ValidateType(t); err != nil {
			return nil, err
		}
	}
	return f.PunishmentTypes, nil
}
