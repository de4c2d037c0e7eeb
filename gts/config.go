/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GtsConfig holds configuration for extracting GTS IDs from JSON content
type GtsConfig struct {
	EntityIDFields []string `yaml:"entity_id_fields"`
	SchemaIDFields []string `yaml:"schema_id_fields"`
}

// DefaultGtsConfig returns the default configuration for ID extraction
func DefaultGtsConfig() *GtsConfig {
	return &GtsConfig{
		EntityIDFields: []string{
			"$id",
			"$$id",
			"gtsId",
			"gtsIid",
			"gtsOid",
			"gtsI",
			"gts_id",
			"gts_oid",
			"gts_iid",
			"id",
		},
		SchemaIDFields: []string{
			"$schema",
			"$$schema",
			"gtsTid",
			"gtsT",
			"gts_t",
			"gts_tid",
			"type",
			"schema",
		},
	}
}

// LoadGtsConfig reads an optional YAML override of the entity/schema field
// lists from path. A field list left empty in the file falls back to the
// corresponding default list rather than becoming empty, so a config that
// only overrides one of the two fields still behaves sensibly.
func LoadGtsConfig(path string) (*GtsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gts config %q: %w", path, err)
	}

	var override GtsConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse gts config %q: %w", path, err)
	}

	cfg := DefaultGtsConfig()
	if len(override.EntityIDFields) > 0 {
		cfg.EntityIDFields = override.EntityIDFields
	}
	if len(override.SchemaIDFields) > 0 {
		cfg.SchemaIDFields = override.SchemaIDFields
	}
	return cfg, nil
}
