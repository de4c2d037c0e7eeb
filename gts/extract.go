/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// JsonFile identifies the on-disk origin of one or more entities loaded
// together (see file_reader.go).
type JsonFile struct {
	Path    string
	Name    string
	Content any
}

// JsonEntity is a decoded JSON document annotated with everything extraction
// could determine about its GTS identity: whether it is itself a schema, the
// schema it is an instance of (if any), which input fields those came from,
// and every GTS reference found anywhere inside it.
type JsonEntity struct {
	GtsID                 *GtsID
	SchemaID              string
	SelectedEntityField   string
	SelectedSchemaIDField string
	IsSchema              bool
	Content               map[string]any
	File                  *JsonFile
	ListSequence          *int
	Label                 string
	GtsRefs               []*GtsReference
}

// ExtractIDResult is the JSON-facing projection of a JsonEntity's identity
// (OP#2).
type ExtractIDResult struct {
	ID                    string  `json:"id"`
	SchemaID              *string `json:"schema_id"`
	SelectedEntityField   *string `json:"selected_entity_field"`
	SelectedSchemaIDField *string `json:"selected_schema_id_field"`
	IsSchema              bool    `json:"is_schema"`
}

// NewJsonEntity builds a JsonEntity from decoded content with no file origin.
func NewJsonEntity(content map[string]any, cfg *GtsConfig) *JsonEntity {
	return NewJsonEntityWithFile(content, cfg, nil, nil)
}

// NewJsonEntityWithFile builds a JsonEntity from decoded content, recording
// which file (and, for multi-entity files, which position within it) it came
// from.
func NewJsonEntityWithFile(content map[string]any, cfg *GtsConfig, file *JsonFile, listSequence *int) *JsonEntity {
	if cfg == nil {
		cfg = DefaultGtsConfig()
	}

	entity := &JsonEntity{
		Content:      content,
		IsSchema:     hasSchemaMarker(content),
		File:         file,
		ListSequence: listSequence,
	}

	entityID := entity.extractEntityID(cfg)
	entity.SchemaID = entity.extractSchemaID(cfg, entityID)

	switch {
	case entity.IsSchema:
		// A schema's own identity comes straight from its entity ID field
		// (typically $id); without a valid one it falls back to SchemaID below.
		if entityID != "" && IsValidGtsID(entityID) {
			entity.GtsID, _ = NewGtsID(entityID)
		}
	case entityID != "" && IsValidGtsID(entityID):
		// Well-known instance: a real GTS ID sits in the entity ID field.
		entity.GtsID, _ = NewGtsID(entityID)
		if entity.SchemaID == "" && entity.SelectedEntityField != "" {
			entity.SchemaID = entity.extractSchemaID(cfg, entityID)
		}
	default:
		// Anonymous instance: the id field holds something other than a
		// GTS ID (e.g. a UUID). SchemaID was already populated above from
		// the type/schema field; GtsID falls back to it below.
	}

	// No valid GTS ID in the entity ID fields: use the schema ID, if valid.
	if entity.GtsID == nil && entity.SchemaID != "" && IsValidGtsID(entity.SchemaID) {
		entity.GtsID, _ = NewGtsID(entity.SchemaID)
	}

	entity.GtsRefs = extractGtsReferences(content)
	entity.Label = labelFor(entity)

	return entity
}

// labelFor derives a human-readable handle for an entity: its position
// within a source file, the file name alone, or failing that its GTS ID.
func labelFor(e *JsonEntity) string {
	switch {
	case e.File != nil && e.ListSequence != nil:
		return fmt.Sprintf("%s#%d", e.File.Name, *e.ListSequence)
	case e.File != nil:
		return e.File.Name
	case e.GtsID != nil:
		return e.GtsID.ID
	default:
		return ""
	}
}

// hasSchemaMarker reports whether content declares itself a JSON Schema via
// a "$schema" key (or the legacy "$$schema" alias).
func hasSchemaMarker(content map[string]any) bool {
	if content == nil {
		return false
	}
	if _, ok := content["$schema"]; ok {
		return true
	}
	_, ok := content["$$schema"]
	return ok
}

// stringField reads field as a trimmed string, stripping the "gts://" URI
// wrapper when field is "$id" (the only place that wrapper is meaningful).
func (e *JsonEntity) stringField(field string) string {
	if e.Content == nil {
		return ""
	}
	raw, ok := e.Content[field]
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if field == "$id" {
		s = strings.TrimPrefix(s, GtsURIPrefix)
	}
	return s
}

// firstCandidateField scans fields for the first usable value, preferring a
// well-formed GTS ID over any other non-empty string.
func (e *JsonEntity) firstCandidateField(fields []string) (field, value string) {
	for _, f := range fields {
		if v := e.stringField(f); v != "" && IsValidGtsID(v) {
			return f, v
		}
	}
	for _, f := range fields {
		if v := e.stringField(f); v != "" {
			return f, v
		}
	}
	return "", ""
}

// extractEntityID resolves the document's own identity field (cfg.EntityIDFields).
func (e *JsonEntity) extractEntityID(cfg *GtsConfig) string {
	field, value := e.firstCandidateField(cfg.EntityIDFields)
	e.SelectedEntityField = field
	return value
}

// extractSchemaID resolves which schema this document belongs to (for a
// schema document, its parent type in a derivation chain, or its declared
// meta-schema; for an instance, the type it's registered against).
func (e *JsonEntity) extractSchemaID(cfg *GtsConfig, entityID string) string {
	if e.IsSchema {
		return e.extractSchemaIDForSchema(entityID)
	}
	return e.extractSchemaIDForInstance(cfg, entityID)
}

func (e *JsonEntity) extractSchemaIDForSchema(entityID string) string {
	if parent, ok := parentOfDerivedType(entityID); ok {
		e.SelectedSchemaIDField = e.SelectedEntityField
		return parent
	}
	if schemaValue := e.stringField("$schema"); schemaValue != "" {
		e.SelectedSchemaIDField = "$schema"
		return schemaValue
	}
	return ""
}

func (e *JsonEntity) extractSchemaIDForInstance(cfg *GtsConfig, entityID string) string {
	if owner, ok := owningTypeOfInstance(entityID); ok {
		e.SelectedSchemaIDField = e.SelectedEntityField
		return owner
	}
	field, value := e.firstCandidateField(cfg.SchemaIDFields)
	if value != "" {
		e.SelectedSchemaIDField = field
	}
	return value
}

// parentOfDerivedType reports the immediate parent type of a derived schema
// ID of the form "gts.a.b.c.d.v1~e.f.g.h.v1~" — i.e. a type whose segment
// chain has more than one '~'-delimited link. The parent is everything up to
// and including the first '~'.
func parentOfDerivedType(entityID string) (string, bool) {
	if entityID == "" || !IsValidGtsID(entityID) || !strings.HasSuffix(entityID, "~") {
		return "", false
	}
	first := strings.Index(entityID, "~")
	if first <= 0 {
		return "", false
	}
	if !strings.Contains(entityID[first+1:], "~") {
		return "", false
	}
	return entityID[:first+1], true
}

// owningTypeOfInstance reports the type an instance ID belongs to: the ID
// truncated at (and including) its final '~'. An ID ending in '~' is itself
// a type, not an instance, and is excluded.
func owningTypeOfInstance(entityID string) (string, bool) {
	if entityID == "" || !IsValidGtsID(entityID) || strings.HasSuffix(entityID, "~") {
		return "", false
	}
	last := strings.LastIndex(entityID, "~")
	if last <= 0 {
		return "", false
	}
	return entityID[:last+1], true
}

// ExtractID extracts the GTS identity (effective ID, owning schema, and the
// fields each came from) from decoded JSON content (OP#2).
func ExtractID(content map[string]any, cfg *GtsConfig) *ExtractIDResult {
	entity := NewJsonEntity(content, cfg)

	result := &ExtractIDResult{IsSchema: entity.IsSchema}
	if entity.SchemaID != "" {
		result.SchemaID = &entity.SchemaID
	}
	if entity.SelectedEntityField != "" {
		result.SelectedEntityField = &entity.SelectedEntityField
	}
	if entity.SelectedSchemaIDField != "" {
		result.SelectedSchemaIDField = &entity.SelectedSchemaIDField
	}

	switch {
	case entity.GtsID != nil:
		// Schemas and well-known instances report their real GTS ID, or the
		// schema ID it fell back to.
		result.ID = entity.GtsID.ID
	case !entity.IsSchema && entity.SelectedEntityField != "":
		// Anonymous instances with no valid schema ID report whatever raw
		// value (e.g. a UUID) sat in the field that was selected as the
		// entity identity. Schemas with no GtsID report no ID at all.
		if val, ok := content[entity.SelectedEntityField].(string); ok {
			result.ID = val
		}
	}

	return result
}
