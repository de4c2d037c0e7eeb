/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// StoreGtsObjectNotFoundError is returned when a lookup by GTS ID finds no
// entity of any kind registered.
type StoreGtsObjectNotFoundError struct {
	EntityID string
}

func (e *StoreGtsObjectNotFoundError) Error() string {
	return fmt.Sprintf("JSON object with GTS ID '%s' not found in store", e.EntityID)
}

// StoreGtsSchemaNotFoundError is returned when a lookup expects the entity
// to be a schema and none is registered under that ID.
type StoreGtsSchemaNotFoundError struct {
	EntityID string
}

func (e *StoreGtsSchemaNotFoundError) Error() string {
	return fmt.Sprintf("JSON schema with GTS ID '%s' not found in store", e.EntityID)
}

// StoreGtsSchemaForInstanceNotFoundError is returned when an instance
// carries no resolvable owning schema ID.
type StoreGtsSchemaForInstanceNotFoundError struct {
	EntityID string
}

func (e *StoreGtsSchemaForInstanceNotFoundError) Error() string {
	return fmt.Sprintf("Can't determine JSON schema ID for instance with GTS ID '%s'", e.EntityID)
}

// StoreGtsCastFromSchemaNotAllowedError is returned when Cast is asked to
// cast a schema document itself rather than an instance of one.
type StoreGtsCastFromSchemaNotAllowedError struct {
	FromID string
}

func (e *StoreGtsCastFromSchemaNotAllowedError) Error() string {
	return fmt.Sprintf("Cannot cast from schema ID '%s'. The from_id must be an instance (not ending with '~').", e.FromID)
}

// RegistryConfig controls optional checks a GtsStore applies on write.
type RegistryConfig struct {
	// ValidateGtsReferences, when true, rejects Register calls whose
	// entity contains a GTS reference that doesn't resolve to a
	// registered entity.
	ValidateGtsReferences bool
}

// DefaultRegistryConfig returns a RegistryConfig with all optional checks
// disabled.
func DefaultRegistryConfig() *RegistryConfig {
	return &RegistryConfig{ValidateGtsReferences: false}
}

// GtsStore is the in-memory registry of GTS entities and schemas backing
// every lookup, query, validation, and cast operation (OP#1, OP#9).
type GtsStore struct {
	byID   map[string]*JsonEntity
	reader GtsReader
	config *RegistryConfig
}

// NewGtsStore builds a store, eagerly draining reader (if non-nil) into
// memory under its default registry configuration.
func NewGtsStore(reader GtsReader) *GtsStore {
	return NewGtsStoreWithConfig(reader, DefaultRegistryConfig())
}

// NewGtsStoreWithConfig builds a store with an explicit RegistryConfig.
func NewGtsStoreWithConfig(reader GtsReader, config *RegistryConfig) *GtsStore {
	if config == nil {
		config = DefaultRegistryConfig()
	}

	s := &GtsStore{
		byID:   make(map[string]*JsonEntity),
		reader: reader,
		config: config,
	}
	if reader != nil {
		s.drainReader()
	}

	slog.Info("created registry", "entities", len(s.byID), "validate_refs", config.ValidateGtsReferences)
	return s
}

// drainReader pulls every entity the reader yields into the in-memory
// index, skipping anonymous entities (those that resolved to no GTS ID).
func (s *GtsStore) drainReader() {
	if s.reader == nil {
		return
	}
	for entity := s.reader.Next(); entity != nil; entity = s.reader.Next() {
		if entity.GtsID != nil && entity.GtsID.ID != "" {
			s.byID[entity.GtsID.ID] = entity
		}
	}
}

// Register indexes entity by its GTS ID, running reference validation
// first if the store's config demands it.
func (s *GtsStore) Register(entity *JsonEntity) error {
	if entity.GtsID == nil || entity.GtsID.ID == "" {
		return errors.New("entity must have a valid gts_id")
	}

	if s.config.ValidateGtsReferences {
		if err := s.checkEntityReferences(entity); err != nil {
			return fmt.Errorf("GTS reference validation failed for entity %s: %w", entity.GtsID.ID, err)
		}
	}

	s.byID[entity.GtsID.ID] = entity
	slog.Debug("registered entity", "id", entity.GtsID.ID, "is_schema", entity.IsSchema, "refs", len(entity.GtsRefs))
	return nil
}

// RegisterSchema indexes a bare schema document under typeID without
// routing it through extraction. Kept for callers that already know the
// type ID and just want the content attached to it.
func (s *GtsStore) RegisterSchema(typeID string, schema map[string]any) error {
	if typeID == "" || typeID[len(typeID)-1] != '~' {
		return errors.New("schema type_id must end with '~'")
	}

	gtsID, err := NewGtsID(typeID)
	if err != nil {
		return err
	}

	s.byID[typeID] = &JsonEntity{
		GtsID:    gtsID,
		Content:  schema,
		IsSchema: true,
	}
	return nil
}

// Get looks up entityID in the in-memory index, falling back to a random
// read through the store's reader (and caching the result) when present.
func (s *GtsStore) Get(entityID string) *JsonEntity {
	if entity, ok := s.byID[entityID]; ok {
		return entity
	}
	if s.reader == nil {
		return nil
	}
	entity := s.reader.ReadByID(entityID)
	if entity == nil {
		return nil
	}
	s.byID[entityID] = entity
	return entity
}

// GetSchemaContent fetches the raw content map of the schema registered
// under typeID, erroring if it's missing or isn't a schema.
func (s *GtsStore) GetSchemaContent(typeID string) (map[string]any, error) {
	entity := s.Get(typeID)
	switch {
	case entity == nil:
		return nil, fmt.Errorf("schema not found: %s", typeID)
	case !entity.IsSchema:
		return nil, fmt.Errorf("entity is not a schema: %s", typeID)
	default:
		return entity.Content, nil
	}
}

// Items returns the live backing map of every indexed entity, keyed by GTS
// ID. Callers must not assume a stable iteration order.
func (s *GtsStore) Items() map[string]*JsonEntity {
	return s.byID
}

// Count reports how many entities are currently indexed.
func (s *GtsStore) Count() int {
	return len(s.byID)
}

// EntityInfo is the summary projection of an entity used by List.
type EntityInfo struct {
	ID       string `json:"id"`
	SchemaID string `json:"schema_id"`
	IsSchema bool   `json:"is_schema"`
}

// ListResult is the outcome of a List call: the page of entities returned,
// how many that page holds, and the store's total entity count.
type ListResult struct {
	Entities []EntityInfo `json:"entities"`
	Count    int          `json:"count"`
	Total    int          `json:"total"`
}

// List returns up to limit entities from the store (OP#9), in whatever
// order the backing map iterates them.
func (s *GtsStore) List(limit int) *ListResult {
	result := &ListResult{Entities: []EntityInfo{}, Total: len(s.byID)}

	for id, entity := range s.byID {
		if result.Count >= limit {
			break
		}
		result.Entities = append(result.Entities, EntityInfo{
			ID:       id,
			SchemaID: entity.SchemaID,
			IsSchema: entity.IsSchema,
		})
		result.Count++
	}

	return result
}

// checkEntityReferences verifies every GTS reference inside entity (other
// than self-references and JSON Schema meta-schema URLs) resolves to a
// registered entity, and that schema-to-schema $ref links point at schemas.
func (s *GtsStore) checkEntityReferences(entity *JsonEntity) error {
	if entity == nil || len(entity.GtsRefs) == 0 {
		return nil
	}

	var problems []string
	for _, ref := range entity.GtsRefs {
		if ref.ID == entity.GtsID.ID || isJSONSchemaURL(ref.ID) {
			continue
		}

		referenced := s.Get(ref.ID)
		if referenced == nil {
			problems = append(problems, fmt.Sprintf("referenced entity not found: %s (at %s)", ref.ID, ref.SourcePath))
			continue
		}

		if entity.IsSchema && strings.Contains(ref.SourcePath, "$ref") && !referenced.IsSchema {
			problems = append(problems, fmt.Sprintf("schema reference points to non-schema entity: %s (at %s)", ref.ID, ref.SourcePath))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("GTS reference validation errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateSchema (full draft-07 compile + x-gts-ref check) lives in validate.go.
