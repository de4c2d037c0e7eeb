/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// gtsURLLoader implements jsonschema.URLLoader for GTS ID reference resolution.
// ResolveRefs (see ref_resolver.go) inlines every $ref before compilation, so
// this loader only needs to cover references the compiler discovers on its
// own (e.g. inside a $ref that ResolveRefs left untouched because it pointed
// outside the store).
type gtsURLLoader struct {
	store *GtsStore
}

func (l *gtsURLLoader) Load(url string) (any, error) {
	if IsValidGtsID(url) {
		entity := l.store.Get(url)
		if entity == nil {
			return nil, fmt.Errorf("unresolvable GTS reference: %s", url)
		}
		if !entity.IsSchema {
			return nil, fmt.Errorf("GTS reference is not a schema: %s", url)
		}
		return entity.Content, nil
	}
	return nil, fmt.Errorf("unsupported URL: %s", url)
}

// ValidationResult represents the result of validating an instance
type ValidationResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// lenientFormats lists JSON-Schema format keywords validated as no-ops, to
// match the permissive behavior of the reference jsonschema implementation
// this registry was ported from (formats are not enforced by default there).
var lenientFormats = []string{
	"uuid", "date-time", "date", "time", "email", "hostname",
	"ipv4", "ipv6", "uri", "uri-reference", "iri", "iri-reference",
	"uri-template", "json-pointer", "relative-json-pointer", "regex",
}

func newGtsCompiler(s *GtsStore) *jsonschema.Compiler {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	noop := func(v any) error { return nil }
	for _, name := range lenientFormats {
		compiler.RegisterFormat(&jsonschema.Format{Name: name, Validate: noop})
	}
	compiler.UseLoader(&gtsURLLoader{store: s})
	return compiler
}

// stripXGtsRef recursively removes the custom x-gts-ref annotation so the
// generic draft-07 validator never sees a keyword it does not understand.
func stripXGtsRef(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if k == "x-gts-ref" {
				continue
			}
			out[k] = stripXGtsRef(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = stripXGtsRef(item)
		}
		return out
	default:
		return v
	}
}

// compilerSafeSchema produces the copy used for compilation: $refs inlined,
// x-gts-ref annotations stripped, and the top-level $id/$schema removed so
// the compiler resolves everything from the synthetic resource ID supplied
// by the caller instead of chasing the document's own identity.
func compilerSafeSchema(s *GtsStore, schema map[string]any) (map[string]any, error) {
	resolved, err := s.ResolveRefs(schema)
	if err != nil {
		return nil, err
	}
	resolvedMap, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resolved schema is not an object")
	}

	stripped, ok := stripXGtsRef(resolvedMap).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stripped schema is not an object")
	}

	safe := make(map[string]any, len(stripped))
	for k, v := range stripped {
		if k == "$id" || k == "$schema" {
			continue
		}
		safe[k] = v
	}
	return safe, nil
}

// ValidateSchema implements §4.H validate_schema: verifies the entity is a
// schema, runs the x-gts-ref schema check, then compiles a validator-safe
// copy under draft-07. A compile failure is reported as a ValidationError.
func (s *GtsStore) ValidateSchema(gtsID string) error {
	if !IsValidGtsID(gtsID) {
		return fmt.Errorf("invalid GTS ID '%s'", gtsID)
	}
	if !(len(gtsID) > 0 && gtsID[len(gtsID)-1] == '~') {
		return fmt.Errorf("ID '%s' is not a schema (must end with '~')", gtsID)
	}

	entity := s.Get(gtsID)
	if entity == nil {
		return &StoreGtsSchemaNotFoundError{EntityID: gtsID}
	}
	if !entity.IsSchema {
		return fmt.Errorf("entity '%s' is not a schema", gtsID)
	}
	if entity.Content == nil {
		return fmt.Errorf("schema content is nil")
	}

	xRefValidator := NewXGtsRefValidator(s)
	if xErrs := xRefValidator.ValidateSchema(entity.Content, "", nil); len(xErrs) > 0 {
		return fmt.Errorf("x-gts-ref validation failed: %s", joinXGtsRefErrors(xErrs))
	}

	safe, err := compilerSafeSchema(s, entity.Content)
	if err != nil {
		return fmt.Errorf("resolve schema refs: %w", err)
	}

	compiler := newGtsCompiler(s)
	resourceID := gtsID
	if err := compiler.AddResource(resourceID, safe); err != nil {
		return fmt.Errorf("add schema resource: %v", err)
	}
	if _, err := compiler.Compile(resourceID); err != nil {
		return fmt.Errorf("compile schema: %v", err)
	}

	if s.config.ValidateGtsReferences {
		if err := s.checkEntityReferences(entity); err != nil {
			return fmt.Errorf("schema GTS reference validation failed: %w", err)
		}
	}

	return nil
}

func joinXGtsRefErrors(errs []*XGtsRefValidationError) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return msg
}

// ValidateInstance validates an object instance against its schema,
// implementing §4.H validate_instance: resolve $refs, strip $id/$schema,
// compile, validate the content, then run the x-gts-ref instance check
// against the original (unresolved) schema.
func (s *GtsStore) ValidateInstance(gtsID string) *ValidationResult {
	gid, err := NewGtsID(gtsID)
	if err != nil {
		return &ValidationResult{ID: gtsID, OK: false, Error: fmt.Sprintf("Invalid GTS ID: %v", err)}
	}

	obj := s.Get(gid.ID)
	if obj == nil {
		return &ValidationResult{ID: gtsID, OK: false, Error: (&StoreGtsObjectNotFoundError{EntityID: gtsID}).Error()}
	}

	if obj.SchemaID == "" {
		return &ValidationResult{ID: gtsID, OK: false, Error: (&StoreGtsSchemaForInstanceNotFoundError{EntityID: gid.ID}).Error()}
	}

	schemaEntity := s.Get(obj.SchemaID)
	if schemaEntity == nil {
		return &ValidationResult{ID: gtsID, OK: false, Error: (&StoreGtsSchemaNotFoundError{EntityID: obj.SchemaID}).Error()}
	}
	if !schemaEntity.IsSchema {
		return &ValidationResult{ID: gtsID, OK: false, Error: fmt.Sprintf("entity '%s' is not a schema", obj.SchemaID)}
	}

	if err := s.validateWithSchema(obj.Content, schemaEntity.Content); err != nil {
		return &ValidationResult{ID: gtsID, OK: false, Error: err.Error()}
	}

	xRefValidator := NewXGtsRefValidator(s)
	if xErrs := xRefValidator.ValidateInstance(obj.Content, schemaEntity.Content, ""); len(xErrs) > 0 {
		return &ValidationResult{ID: gtsID, OK: false, Error: "x-gts-ref validation failed: " + joinXGtsRefErrors(xErrs)}
	}

	return &ValidationResult{ID: gtsID, OK: true, Error: ""}
}

// validateWithSchema performs the actual JSON Schema validation
func (s *GtsStore) validateWithSchema(instance map[string]any, schema map[string]any) error {
	safe, err := compilerSafeSchema(s, schema)
	if err != nil {
		return fmt.Errorf("resolve schema refs: %w", err)
	}

	compiler := newGtsCompiler(s)
	schemaID, ok := schema["$id"].(string)
	if !ok || schemaID == "" {
		return fmt.Errorf("schema must have a valid $id field")
	}

	if err := compiler.AddResource(schemaID, safe); err != nil {
		return fmt.Errorf("add schema resource: %v", err)
	}

	compiledSchema, err := compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("compile schema: %v", err)
	}

	if err := compiledSchema.Validate(instance); err != nil {
		return fmt.Errorf("validation error: %v", err)
	}

	return nil
}
