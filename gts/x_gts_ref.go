/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// XGtsRefValidationError reports a single x-gts-ref constraint violation,
// either in a schema's declared patterns or in an instance value checked
// against one.
type XGtsRefValidationError struct {
	FieldPath  string
	Value      interface{}
	RefPattern string
	Reason     string
}

func (e *XGtsRefValidationError) Error() string {
	return fmt.Sprintf("x-gts-ref validation failed for field '%s': %s", e.FieldPath, e.Reason)
}

func refErr(path string, value interface{}, pattern, reason string, args ...interface{}) *XGtsRefValidationError {
	return &XGtsRefValidationError{
		FieldPath:  path,
		Value:      value,
		RefPattern: pattern,
		Reason:     fmt.Sprintf(reason, args...),
	}
}

// XGtsRefValidator checks the GTS-specific "x-gts-ref" schema keyword: both
// that a schema's own x-gts-ref declarations are well-formed, and that
// instance values satisfy the x-gts-ref constraints their schema declares.
type XGtsRefValidator struct {
	store *GtsStore
}

// NewXGtsRefValidator builds a validator. A nil store disables the
// referenced-entity-exists check in ValidateInstance.
func NewXGtsRefValidator(store *GtsStore) *XGtsRefValidator {
	return &XGtsRefValidator{store: store}
}

// ValidateInstance checks every x-gts-ref-constrained field of instance
// against the matching position in schema.
func (v *XGtsRefValidator) ValidateInstance(instance map[string]interface{}, schema map[string]interface{}, instancePath string) []*XGtsRefValidationError {
	var errs []*XGtsRefValidationError
	v.walkInstance(instance, schema, instancePath, schema, &errs)
	return errs
}

// ValidateSchema checks that every x-gts-ref keyword found anywhere in
// schema is itself a well-formed pattern or pointer.
func (v *XGtsRefValidator) ValidateSchema(schema map[string]interface{}, schemaPath string, rootSchema map[string]interface{}) []*XGtsRefValidationError {
	if rootSchema == nil {
		rootSchema = schema
	}
	var errs []*XGtsRefValidationError
	v.walkSchema(schema, schemaPath, rootSchema, &errs)
	return errs
}

// walkInstance descends an instance document in lockstep with its schema,
// applying checkInstanceValue at every field an x-gts-ref keyword guards.
func (v *XGtsRefValidator) walkInstance(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if ref, has := schema["x-gts-ref"]; has {
		if s, ok := instance.(string); ok {
			if err := v.checkInstanceValue(s, ref, path, rootSchema); err != nil {
				*errs = append(*errs, err)
			}
		}
	}

	schemaType, _ := schema["type"].(string)
	switch schemaType {
	case "object":
		props, _ := schema["properties"].(map[string]interface{})
		instMap, ok := instance.(map[string]interface{})
		if !ok {
			return
		}
		for name, propSchema := range props {
			val, present := instMap[name]
			if !present {
				continue
			}
			propSchemaMap, ok := propSchema.(map[string]interface{})
			if !ok {
				continue
			}
			v.walkInstance(val, propSchemaMap, joinFieldPath(path, name), rootSchema, errs)
		}
	case "array":
		items, _ := schema["items"].(map[string]interface{})
		if items == nil {
			return
		}
		instArr, ok := instance.([]interface{})
		if !ok {
			return
		}
		for i, item := range instArr {
			v.walkInstance(item, items, fmt.Sprintf("%s[%d]", path, i), rootSchema, errs)
		}
	}
}

// walkSchema recurses through every key of schema, validating any
// "x-gts-ref" value it finds along the way.
func (v *XGtsRefValidator) walkSchema(schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if ref, has := schema["x-gts-ref"]; has {
		if err := v.checkSchemaPattern(ref, joinFieldPath(path, "x-gts-ref"), rootSchema); err != nil {
			*errs = append(*errs, err)
		}
	}

	for key, value := range schema {
		if key == "x-gts-ref" {
			continue
		}
		nestedPath := joinFieldPath(path, key)
		switch val := value.(type) {
		case map[string]interface{}:
			v.walkSchema(val, nestedPath, rootSchema, errs)
		case []interface{}:
			for i, item := range val {
				if itemMap, ok := item.(map[string]interface{}); ok {
					v.walkSchema(itemMap, fmt.Sprintf("%s[%d]", nestedPath, i), rootSchema, errs)
				}
			}
		}
	}
}

// checkInstanceValue validates a single string instance value against the
// x-gts-ref constraint (a literal pattern or a JSON-pointer reference to
// one) declared at fieldPath.
func (v *XGtsRefValidator) checkInstanceValue(value string, refPattern interface{}, fieldPath string, schema map[string]interface{}) *XGtsRefValidationError {
	pattern, ok := refPattern.(string)
	if !ok {
		return refErr(fieldPath, value, fmt.Sprintf("%v", refPattern), "Value must be a string, got %T", refPattern)
	}

	if strings.HasPrefix(pattern, "/") {
		resolved := v.resolveJSONPointer(schema, pattern)
		if resolved == "" {
			return refErr(fieldPath, value, pattern, "Cannot resolve reference path '%s'", pattern)
		}
		if strings.HasPrefix(resolved, "/") {
			next := v.resolveJSONPointer(schema, resolved)
			if next == "" {
				return refErr(fieldPath, value, pattern, "Cannot resolve nested reference '%s' -> '%s'", pattern, resolved)
			}
			resolved = next
		}
		if !strings.HasPrefix(resolved, "gts.") {
			return refErr(fieldPath, value, pattern, "Resolved reference '%s' -> '%s' is not a GTS pattern", pattern, resolved)
		}
		pattern = resolved
	}

	return v.matchesGtsPattern(value, pattern, fieldPath)
}

// checkSchemaPattern validates that an x-gts-ref keyword's declared value
// is itself a legal absolute pattern or relative pointer.
func (v *XGtsRefValidator) checkSchemaPattern(refPattern interface{}, fieldPath string, rootSchema map[string]interface{}) *XGtsRefValidationError {
	pattern, ok := refPattern.(string)
	if !ok {
		return refErr(fieldPath, refPattern, "", "x-gts-ref value must be a string, got %T", refPattern)
	}

	switch {
	case strings.HasPrefix(pattern, "gts."):
		return v.checkGtsPatternSyntax(pattern, fieldPath)
	case strings.HasPrefix(pattern, "/"):
		resolved := v.resolveJSONPointer(rootSchema, pattern)
		if resolved == "" {
			return refErr(fieldPath, refPattern, pattern, "Cannot resolve reference path '%s'", pattern)
		}
		if !IsValidGtsID(resolved) {
			return refErr(fieldPath, refPattern, pattern, "Resolved reference '%s' -> '%s' is not a valid GTS identifier", pattern, resolved)
		}
		return nil
	default:
		return refErr(fieldPath, refPattern, pattern, "Invalid x-gts-ref value: '%s' must start with 'gts.' or '/'", pattern)
	}
}

// checkGtsPatternSyntax validates that pattern is either the universal
// wildcard, a syntactically valid wildcard prefix, or a concrete GTS ID.
func (v *XGtsRefValidator) checkGtsPatternSyntax(pattern, fieldPath string) *XGtsRefValidationError {
	if pattern == "gts.*" {
		return nil
	}
	if strings.Contains(pattern, "*") {
		if prefix := strings.TrimSuffix(pattern, "*"); !strings.HasPrefix(prefix, "gts.") {
			return refErr(fieldPath, pattern, pattern, "Invalid GTS wildcard pattern: %s", pattern)
		}
		return nil
	}
	if !IsValidGtsID(pattern) {
		return refErr(fieldPath, pattern, pattern, "Invalid GTS identifier: %s", pattern)
	}
	return nil
}

// matchesGtsPattern checks that value is a valid GTS ID matching pattern,
// and (when a store is attached) that the referenced entity is registered.
func (v *XGtsRefValidator) matchesGtsPattern(value, pattern, fieldPath string) *XGtsRefValidationError {
	if !IsValidGtsID(value) {
		return refErr(fieldPath, value, pattern, "Value '%s' is not a valid GTS identifier", value)
	}

	switch {
	case pattern == "gts.*":
		// matches anything valid
	case strings.HasSuffix(pattern, "*"):
		if prefix := pattern[:len(pattern)-1]; !strings.HasPrefix(value, prefix) {
			return refErr(fieldPath, value, pattern, "Value '%s' does not match pattern '%s'", value, pattern)
		}
	default:
		if !strings.HasPrefix(value, pattern) {
			return refErr(fieldPath, value, pattern, "Value '%s' does not match pattern '%s'", value, pattern)
		}
	}

	if v.store != nil && v.store.Get(value) == nil {
		return refErr(fieldPath, value, pattern, "Referenced entity '%s' not found in registry", value)
	}
	return nil
}

// resolveJSONPointer walks a '/'-delimited JSON pointer through schema and
// returns the string found there, following one further x-gts-ref hop if
// the pointed-to node declares one instead of being a plain string leaf.
func (v *XGtsRefValidator) resolveJSONPointer(schema map[string]interface{}, pointer string) string {
	path := strings.TrimPrefix(pointer, "/")
	if path == "" {
		return ""
	}

	var cursor interface{} = schema
	for _, part := range strings.Split(path, "/") {
		m, ok := cursor.(map[string]interface{})
		if !ok {
			return ""
		}
		cursor = m[part]
		if cursor == nil {
			return ""
		}
	}

	if s, ok := cursor.(string); ok {
		return s
	}
	if m, ok := cursor.(map[string]interface{}); ok {
		if ref, has := m["x-gts-ref"]; has {
			if s, ok := ref.(string); ok {
				if strings.HasPrefix(s, "/") {
					return v.resolveJSONPointer(schema, s)
				}
				return s
			}
		}
	}
	return ""
}
