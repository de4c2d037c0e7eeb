/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CastResult is the outcome of casting an instance across schema versions:
// the usual CompatibilityResult plus the transformed entity itself.
type CastResult struct {
	*CompatibilityResult
	CastedEntity map[string]any `json:"casted_entity,omitempty"`
}

// Cast rewrites the instance registered under instanceID so it conforms to
// the schema registered under toSchemaID, applying defaults for newly
// required fields and dropping fields the target schema no longer allows
// (OP#11).
func (s *GtsStore) Cast(instanceID, toSchemaID string) (*CastResult, error) {
	instance := s.Get(instanceID)
	if instance == nil {
		return nil, &StoreGtsObjectNotFoundError{EntityID: instanceID}
	}
	toSchema := s.Get(toSchemaID)
	if toSchema == nil {
		return nil, &StoreGtsSchemaNotFoundError{EntityID: toSchemaID}
	}
	if instance.IsSchema {
		return nil, &StoreGtsCastFromSchemaNotAllowedError{FromID: instanceID}
	}

	if instance.SchemaID == "" {
		return nil, &StoreGtsSchemaForInstanceNotFoundError{EntityID: instanceID}
	}
	fromSchema := s.Get(instance.SchemaID)
	if fromSchema == nil {
		return nil, &StoreGtsSchemaNotFoundError{EntityID: instance.SchemaID}
	}

	return (&caster{store: s}).cast(instanceID, toSchemaID, instance.Content, fromSchema.Content, toSchema.Content)
}

// caster carries the store reference needed to validate a cast result
// against the full target schema (including gts:// $refs).
type caster struct {
	store *GtsStore
}

func (c *caster) cast(fromInstanceID, toSchemaID string, fromInstanceContent, fromSchemaContent, toSchemaContent map[string]any) (*CastResult, error) {
	targetSchema := flattenAllOf(toSchemaContent)
	direction := versionDirection(fromInstanceID, toSchemaID)

	oldSchema, newSchema := fromSchemaContent, toSchemaContent
	if direction == "down" {
		oldSchema, newSchema = toSchemaContent, fromSchemaContent
	}
	isBackward, backwardErrors := schemaView(oldSchema).compatibleWith(schemaView(newSchema), directionBackward)
	isForward, forwardErrors := schemaView(oldSchema).compatibleWith(schemaView(newSchema), directionForward)

	xform := propertyTransform{targetSchema: targetSchema}
	casted := xform.apply(copyMap(fromInstanceContent), targetSchema, "")

	isFullyCompatible := casted.value != nil
	incompatibilityReasons := casted.incompatible
	if casted.value != nil {
		if err := c.validateTolerantly(casted.value, toSchemaContent); err != nil {
			incompatibilityReasons = append(incompatibilityReasons, err.Error())
			isFullyCompatible = false
		}
	}

	return &CastResult{
		CompatibilityResult: &CompatibilityResult{
			FromID:                 fromInstanceID,
			ToID:                   toSchemaID,
			OldID:                  fromInstanceID,
			NewID:                  toSchemaID,
			Direction:              direction,
			AddedProperties:        deduplicate(casted.added),
			RemovedProperties:      deduplicate(casted.removed),
			ChangedProperties:      []map[string]string{},
			IsFullyCompatible:      isFullyCompatible,
			IsBackwardCompatible:   isBackward,
			IsForwardCompatible:    isForward,
			IncompatibilityReasons: incompatibilityReasons,
			BackwardErrors:         backwardErrors,
			ForwardErrors:          forwardErrors,
		},
		CastedEntity: casted.value,
	}, nil
}

// validateTolerantly validates instance against schema after stripping any
// "const" GTS-ID constraints, since a cast is expected to rewrite those
// fields to the target version's own ID.
func (c *caster) validateTolerantly(instance, schema map[string]any) error {
	modifiedSchema := stripGtsConstConstraints(schema)

	compiler := jsonschema.NewCompiler()
	compiler.UseLoader(&gtsURLLoader{store: c.store})
	for id, entity := range c.store.byID {
		if entity.IsSchema {
			compiler.AddResource(id, entity.Content)
		}
	}

	const scratchID = "_cast_validation"
	compiler.AddResource(scratchID, modifiedSchema)

	compiled, err := compiler.Compile(scratchID)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// castOutcome accumulates the result of transforming one object level:
// the rewritten value plus which property paths were added/removed and
// which requirements could not be satisfied.
type castOutcome struct {
	value        map[string]any
	added        []string
	removed      []string
	incompatible []string
}

// propertyTransform rewrites an instance to match a (flattened) target
// schema: filling required defaults, syncing const-valued GTS ID fields,
// dropping disallowed fields, and recursing into nested objects/arrays.
type propertyTransform struct {
	targetSchema map[string]any
}

func (x propertyTransform) apply(instance map[string]any, schema map[string]any, basePath string) castOutcome {
	if instance == nil {
		return castOutcome{incompatible: []string{"Instance must be an object for casting"}}
	}

	view := schemaView(schema)
	targetProps := view.properties()
	required := view.requiredSet()
	allowExtra := additionalPropertiesAllowed(schema)

	out := castOutcome{value: copyMap(instance)}

	x.fillRequiredDefaults(out.value, targetProps, required, basePath, &out)
	x.fillOptionalDefaults(out.value, targetProps, required, basePath, &out)
	syncGtsIDConsts(out.value, targetProps)

	if !allowExtra {
		x.dropDisallowed(out.value, targetProps, basePath, &out)
	}
	x.recurseNested(out.value, targetProps, basePath, &out)

	return out
}

func (x propertyTransform) fillRequiredDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string, out *castOutcome) {
	for prop := range required {
		if _, exists := result[prop]; exists {
			continue
		}
		propSchema, _ := targetProps[prop].(map[string]any)
		if propSchema == nil {
			continue
		}
		if def, has := propSchema["default"]; has {
			result[prop] = copyValue(def)
			out.added = append(out.added, buildPath(basePath, prop))
		} else {
			out.incompatible = append(out.incompatible, fmt.Sprintf(
				"Missing required property '%s' and no default is defined", buildPath(basePath, prop)))
		}
	}
}

func (x propertyTransform) fillOptionalDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string, out *castOutcome) {
	for prop, propSchemaAny := range targetProps {
		if required[prop] {
			continue
		}
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}
		if _, exists := result[prop]; exists {
			continue
		}
		if def, has := propSchema["default"]; has {
			result[prop] = copyValue(def)
			out.added = append(out.added, buildPath(basePath, prop))
		}
	}
}

// syncGtsIDConsts rewrites any field whose target schema pins a GTS-ID
// "const" value to that value, when the existing value is also a GTS ID but
// a different one (i.e. an instance carrying the old schema's type tag).
func syncGtsIDConsts(result map[string]any, targetProps map[string]any) {
	for prop, propSchemaAny := range targetProps {
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}
		constVal, hasConst := propSchema["const"]
		if !hasConst {
			continue
		}
		existing, exists := result[prop]
		if !exists {
			continue
		}
		constStr, constIsStr := constVal.(string)
		existingStr, existingIsStr := existing.(string)
		if constIsStr && existingIsStr && IsValidGtsID(constStr) && IsValidGtsID(existingStr) && existingStr != constStr {
			result[prop] = constStr
		}
	}
}

func (x propertyTransform) dropDisallowed(result map[string]any, targetProps map[string]any, basePath string, out *castOutcome) {
	for prop := range result {
		if _, inTarget := targetProps[prop]; inTarget {
			continue
		}
		delete(result, prop)
		out.removed = append(out.removed, buildPath(basePath, prop))
	}
}

func (x propertyTransform) recurseNested(result map[string]any, targetProps map[string]any, basePath string, out *castOutcome) {
	for prop, propSchemaAny := range targetProps {
		val, exists := result[prop]
		if !exists {
			continue
		}
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}

		switch schemaView(propSchema).str("type") {
		case "object":
			valMap, isMap := val.(map[string]any)
			if !isMap {
				continue
			}
			nested := x.apply(valMap, effectiveObjectSchema(propSchema), buildPath(basePath, prop))
			result[prop] = nested.value
			out.added = append(out.added, nested.added...)
			out.removed = append(out.removed, nested.removed...)
			out.incompatible = append(out.incompatible, nested.incompatible...)

		case "array":
			valArray, isArray := val.([]any)
			if !isArray {
				continue
			}
			items := schemaView(propSchema).obj("items")
			if items == nil || schemaView(items).str("type") != "object" {
				continue
			}
			itemSchema := effectiveObjectSchema(items)
			newList := make([]any, 0, len(valArray))
			for idx, item := range valArray {
				itemMap, isMap := item.(map[string]any)
				if !isMap {
					newList = append(newList, item)
					continue
				}
				nested := x.apply(itemMap, itemSchema, buildPath(basePath, fmt.Sprintf("%s[%d]", prop, idx)))
				newList = append(newList, nested.value)
				out.added = append(out.added, nested.added...)
				out.removed = append(out.removed, nested.removed...)
				out.incompatible = append(out.incompatible, nested.incompatible...)
			}
			result[prop] = newList
		}
	}
}

// effectiveObjectSchema returns the sub-schema that actually carries object
// shape (properties/required), following into an allOf branch when the
// schema itself is just a composition wrapper.
func effectiveObjectSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return map[string]any{}
	}
	if _, ok := schema["properties"]; ok {
		return schema
	}
	if _, ok := schema["required"]; ok {
		return schema
	}
	if allOfList, ok := schema["allOf"].([]any); ok {
		for _, partAny := range allOfList {
			part, ok := partAny.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := part["properties"]; ok {
				return part
			}
			if _, ok := part["required"]; ok {
				return part
			}
		}
	}
	return schema
}

// stripGtsConstConstraints replaces any "const" keyword whose value is a
// GTS ID with a bare "type": "string" constraint, so a cast's rewritten ID
// fields don't fail validation against the old const.
func stripGtsConstConstraints(schema any) any {
	switch v := schema.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			if key == "const" {
				if s, ok := value.(string); ok && IsValidGtsID(s) {
					result["type"] = "string"
					continue
				}
			}
			result[key] = stripGtsConstConstraints(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = stripGtsConstConstraints(item)
		}
		return result
	default:
		return v
	}
}

func additionalPropertiesAllowed(schema map[string]any) bool {
	if v, ok := schema["additionalProperties"].(bool); ok {
		return v
	}
	return true
}

// buildPath appends prop to base with a dot, unless prop is itself a
// bracketed array index.
func buildPath(base, prop string) string {
	if base == "" {
		return prop
	}
	if strings.HasPrefix(prop, "[") {
		return base + prop
	}
	return base + "." + prop
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = copyValue(v)
	}
	return result
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = copyValue(item)
		}
		return result
	default:
		return v
	}
}

// deduplicate returns slice with duplicates removed, sorted for stable
// output across map-iteration-order-dependent callers.
func deduplicate(slice []string) []string {
	seen := make(map[string]bool, len(slice))
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}
