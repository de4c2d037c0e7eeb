/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"
)

// CompatibilityResult is the outcome of comparing two registered schema
// versions for backward/forward compatibility (OP#12).
type CompatibilityResult struct {
	FromID                 string              `json:"from"`
	ToID                   string              `json:"to"`
	OldID                  string              `json:"old"`
	NewID                  string              `json:"new"`
	Direction              string              `json:"direction"`
	AddedProperties        []string            `json:"added_properties"`
	RemovedProperties      []string            `json:"removed_properties"`
	ChangedProperties      []map[string]string `json:"changed_properties"`
	IsFullyCompatible      bool                `json:"is_fully_compatible"`
	IsBackwardCompatible   bool                `json:"is_backward_compatible"`
	IsForwardCompatible    bool                `json:"is_forward_compatible"`
	IncompatibilityReasons []string            `json:"incompatibility_reasons"`
	BackwardErrors         []string            `json:"backward_errors"`
	ForwardErrors          []string            `json:"forward_errors"`
	Error                  string              `json:"error,omitempty"`
}

func compatibilityFailure(oldID, newID string, reason string) *CompatibilityResult {
	return &CompatibilityResult{
		FromID:                 oldID,
		ToID:                   newID,
		OldID:                  oldID,
		NewID:                  newID,
		Direction:              "unknown",
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IncompatibilityReasons: []string{},
		BackwardErrors:         []string{reason},
		ForwardErrors:          []string{reason},
	}
}

// CheckCompatibility compares the schemas registered under oldSchemaID and
// newSchemaID, reporting whether new readers can consume old data
// (backward) and whether old readers can consume new data (forward).
func (s *GtsStore) CheckCompatibility(oldSchemaID, newSchemaID string) *CompatibilityResult {
	oldEntity := s.Get(oldSchemaID)
	newEntity := s.Get(newSchemaID)
	if oldEntity == nil || newEntity == nil {
		return compatibilityFailure(oldSchemaID, newSchemaID, "Schema not found")
	}
	if oldEntity.Content == nil || newEntity.Content == nil {
		return compatibilityFailure(oldSchemaID, newSchemaID, "Invalid schema content")
	}

	isBackward, backwardErrors := schemaView(oldEntity.Content).compatibleWith(schemaView(newEntity.Content), directionBackward)
	isForward, forwardErrors := schemaView(oldEntity.Content).compatibleWith(schemaView(newEntity.Content), directionForward)

	return &CompatibilityResult{
		FromID:                 oldSchemaID,
		ToID:                   newSchemaID,
		OldID:                  oldSchemaID,
		NewID:                  newSchemaID,
		Direction:              versionDirection(oldSchemaID, newSchemaID),
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IsFullyCompatible:      isBackward && isForward,
		IsBackwardCompatible:   isBackward,
		IsForwardCompatible:    isForward,
		IncompatibilityReasons: []string{},
		BackwardErrors:         backwardErrors,
		ForwardErrors:          forwardErrors,
	}
}

// versionDirection reports whether toID's minor version is newer ("up"),
// older ("down"), or equal ("none") relative to fromID's, or "unknown" when
// either ID lacks a minor version.
func versionDirection(fromID, toID string) string {
	fromGtsID, err1 := NewGtsID(fromID)
	toGtsID, err2 := NewGtsID(toID)
	if err1 != nil || err2 != nil || len(fromGtsID.Segments) == 0 || len(toGtsID.Segments) == 0 {
		return "unknown"
	}

	fromSeg := fromGtsID.Segments[len(fromGtsID.Segments)-1]
	toSeg := toGtsID.Segments[len(toGtsID.Segments)-1]
	if fromSeg.VerMinor == nil || toSeg.VerMinor == nil {
		return "unknown"
	}

	switch {
	case *toSeg.VerMinor > *fromSeg.VerMinor:
		return "up"
	case *toSeg.VerMinor < *fromSeg.VerMinor:
		return "down"
	default:
		return "none"
	}
}

// schemaView is a schema document with accessor methods for the bits
// compatibility checking cares about.
type schemaView map[string]any

func (s schemaView) str(key string) string {
	v, _ := s[key].(string)
	return v
}

func (s schemaView) obj(key string) map[string]any {
	v, _ := s[key].(map[string]any)
	return v
}

func (s schemaView) properties() map[string]any {
	if p := s.obj("properties"); p != nil {
		return p
	}
	return map[string]any{}
}

func (s schemaView) requiredSet() map[string]bool {
	set := make(map[string]bool)
	list, _ := s["required"].([]any)
	for _, item := range list {
		if str, ok := item.(string); ok {
			set[str] = true
		}
	}
	return set
}

func (s schemaView) enumValues() []string {
	var out []string
	list, _ := s["enum"].([]any)
	for _, item := range list {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func (s schemaView) number(key string) *float64 {
	switch v := s[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

// flattenAllOf merges an "allOf" composition into a single effective
// schema: nested properties/required are combined, with the most specific
// (innermost, then outer) additionalProperties winning last.
func flattenAllOf(schema map[string]any) map[string]any {
	s := schemaView(schema)
	merged := map[string]any{
		"properties": map[string]any{},
		"required":   []any{},
	}
	mergedProps := merged["properties"].(map[string]any)

	if allOfList, ok := s["allOf"].([]any); ok {
		for _, sub := range allOfList {
			subSchema, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			flat := flattenAllOf(subSchema)
			for k, v := range flat["properties"].(map[string]any) {
				mergedProps[k] = v
			}
			merged["required"] = append(merged["required"].([]any), flat["required"].([]any)...)
			if ap, ok := flat["additionalProperties"]; ok {
				merged["additionalProperties"] = ap
			}
		}
	}

	for k, v := range s.properties() {
		mergedProps[k] = v
	}
	if req, ok := s["required"].([]any); ok {
		merged["required"] = append(merged["required"].([]any), req...)
	}
	if ap, ok := s["additionalProperties"]; ok {
		merged["additionalProperties"] = ap
	}

	return merged
}

type compatDirection int

const (
	directionBackward compatDirection = iota
	directionForward
)

// compatibleWith checks old against new in the given direction: backward
// compatibility asks whether readers built against new can still consume
// data shaped by old; forward asks the reverse.
func (old schemaView) compatibleWith(new schemaView, dir compatDirection) (bool, []string) {
	var errs []string

	oldFlat := schemaView(flattenAllOf(old))
	newFlat := schemaView(flattenAllOf(new))

	oldProps := oldFlat.properties()
	newProps := newFlat.properties()
	oldRequired := oldFlat.requiredSet()
	newRequired := newFlat.requiredSet()

	if dir == directionBackward {
		if added := setDifference(newRequired, oldRequired); len(added) > 0 {
			errs = append(errs, "Added required properties: "+strings.Join(added, ", "))
		}
	} else {
		if removed := setDifference(oldRequired, newRequired); len(removed) > 0 {
			errs = append(errs, "Removed required properties: "+strings.Join(removed, ", "))
		}
	}

	for _, prop := range setIntersection(mapKeys(oldProps), mapKeys(newProps)) {
		oldPropSchema := schemaView(oldProps[prop].(map[string]any))
		newPropSchema := schemaView(newProps[prop].(map[string]any))
		errs = append(errs, comparePropertySchemas(prop, oldPropSchema, newPropSchema, dir)...)
	}

	return len(errs) == 0, errs
}

// comparePropertySchemas checks one property's schema across a version
// bump: type stability, enum/constraint tightening rules, and (for
// object/array properties) a recursive re-check of the nested shape.
func comparePropertySchemas(prop string, oldPropSchema, newPropSchema schemaView, dir compatDirection) []string {
	var errs []string

	oldType := oldPropSchema.str("type")
	newType := newPropSchema.str("type")
	if oldType != "" && newType != "" && oldType != newType {
		errs = append(errs, fmt.Sprintf("Property '%s' type changed from %s to %s", prop, oldType, newType))
	}

	oldEnum := oldPropSchema.enumValues()
	newEnum := newPropSchema.enumValues()
	if len(oldEnum) > 0 && len(newEnum) > 0 {
		errs = append(errs, compareEnums(prop, stringSliceToSet(oldEnum), stringSliceToSet(newEnum), dir)...)
	}

	errs = append(errs, checkTypeConstraints(prop, oldType, oldPropSchema, newPropSchema, dir)...)

	switch {
	case oldType == "object" && newType == "object":
		if ok, nested := oldPropSchema.compatibleWith(newPropSchema, dir); !ok {
			for _, e := range nested {
				errs = append(errs, fmt.Sprintf("Property '%s': %s", prop, e))
			}
		}
	case oldType == "array" && newType == "array":
		oldItems, newItems := oldPropSchema.obj("items"), newPropSchema.obj("items")
		if oldItems != nil && newItems != nil {
			if ok, nested := schemaView(oldItems).compatibleWith(schemaView(newItems), dir); !ok {
				for _, e := range nested {
					errs = append(errs, fmt.Sprintf("Property '%s' array items: %s", prop, e))
				}
			}
		}
	}

	return errs
}

func compareEnums(prop string, oldSet, newSet map[string]bool, dir compatDirection) []string {
	if dir == directionBackward {
		if added := setDifference(newSet, oldSet); len(added) > 0 {
			return []string{fmt.Sprintf("Property '%s' added enum values: %s", prop, strings.Join(added, ", "))}
		}
		return nil
	}
	if removed := setDifference(oldSet, newSet); len(removed) > 0 {
		return []string{fmt.Sprintf("Property '%s' removed enum values: %s", prop, strings.Join(removed, ", "))}
	}
	return nil
}

// checkTypeConstraints checks the numeric/string/array range keywords
// appropriate to propType.
func checkTypeConstraints(prop, propType string, oldPropSchema, newPropSchema schemaView, dir compatDirection) []string {
	var keys [2]string
	switch propType {
	case "number", "integer":
		keys = [2]string{"minimum", "maximum"}
	case "string":
		keys = [2]string{"minLength", "maxLength"}
	case "array":
		keys = [2]string{"minItems", "maxItems"}
	default:
		return nil
	}
	return checkRangeConstraint(prop, oldPropSchema, newPropSchema, keys[0], keys[1], dir)
}

// checkRangeConstraint checks a min/max constraint pair for the change that
// breaks compatibility in dir: backward flags a tightened (or newly added)
// bound, which rejects old data; forward flags a relaxed (or removed) bound,
// which lets new data fall outside what old readers accept.
func checkRangeConstraint(prop string, oldSchema, newSchema schemaView, minKey, maxKey string, dir compatDirection) []string {
	var errs []string
	oldMin, newMin := oldSchema.number(minKey), newSchema.number(minKey)
	oldMax, newMax := oldSchema.number(maxKey), newSchema.number(maxKey)

	tightening := dir == directionBackward
	switch {
	case tightening && oldMin != nil && newMin != nil && *newMin > *oldMin:
		errs = append(errs, fmt.Sprintf("Property '%s' %s increased from %s to %s", prop, minKey, floatToString(*oldMin), floatToString(*newMin)))
	case tightening && oldMin == nil && newMin != nil:
		errs = append(errs, fmt.Sprintf("Property '%s' added %s constraint: %s", prop, minKey, floatToString(*newMin)))
	case !tightening && oldMin != nil && newMin != nil && *newMin < *oldMin:
		errs = append(errs, fmt.Sprintf("Property '%s' %s decreased from %s to %s", prop, minKey, floatToString(*oldMin), floatToString(*newMin)))
	case !tightening && oldMin != nil && newMin == nil:
		errs = append(errs, fmt.Sprintf("Property '%s' removed %s constraint", prop, minKey))
	}

	switch {
	case tightening && oldMax != nil && newMax != nil && *newMax < *oldMax:
		errs = append(errs, fmt.Sprintf("Property '%s' %s decreased from %s to %s", prop, maxKey, floatToString(*oldMax), floatToString(*newMax)))
	case tightening && oldMax == nil && newMax != nil:
		errs = append(errs, fmt.Sprintf("Property '%s' added %s constraint: %s", prop, maxKey, floatToString(*newMax)))
	case !tightening && oldMax != nil && newMax != nil && *newMax > *oldMax:
		errs = append(errs, fmt.Sprintf("Property '%s' %s increased from %s to %s", prop, maxKey, floatToString(*oldMax), floatToString(*newMax)))
	case !tightening && oldMax != nil && newMax == nil:
		errs = append(errs, fmt.Sprintf("Property '%s' removed %s constraint", prop, maxKey))
	}

	return errs
}

func mapKeys(m map[string]any) map[string]bool {
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

func setDifference(a, b map[string]bool) []string {
	var diff []string
	for k := range a {
		if !b[k] {
			diff = append(diff, k)
		}
	}
	sort.Strings(diff)
	return diff
}

func setIntersection(a, b map[string]bool) []string {
	var common []string
	for k := range a {
		if b[k] {
			common = append(common, k)
		}
	}
	sort.Strings(common)
	return common
}

func stringSliceToSet(slice []string) map[string]bool {
	set := make(map[string]bool, len(slice))
	for _, s := range slice {
		set[s] = true
	}
	return set
}

// floatToString renders f without a trailing ".0" or padded decimal zeros.
func floatToString(f float64) string {
	s := fmt.Sprintf("%.10f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
