/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "fmt"

// ErrRefNotObject is returned by ResolveRefs when a $ref resolves to a
// schema whose content is not itself a JSON object (e.g. a boolean schema).
// The source program left this case unspecified; this port makes it an
// explicit, reported error rather than silently passing the value through.
type ErrRefNotObject struct {
	RefTarget string
}

func (e *ErrRefNotObject) Error() string {
	return fmt.Sprintf("$ref target '%s' did not resolve to a JSON object", e.RefTarget)
}

// ResolveRefs inlines every $ref found in schema by looking up its target in
// the store and splicing in the target's (recursively resolved) content.
// See gts-rust store.rs resolve_schema_refs.
//
// Resolution rules, applied top-down:
//   - an object whose only key is "$ref": replaced outright by the resolved
//     target content (nested $id/$schema stripped so the compiled schema
//     never tries to re-resolve a URL against them).
//   - an object with "$ref" plus sibling keys: resolved target fields first,
//     then the sibling fields (themselves resolved) override.
//   - an unresolvable $ref: the $ref key is dropped and the remaining
//     sibling fields are kept, resolved; if nothing remains the node is
//     returned unchanged (so callers can see the bare {"$ref": ...} node).
//   - everything else: structural recursion over maps and slices.
func (s *GtsStore) ResolveRefs(schema any) (any, error) {
	return resolveRefsIn(s, schema)
}

func resolveRefsIn(s *GtsStore, node any) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		return resolveRefsInObject(s, v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := resolveRefsIn(s, item)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func resolveRefsInObject(s *GtsStore, obj map[string]any) (any, error) {
	refVal, hasRef := obj["$ref"]
	if !hasRef {
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			resolved, err := resolveRefsIn(s, v)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	}

	refTarget, ok := refVal.(string)
	if !ok {
		return resolveSiblingsOnly(s, obj)
	}

	entity := s.Get(refTarget)
	if entity == nil || !entity.IsSchema {
		// Unresolvable: drop $ref, keep (resolved) siblings.
		return resolveSiblingsOnly(s, obj)
	}
	if entity.Content == nil {
		return nil, &ErrRefNotObject{RefTarget: refTarget}
	}

	resolvedTarget, err := resolveRefsIn(s, entity.Content)
	if err != nil {
		return nil, err
	}

	resolvedMap, ok := resolvedTarget.(map[string]any)
	if !ok {
		return nil, &ErrRefNotObject{RefTarget: refTarget}
	}

	// Strip nested $id/$schema to avoid URL-resolution collisions once inlined.
	clean := make(map[string]any, len(resolvedMap))
	for k, v := range resolvedMap {
		if k == "$id" || k == "$schema" {
			continue
		}
		clean[k] = v
	}

	if len(obj) == 1 {
		// Only "$ref" present: the resolved target stands in wholesale.
		return clean, nil
	}

	merged := make(map[string]any, len(clean)+len(obj))
	for k, v := range clean {
		merged[k] = v
	}
	for k, v := range obj {
		if k == "$ref" {
			continue
		}
		resolved, err := resolveRefsIn(s, v)
		if err != nil {
			return nil, err
		}
		merged[k] = resolved
	}
	return merged, nil
}

func resolveSiblingsOnly(s *GtsStore, obj map[string]any) (any, error) {
	out := make(map[string]any)
	for k, v := range obj {
		if k == "$ref" {
			continue
		}
		resolved, err := resolveRefsIn(s, v)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	if len(out) == 0 {
		return obj, nil
	}
	return out, nil
}
