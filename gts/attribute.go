/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strconv"
	"strings"
)

// AttributeResult is the outcome of resolving a "gts_id@path.to.field"
// attribute selector against a registered entity's content (OP#11).
type AttributeResult struct {
	GtsID           string   `json:"gts_id"`
	Path            string   `json:"path"`
	Value           any      `json:"value,omitempty"`
	Resolved        bool     `json:"resolved"`
	Error           string   `json:"error,omitempty"`
	AvailableFields []string `json:"available_fields,omitempty"`
}

// GetAttribute resolves "gts_id@path.to.field" (or "gts_id@array[0].field")
// against the entity's registered content.
func (s *GtsStore) GetAttribute(gtsWithPath string) *AttributeResult {
	gtsID, path, hasPath := splitAtSelector(gtsWithPath)
	if !hasPath {
		return &AttributeResult{GtsID: gtsID, Error: "Attribute selector requires '@path' in the identifier"}
	}

	entity := s.Get(gtsID)
	if entity == nil {
		return &AttributeResult{GtsID: gtsID, Path: path, Error: fmt.Sprintf("Entity not found: %s", gtsID)}
	}

	walker := attributeWalker{gtsID: gtsID, path: path}
	return walker.resolve(entity.Content)
}

// splitAtSelector splits "gts_id@path" into its two halves. hasPath is false
// when no '@' was present at all, distinguishing "no selector" from "empty
// selector".
func splitAtSelector(gtsWithPath string) (gtsID, path string, hasPath bool) {
	at := strings.IndexByte(gtsWithPath, '@')
	if at < 0 {
		return gtsWithPath, "", false
	}
	return gtsWithPath[:at], gtsWithPath[at+1:], true
}

// attributeWalker carries the identity of the selector being resolved so
// each traversal step can report a fully-qualified error.
type attributeWalker struct {
	gtsID string
	path  string
}

// resolve walks content one path token at a time, following map keys and
// array indices, and reports the fields available at the point of failure.
func (w attributeWalker) resolve(content map[string]any) *AttributeResult {
	result := &AttributeResult{GtsID: w.gtsID, Path: w.path}

	var cursor any = content
	for _, token := range tokenizeAttributePath(w.path) {
		next, err := stepInto(cursor, token)
		if err != nil {
			result.Error = err.Error()
			result.AvailableFields = availableFieldsAt(cursor, "")
			return result
		}
		cursor = next
	}

	result.Value = cursor
	result.Resolved = true
	return result
}

// stepInto advances cursor by a single path token: a map key against an
// object, or an index (bare or "[N]") against an array.
func stepInto(cursor any, token string) (any, error) {
	switch node := cursor.(type) {
	case map[string]any:
		if isIndexToken(token) {
			return nil, fmt.Errorf("path not found at segment '%s', see available fields", token)
		}
		val, ok := node[token]
		if !ok {
			return nil, fmt.Errorf("path not found at segment '%s', see available fields", token)
		}
		return val, nil

	case []any:
		idx, ok := parseIndexToken(token)
		if !ok {
			return nil, fmt.Errorf("expected list index at segment '%s'", token)
		}
		if idx < 0 || idx >= len(node) {
			return nil, fmt.Errorf("Index out of range at segment '%s'", token)
		}
		return node[idx], nil

	default:
		return nil, fmt.Errorf("cannot descend into %T at segment '%s'", cursor, token)
	}
}

func isIndexToken(token string) bool {
	return strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]")
}

// parseIndexToken accepts either a bare integer or a bracketed "[N]" index.
func parseIndexToken(token string) (int, bool) {
	digits := token
	if isIndexToken(token) {
		digits = token[1 : len(token)-1]
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}

// tokenizeAttributePath splits a "/"-or-"."-delimited path into tokens,
// pulling "[N]" array-index suffixes out as their own tokens
// (e.g. "items[0].name" -> ["items", "[0]", "name"]).
func tokenizeAttributePath(path string) []string {
	var tokens []string
	for _, seg := range strings.Split(strings.ReplaceAll(path, "/", "."), ".") {
		if seg != "" {
			tokens = append(tokens, splitIndexSuffixes(seg)...)
		}
	}
	return tokens
}

// splitIndexSuffixes breaks a single dot-separated segment like
// "items[0][1]" into ["items", "[0]", "[1]"].
func splitIndexSuffixes(seg string) []string {
	var out []string
	var buf strings.Builder

	i := 0
	for i < len(seg) {
		if seg[i] != '[' {
			buf.WriteByte(seg[i])
			i++
			continue
		}
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
		end := strings.IndexByte(seg[i+1:], ']')
		if end == -1 {
			buf.WriteString(seg[i:])
			break
		}
		end += i + 1
		out = append(out, seg[i:end+1])
		i = end + 1
	}
	if buf.Len() > 0 {
		out = append(out, buf.String())
	}
	return out
}

// availableFieldsAt lists the field paths (map keys, array indices, and
// their nested descendants) reachable from node, for error reporting when a
// path lookup fails partway through.
func availableFieldsAt(node any, prefix string) []string {
	var fields []string
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			fields = append(fields, path)
			fields = append(fields, availableFieldsAt(val, path)...)
		}
	case []any:
		for i, val := range v {
			path := fmt.Sprintf("%s[%d]", prefix, i)
			fields = append(fields, path)
			fields = append(fields, availableFieldsAt(val, path)...)
		}
	}
	return fields
}
