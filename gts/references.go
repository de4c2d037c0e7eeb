/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "fmt"

// GtsReference is one GTS identifier found somewhere inside a JSON document,
// together with the dotted/bracketed path it was found at.
type GtsReference struct {
	ID         string
	SourcePath string
}

// extractGtsReferences walks content and returns every distinct
// (GTS ID, path) pair it contains, in first-seen order.
func extractGtsReferences(content any) []*GtsReference {
	c := &refCollector{seen: make(map[string]bool)}
	c.walk(content, "")
	return c.refs
}

// refCollector accumulates GtsReferences while walking a JSON tree,
// deduplicating by (ID, path) so repeated visits to shared substructures
// don't produce repeated entries.
type refCollector struct {
	refs []*GtsReference
	seen map[string]bool
}

func (c *refCollector) walk(node any, path string) {
	switch v := node.(type) {
	case nil:
		return
	case string:
		c.record(v, path)
	case map[string]any:
		for k, child := range v {
			c.walk(child, joinFieldPath(path, k))
		}
	case []any:
		for i, child := range v {
			c.walk(child, joinIndexPath(path, i))
		}
	}
}

func (c *refCollector) record(candidate, path string) {
	if !IsValidGtsID(candidate) {
		return
	}
	if path == "" {
		path = "root"
	}
	key := candidate + "|" + path
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.refs = append(c.refs, &GtsReference{ID: candidate, SourcePath: path})
}

func joinFieldPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func joinIndexPath(base string, i int) string {
	return base + fmt.Sprintf("[%d]", i)
}
