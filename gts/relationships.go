/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "strings"

// SchemaGraphNode is one entity in the dependency graph rooted at a given
// GTS ID: its outgoing GTS references, the schema it belongs to, and any
// errors hit while resolving either.
type SchemaGraphNode struct {
	ID       string                      `json:"id"`
	Refs     map[string]*SchemaGraphNode `json:"refs,omitempty"`
	SchemaID *SchemaGraphNode            `json:"schema_id,omitempty"`
	Errors   []string                    `json:"errors,omitempty"`
}

// BuildSchemaGraph walks every GTS reference and schema link reachable from
// gtsID and returns the resulting dependency tree (OP#13), breaking cycles
// by visiting each ID at most once.
func (s *GtsStore) BuildSchemaGraph(gtsID string) *SchemaGraphNode {
	g := &graphBuilder{store: s, visited: make(map[string]bool)}
	return g.node(gtsID)
}

type graphBuilder struct {
	store   *GtsStore
	visited map[string]bool
}

func (g *graphBuilder) node(gtsID string) *SchemaGraphNode {
	n := &SchemaGraphNode{ID: gtsID}

	if g.visited[gtsID] {
		return n
	}
	g.visited[gtsID] = true

	entity := g.store.Get(gtsID)
	if entity == nil {
		n.Errors = append(n.Errors, "Entity not found")
		return n
	}

	if refs := g.refNodes(gtsID, entity.GtsRefs); len(refs) > 0 {
		n.Refs = refs
	}

	switch {
	case entity.SchemaID != "" && !isJSONSchemaURL(entity.SchemaID):
		n.SchemaID = g.node(entity.SchemaID)
	case entity.SchemaID == "" && !entity.IsSchema:
		n.Errors = append(n.Errors, "Schema not recognized")
	}

	return n
}

func (g *graphBuilder) refNodes(selfID string, refs []*GtsReference) map[string]*SchemaGraphNode {
	nodes := make(map[string]*SchemaGraphNode)
	for _, ref := range refs {
		if ref.ID == selfID || isJSONSchemaURL(ref.ID) {
			continue
		}
		nodes[ref.SourcePath] = g.node(ref.ID)
	}
	return nodes
}

// isJSONSchemaURL reports whether s is a well-known JSON Schema
// meta-schema URL, which is never itself a GTS dependency worth graphing.
func isJSONSchemaURL(s string) bool {
	return strings.HasPrefix(s, "http://json-schema.org") || strings.HasPrefix(s, "https://json-schema.org")
}
