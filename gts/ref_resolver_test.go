/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerSchema(t *testing.T, store *GtsStore, id string, content map[string]any) {
	t.Helper()
	content["$id"] = id
	if _, ok := content["$schema"]; !ok {
		content["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	}
	entity := NewJsonEntity(content, DefaultGtsConfig())
	require.NoError(t, store.Register(entity))
}

func TestResolveRefs_BareRef(t *testing.T) {
	store := NewGtsStore(nil)
	registerSchema(t, store, "gts.x.core.base.type.v1~", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string"},
		},
	})

	resolved, err := store.ResolveRefs(map[string]any{
		"$ref": "gts.x.core.base.type.v1~",
	})
	require.NoError(t, err)

	out, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", out["type"])
	assert.NotContains(t, out, "$id")
	assert.NotContains(t, out, "$ref")
}

func TestResolveRefs_RefWithSiblingsOverrides(t *testing.T) {
	store := NewGtsStore(nil)
	registerSchema(t, store, "gts.x.core.base.type.v1~", map[string]any{
		"type":        "object",
		"description": "base",
	})

	resolved, err := store.ResolveRefs(map[string]any{
		"$ref":        "gts.x.core.base.type.v1~",
		"description": "override",
	})
	require.NoError(t, err)

	out, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", out["type"])
	assert.Equal(t, "override", out["description"])
}

func TestResolveRefs_UnresolvableRefDropsRefKeepsSiblings(t *testing.T) {
	store := NewGtsStore(nil)

	resolved, err := store.ResolveRefs(map[string]any{
		"$ref":        "gts.x.core.missing.type.v1~",
		"description": "kept",
	})
	require.NoError(t, err)

	out, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, out, "$ref")
	assert.Equal(t, "kept", out["description"])
}

func TestResolveRefs_UnresolvableBareRefReturnsUnchanged(t *testing.T) {
	store := NewGtsStore(nil)

	node := map[string]any{"$ref": "gts.x.core.missing.type.v1~"}
	resolved, err := store.ResolveRefs(node)
	require.NoError(t, err)

	out, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gts.x.core.missing.type.v1~", out["$ref"])
}

func TestResolveRefs_RecursesIntoNestedStructures(t *testing.T) {
	store := NewGtsStore(nil)
	registerSchema(t, store, "gts.x.core.base.type.v1~", map[string]any{
		"type": "string",
	})

	resolved, err := store.ResolveRefs(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"$ref": "gts.x.core.base.type.v1~"},
		},
		"items": []any{
			map[string]any{"$ref": "gts.x.core.base.type.v1~"},
		},
	})
	require.NoError(t, err)

	out := resolved.(map[string]any)
	props := out["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])

	items := out["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "string", items[0].(map[string]any)["type"])
}

func TestResolveRefs_RefTargetNonObjectErrors(t *testing.T) {
	store := NewGtsStore(nil)
	entity := &JsonEntity{IsSchema: true, Content: nil}
	store.byID["gts.x.core.bool.type.v1~"] = entity

	_, err := store.ResolveRefs(map[string]any{"$ref": "gts.x.core.bool.type.v1~"})
	require.Error(t, err)
	var refErr *ErrRefNotObject
	assert.ErrorAs(t, err, &refErr)
}

func TestResolveRefs_RefToNonSchemaEntityIsUnresolvable(t *testing.T) {
	store := NewGtsStore(nil)
	instance := NewJsonEntity(map[string]any{
		"gtsId": "gts.x.core.thing.type.v1.0",
		"name":  "not a schema",
	}, DefaultGtsConfig())
	require.NoError(t, store.Register(instance))

	resolved, err := store.ResolveRefs(map[string]any{
		"$ref": "gts.x.core.thing.type.v1.0",
	})
	require.NoError(t, err)

	out, ok := resolved.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gts.x.core.thing.type.v1.0", out["$ref"])
}
