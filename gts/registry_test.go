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

func TestRegistryConfig(t *testing.T) {
	t.Run("DefaultRegistryConfig", func(t *testing.T) {
		config := DefaultRegistryConfig()
		require.NotNil(t, config)
		assert.False(t, config.ValidateGtsReferences)
	})
}

func TestNewGtsStoreWithConfig(t *testing.T) {
	t.Run("WithNilConfig", func(t *testing.T) {
		store := NewGtsStoreWithConfig(nil, nil)
		require.NotNil(t, store)
		require.NotNil(t, store.config)
		assert.False(t, store.config.ValidateGtsReferences)
	})

	t.Run("WithValidationEnabled", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)
		require.NotNil(t, store)
		assert.True(t, store.config.ValidateGtsReferences)
	})
}

func TestGtsReferenceValidation(t *testing.T) {
	t.Run("SuccessfulValidation", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)

		schema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.user.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type":    "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"name": map[string]any{"type": "string"},
			},
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(schema))

		instance := NewJsonEntity(map[string]any{
			"gtsId":   "gts.test.pkg.ns.user.v1.0",
			"$schema": "gts.test.pkg.ns.user.v1~",
			"id":      "user-123",
			"name":    "John Doe",
		}, DefaultGtsConfig())
		assert.NoError(t, store.Register(instance))
	})

	t.Run("ValidationDisabled", func(t *testing.T) {
		store := NewGtsStore(nil)

		instance := NewJsonEntity(map[string]any{
			"gtsId":   "gts.test.pkg.ns.user.v1.0",
			"$schema": "gts.test.pkg.ns.nonexistent.v1~",
			"id":      "user-123",
			"name":    "John Doe",
		}, DefaultGtsConfig())

		assert.NoError(t, store.Register(instance))
	})

	t.Run("MissingReference", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)

		instance := NewJsonEntity(map[string]any{
			"gtsId":   "gts.test.pkg.ns.user.v1.0",
			"$schema": "gts.test.pkg.ns.nonexistent.v1~",
			"id":      "user-123",
			"name":    "John Doe",
		}, DefaultGtsConfig())

		err := store.Register(instance)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenced entity not found")
	})

	t.Run("SelfReferenceSkipped", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)

		schema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.recursive.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type":    "object",
			"properties": map[string]any{
				"id": map[string]any{"type": "string"},
				"child": map[string]any{
					"$ref": "gts.test.pkg.ns.recursive.v1~",
				},
			},
		}, DefaultGtsConfig())

		assert.NoError(t, store.Register(schema))
	})

	t.Run("JSONSchemaMetaSchemaSkipped", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)

		schema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.schema.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type":    "object",
		}, DefaultGtsConfig())

		assert.NoError(t, store.Register(schema))
	})
}

func TestValidateSchema(t *testing.T) {
	t.Run("ValidSchema", func(t *testing.T) {
		store := NewGtsStore(nil)

		schema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.valid.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type":    "object",
			"properties": map[string]any{
				"id": map[string]any{"type": "string"},
			},
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(schema))

		assert.NoError(t, store.ValidateSchema("gts.test.pkg.ns.valid.v1~"))
	})

	t.Run("NonSchemaID", func(t *testing.T) {
		store := NewGtsStore(nil)

		err := store.ValidateSchema("gts.test.pkg.ns.instance.v1.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a schema")
	})

	t.Run("SchemaNotFound", func(t *testing.T) {
		store := NewGtsStore(nil)

		err := store.ValidateSchema("gts.test.pkg.ns.nonexistent.v1~")
		require.Error(t, err)
		assert.IsType(t, &StoreGtsSchemaNotFoundError{}, err)
	})

	t.Run("EntityIsNotSchema", func(t *testing.T) {
		store := NewGtsStore(nil)

		instance := NewJsonEntity(map[string]any{
			"gtsId": "gts.test.pkg.ns.instance.v1~",
			"name":  "Test Instance",
		}, DefaultGtsConfig())
		instance.IsSchema = false
		require.NoError(t, store.Register(instance))

		err := store.ValidateSchema("gts.test.pkg.ns.instance.v1~")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a schema")
	})
}

func TestRegistryIntegration(t *testing.T) {
	t.Run("CompleteWorkflow", func(t *testing.T) {
		config := &RegistryConfig{ValidateGtsReferences: true}
		store := NewGtsStoreWithConfig(nil, config)

		userSchema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.user.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"type":    "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"name": map[string]any{"type": "string"},
			},
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(userSchema))

		extendedSchema := NewJsonEntity(map[string]any{
			"$id":     "gts.test.pkg.ns.admin.v1~",
			"$schema": "https://json-schema.org/draft/2020-12/schema",
			"allOf": []any{
				map[string]any{"$ref": "gts.test.pkg.ns.user.v1~"},
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"permissions": map[string]any{"type": "array"},
					},
				},
			},
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(extendedSchema))

		userInstance := NewJsonEntity(map[string]any{
			"gtsId":   "gts.test.pkg.ns.user.v1.0",
			"$schema": "gts.test.pkg.ns.user.v1~",
			"id":      "user-123",
			"name":    "John Doe",
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(userInstance))

		adminInstance := NewJsonEntity(map[string]any{
			"gtsId":       "gts.test.pkg.ns.admin.v1.0",
			"$schema":     "gts.test.pkg.ns.admin.v1~",
			"id":          "admin-456",
			"name":        "Jane Admin",
			"permissions": []string{"read", "write"},
		}, DefaultGtsConfig())
		require.NoError(t, store.Register(adminInstance))

		assert.NoError(t, store.ValidateSchema("gts.test.pkg.ns.user.v1~"))
		assert.NoError(t, store.ValidateSchema("gts.test.pkg.ns.admin.v1~"))

		result := store.Query("gts.test.pkg.ns.*", 10)
		require.Empty(t, result.Error)
		assert.Equal(t, 4, result.Count)

		assert.Equal(t, 4, store.Count())
	})
}
