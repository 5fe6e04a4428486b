package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const punishmentSchemaPath = "configs/schemas/" + SchemaPunishment

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"ordinal": {"type": "integer", "minimum": 0},
			"name": {"type": "string"}
		},
		"required": ["name"]
	}`)

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid", data: `{"name": "Chat Abuse", "ordinal": 6}`},
		{name: "optional field omitted", data: `{"name": "Chat Abuse"}`},
		{name: "missing required", data: `{"ordinal": 6}`, errorMsg: "required"},
		{name: "wrong type", data: `{"name": "x", "ordinal": "six"}`, errorMsg: "/ordinal"},
		{name: "constraint violation", data: `{"name": "x", "ordinal": -1}`, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"name": }`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := filepath.Join(t.TempDir(), "data.json")
			require.NoError(t, os.WriteFile(dataPath, []byte(tt.data), 0644))

			err := v.ValidateFile(dataPath, schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_SchemaErrorIssues(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, `{
		"type": "object",
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "integer"}
		}
	}`)

	err := v.ValidateBytes([]byte(`{"a": 1, "b": "x"}`), schemaPath)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Issues, 2)
}

func TestSchemaValidator_ValidateValue(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, `{"type": "object", "required": ["punishment_types"]}`)

	assert.NoError(t, v.ValidateValue(map[string]interface{}{"punishment_types": []interface{}{}}, schemaPath))
	assert.Error(t, v.ValidateValue(map[string]interface{}{}, schemaPath))
}

func TestSchemaValidator_MissingFiles(t *testing.T) {
	v := NewSchemaValidator()

	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{}`), 0644))

	err := v.ValidateFile(dataPath, "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")

	err = v.ValidateFile("nonexistent.json", writeSchema(t, `{"type": "object"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)
	schemaPath := writeSchema(t, `{"type": "object"}`)

	require.NoError(t, v.ValidateBytes([]byte(`{"x": 1}`), schemaPath))
	require.NoError(t, v.ValidateBytes([]byte(`{"y": 2}`), schemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestPunishmentSchema(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "current shape",
			data: `{"id": "p1", "typeOrdinal": 6, "issuedAt": "2024-05-01T10:00:00Z",
				"data": {"altBlocking": true},
				"modifications": [{"type": "PARDON", "issuedAt": "2024-05-02T10:00:00Z"}]}`,
		},
		{
			name: "legacy shape",
			data: `{"id": "p1", "type": 6, "issuedAt": 1714557600000, "startedAt": 1714557600000,
				"data": [["altBlocking", true], ["wiping", false]],
				"modifications": [{"type": "APPEAL_ACCEPT", "issuedAt": null}]}`,
		},
		{
			name: "garbage timestamp is still schema-valid",
			data: `{"id": "p1", "typeOrdinal": 6, "startedAt": "not a date"}`,
		},
		{name: "missing type", data: `{"id": "p1"}`, wantErr: true},
		{name: "missing id", data: `{"typeOrdinal": 6}`, wantErr: true},
		{name: "negative duration", data: `{"id": "p1", "typeOrdinal": 6, "originalDuration": -5}`, wantErr: true},
		{name: "modification without type", data: `{"id": "p1", "type": 6, "modifications": [{}]}`, wantErr: true},
		{name: "malformed data entries", data: `{"id": "p1", "type": 6, "data": [["altBlocking"]]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), punishmentSchemaPath)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
