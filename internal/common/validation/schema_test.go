package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-workers/internal/common/errors"
)

func searchSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query":    map[string]interface{}{"type": "string", "minLength": 1},
			"capacity": map[string]interface{}{"type": "integer", "minimum": 1},
			"requirements": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"responseFormat": map[string]interface{}{"type": "string", "enum": []interface{}{"json", "text"}},
		},
		"required": []interface{}{"query"},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name        string
		input       map[string]interface{}
		valid       bool
		errorFields []string
	}{
		{
			name:  "valid input",
			input: map[string]interface{}{"query": "room for 6", "capacity": 6, "responseFormat": "text"},
			valid: true,
		},
		{
			name:        "missing required query",
			input:       map[string]interface{}{"capacity": 4},
			errorFields: []string{"query"},
		},
		{
			name:        "capacity below minimum",
			input:       map[string]interface{}{"query": "desk", "capacity": 0},
			errorFields: []string{"capacity"},
		},
		{
			name:        "wrong response format",
			input:       map[string]interface{}{"query": "desk", "responseFormat": "xml"},
			errorFields: []string{"responseFormat"},
		},
		{
			name:        "requirement item not a string",
			input:       map[string]interface{}{"query": "desk", "requirements": []interface{}{"screen", 27}},
			errorFields: []string{"requirements.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput(tt.input, searchSchema())
			require.NoError(t, err)

			assert.Equal(t, tt.valid, result.Valid)
			for _, field := range tt.errorFields {
				assert.True(t, result.HasErrors(field), "expected error on %s, got %v", field, result.Errors)
			}
		})
	}
}

func TestValidateInput_EmptySchemaAcceptsAnything(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"anything": true}, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.NoError(t, result.Err())
}

func TestSchema_Validate(t *testing.T) {
	schema, err := Compile(searchSchema())
	require.NoError(t, err)

	result, err := schema.Validate([]byte(`{"query":"quiet room","capacity":"six"}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.GetErrorsForField("capacity"), 1)

	verr := result.Err()
	require.Error(t, verr)
	assert.True(t, errors.HasCode(verr, errors.ErrCodeInvalidInput))
	assert.Contains(t, verr.(*errors.StandardError).Details, "capacity")
}

func TestSchema_ValidateRejectsMalformedJSON(t *testing.T) {
	schema, err := Compile(searchSchema())
	require.NoError(t, err)

	_, err = schema.Validate([]byte(`{"query":`))
	assert.Error(t, err)
}

func TestValidateToolName(t *testing.T) {
	assert.NoError(t, ValidateToolName("search-locations"))
	assert.NoError(t, ValidateToolName("resolve-location"))
	assert.Error(t, ValidateToolName("Search_Locations"))
	assert.Error(t, ValidateToolName("search-"))
	assert.Error(t, ValidateToolName(""))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("dateFrom", "2026-03-02T09:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got.UTC())

	got, err = ParseDateTime("dateFrom", "  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDateTime("dateTo", "tomorrow")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	assert.Equal(t, "dateTo", err.(*errors.StandardError).Metadata["field"])
}
