package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInputSchema(t *testing.T) {
	valid := InputSchema{
		{Name: "topic", Type: FieldTypeText, Label: "Topic"},
		{Name: "body", Type: FieldTypeTextarea, Label: "Body"},
		{Name: "count", Type: FieldTypeNumber, Label: "Count"},
		{Name: "tone", Type: FieldTypeSelect, Label: "Tone", Options: []string{"formal", "casual"}},
	}
	assert.NoError(t, ValidateInputSchema(valid))
	assert.NoError(t, ValidateInputSchema(InputSchema{}))

	tests := []struct {
		name   string
		schema InputSchema
	}{
		{"missing name", InputSchema{{Type: FieldTypeText, Label: "X"}}},
		{"missing label", InputSchema{{Name: "x", Type: FieldTypeText}}},
		{"duplicate name", InputSchema{
			{Name: "x", Type: FieldTypeText, Label: "X"},
			{Name: "x", Type: FieldTypeNumber, Label: "X2"},
		}},
		{"unknown type", InputSchema{{Name: "x", Type: "checkbox", Label: "X"}}},
		{"select without options", InputSchema{{Name: "x", Type: FieldTypeSelect, Label: "X"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateInputSchema(tt.schema))
		})
	}
}

func TestMissingRequiredInputs(t *testing.T) {
	schema := InputSchema{
		{Name: "topic", Type: FieldTypeText, Label: "Topic", Required: true},
		{Name: "tone", Type: FieldTypeText, Label: "Tone"},
		{Name: "count", Type: FieldTypeNumber, Label: "Count", Required: true},
	}

	assert.Empty(t, MissingRequiredInputs(schema, map[string]interface{}{
		"topic": "cats",
		"count": 3,
	}))

	missing := MissingRequiredInputs(schema, map[string]interface{}{
		"topic": "",
		"tone":  "calm",
	})
	assert.Equal(t, []string{"topic", "count"}, missing)

	// Optional fields never count as missing.
	assert.Equal(t, []string{"topic", "count"}, MissingRequiredInputs(schema, nil))
}
