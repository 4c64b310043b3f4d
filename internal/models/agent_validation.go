package models

import (
	"fmt"
)

// ValidateInputSchema checks an agent's declared input schema:
// field names must be unique (they key the submitted form state), field
// types must come from the closed set, and select fields must carry options.
func ValidateInputSchema(schema InputSchema) error {
	seen := make(map[string]bool, len(schema))

	for i, field := range schema {
		if field.Name == "" {
			return fmt.Errorf("input field %d: name is required", i)
		}
		if field.Label == "" {
			return fmt.Errorf("input field %q: label is required", field.Name)
		}
		if seen[field.Name] {
			return fmt.Errorf("input field %q: duplicate name", field.Name)
		}
		seen[field.Name] = true

		switch field.Type {
		case FieldTypeText, FieldTypeTextarea, FieldTypeNumber:
			// no extra constraints
		case FieldTypeSelect:
			if len(field.Options) == 0 {
				return fmt.Errorf("input field %q: select requires options", field.Name)
			}
		default:
			return fmt.Errorf("input field %q: unknown type %q", field.Name, field.Type)
		}
	}

	return nil
}

// MissingRequiredInputs reports the names of required fields whose submitted
// value is absent or empty.
func MissingRequiredInputs(schema InputSchema, inputs map[string]interface{}) []string {
	var missing []string
	for _, field := range schema {
		if !field.Required {
			continue
		}
		value, ok := inputs[field.Name]
		if !ok || fmt.Sprintf("%v", value) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
