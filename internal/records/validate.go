// internal/records/validate.go
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidPayload is returned when a create or update body fails validation.
var ErrInvalidPayload = errors.New("invalid model payload")

// payloadSchema describes the JSON accepted by DecodePayload.
var payloadSchema = map[string]any{
	"type":     "object",
	"required": []any{"modelVersion", "language"},
	"properties": map[string]any{
		"modelVersion": map[string]any{
			"type": "string",
			"enum": []any{string(V1), string(V2)},
		},
		"language": map[string]any{
			"type":      "string",
			"minLength": 1,
			"pattern":   `\S`,
		},
		"bleuScore": map[string]any{"type": "number"},
		"captions": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"remarks":       map[string]any{"type": "string"},
		"trainingImage": map[string]any{"type": "string"},
		"customFields": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
	"additionalProperties": false,
}

// ValidatePayload checks raw JSON against the payload schema.
func ValidatePayload(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(payloadSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(details, "; "))
}

// DecodePayload validates raw JSON and decodes it into a Payload.
func DecodePayload(raw []byte) (Payload, error) {
	if err := ValidatePayload(raw); err != nil {
		return Payload{}, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return p, nil
}

// Check validates a payload built in code rather than decoded from JSON.
func (p Payload) Check() error {
	if !p.ModelVersion.Valid() {
		return fmt.Errorf("%w: modelVersion %q", ErrInvalidPayload, p.ModelVersion)
	}
	if strings.TrimSpace(p.Language) == "" {
		return fmt.Errorf("%w: language is required", ErrInvalidPayload)
	}
	if math.IsNaN(p.BleuScore) || math.IsInf(p.BleuScore, 0) {
		return fmt.Errorf("%w: bleuScore must be finite", ErrInvalidPayload)
	}
	return nil
}

// CheckCustomFields rejects custom field keys that have no definition.
func CheckCustomFields(fields map[string]string, defs []CustomFieldDefinition) error {
	if len(fields) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		known[d.Name] = struct{}{}
	}
	var unknown []string
	for key := range fields {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: undefined custom fields: %s", ErrInvalidPayload, strings.Join(unknown, ", "))
}

// CustomFieldRow is one definition paired with a record's value for it.
type CustomFieldRow struct {
	Name        string
	Placeholder string
	Value       string
}

// CustomFieldRows lists every defined field, in definition order, with the record's value.
func CustomFieldRows(r ModelRecord, defs []CustomFieldDefinition) []CustomFieldRow {
	rows := make([]CustomFieldRow, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, CustomFieldRow{
			Name:        d.Name,
			Placeholder: d.Placeholder,
			Value:       r.CustomFields[d.Name],
		})
	}
	return rows
}
