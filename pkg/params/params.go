// Package params edits and checks command parameters against their command type schema.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dukex/planeditor/pkg/models"
	json "github.com/goccy/go-json"
	"github.com/mohae/deepcopy"
	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrNoSchema          = errors.New("command type has no parameter schema")
	ErrInvalidParameters = errors.New("invalid parameters")
)

// ValidationError lists every schema violation of a parameter set.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation errors: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// Defaults returns a parameter set holding a copy of every schema default.
func Defaults(schema map[string]*models.ParameterSchema) map[string]any {
	out := make(map[string]any, len(schema))

	for key, parameter := range schema {
		if parameter == nil || parameter.Default == nil {
			continue
		}

		out[key] = deepcopy.Copy(parameter.Default)
	}

	return out
}

// Value returns the current value of key, falling back to the schema default.
func Value(params map[string]any, parameter *models.ParameterSchema, key string) any {
	if value, ok := params[key]; ok && value != nil {
		return value
	}

	if parameter == nil {
		return nil
	}

	return parameter.Default
}

// ApplyRaw sets key to the JSON value in raw and returns the new parameter set. When raw is not
// valid JSON the input set is returned untouched and changed is false.
func ApplyRaw(params map[string]any, key, raw string) (map[string]any, bool) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return params, false
	}

	return with(params, key, value), true
}

// ApplyInput sets key from a form input, interpreting raw by the parameter type. Booleans and
// numbers that do not parse leave the set untouched; object and array inputs go through ApplyRaw.
func ApplyInput(params map[string]any, parameter *models.ParameterSchema, key, raw string) (map[string]any, bool) {
	kind := ""
	if parameter != nil {
		kind = parameter.Type
	}

	switch kind {
	case "boolean":
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return params, false
		}

		return with(params, key, value), true
	case "number":
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return params, false
		}

		return with(params, key, value), true
	case "string":
		return with(params, key, raw), true
	default:
		return ApplyRaw(params, key, raw)
	}
}

// Validate checks params against the parameter schema of commandType. Write paths never call
// it; invalid parameters are reported, not rejected.
func Validate(commandType *models.CommandType, params map[string]any) error {
	if commandType == nil || len(commandType.ParameterSchema) == 0 {
		return ErrNoSchema
	}

	if params == nil {
		params = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(JSONSchema(commandType.ParameterSchema))
	dataLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("failed to validate parameters of %s: %w", commandType.ID, err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	sort.Strings(violations)

	return &ValidationError{Errors: violations}
}

// JSONSchema renders a parameter schema map as a JSON Schema object document.
func JSONSchema(schema map[string]*models.ParameterSchema) map[string]any {
	properties := make(map[string]any, len(schema))
	required := make([]string, 0)

	for key, parameter := range schema {
		if parameter == nil {
			continue
		}

		properties[key] = property(parameter)

		if parameter.Required {
			required = append(required, key)
		}
	}

	sort.Strings(required)

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		out["required"] = required
	}

	return out
}

func property(parameter *models.ParameterSchema) map[string]any {
	out := map[string]any{}

	if parameter.Type != "" {
		out["type"] = parameter.Type
	}

	if parameter.Description != "" {
		out["description"] = parameter.Description
	}

	if len(parameter.Enum) > 0 {
		out["enum"] = parameter.Enum
	}

	if len(parameter.Properties) > 0 {
		nested := JSONSchema(parameter.Properties)
		out["properties"] = nested["properties"]

		if required, ok := nested["required"]; ok {
			out["required"] = required
		}
	}

	if parameter.Items != nil {
		out["items"] = property(parameter.Items)
	}

	return out
}

func with(params map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(params)+1)
	for k, v := range params {
		out[k] = v
	}

	out[key] = value

	return out
}
