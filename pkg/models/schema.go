package models

import "github.com/mohae/deepcopy"

// CommandTypeStatus is the catalog lifecycle of a command type.
type CommandTypeStatus string

const (
	CommandTypeStatusActive     CommandTypeStatus = "active"
	CommandTypeStatusDeprecated CommandTypeStatus = "deprecated"
	CommandTypeStatusDraft      CommandTypeStatus = "draft"
)

// ParameterSchema describes one command parameter for form generation and validation.
type ParameterSchema struct {
	Type        string                      `json:"type"` // string, number, boolean, object or array
	Description string                      `json:"description,omitempty"`
	Default     any                         `json:"default,omitempty"`
	Required    bool                        `json:"required,omitempty"`
	Enum        []string                    `json:"enum,omitempty"`
	Properties  map[string]*ParameterSchema `json:"properties,omitempty"`
	Items       *ParameterSchema            `json:"items,omitempty"`
}

// CommandTypeUIMetadata controls how a command type shows up in the palette.
type CommandTypeUIMetadata struct {
	Icon           string `json:"icon,omitempty"`
	Category       string `json:"category"`
	PaletteVisible bool   `json:"palette_visible"`
	Color          string `json:"color,omitempty"`
}

// CommandType is a read-only catalog entry loaded independently from plans.
type CommandType struct {
	ID              string                      `json:"id"                      validate:"required"`
	Name            string                      `json:"name"                    validate:"required"`
	Description     string                      `json:"description"`
	ParameterSchema map[string]*ParameterSchema `json:"parameter_schema"`
	ResultSchema    map[string]*ParameterSchema `json:"result_schema,omitempty"`
	UIMetadata      CommandTypeUIMetadata       `json:"ui_metadata"`
	Status          CommandTypeStatus           `json:"status"`
}

// Clone returns a deep copy of the command type.
func (c *CommandType) Clone() *CommandType {
	if c == nil {
		return nil
	}

	clone := *c
	clone.ParameterSchema = cloneSchemaMap(c.ParameterSchema)
	clone.ResultSchema = cloneSchemaMap(c.ResultSchema)

	return &clone
}

// Clone returns a deep copy of the parameter schema.
func (p *ParameterSchema) Clone() *ParameterSchema {
	if p == nil {
		return nil
	}

	clone := *p
	clone.Default = deepcopy.Copy(p.Default)

	if p.Enum != nil {
		clone.Enum = append([]string(nil), p.Enum...)
	}

	clone.Properties = cloneSchemaMap(p.Properties)
	clone.Items = p.Items.Clone()

	return &clone
}

func cloneSchemaMap(in map[string]*ParameterSchema) map[string]*ParameterSchema {
	if in == nil {
		return nil
	}

	out := make(map[string]*ParameterSchema, len(in))
	for key, schema := range in {
		out[key] = schema.Clone()
	}

	return out
}
