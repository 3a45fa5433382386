// Package schema constrains the loosely-typed rows a backend response
// carries to the column set its header list declares.
package schema

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// scalarSchema admits the scalar JSON types an inventory cell may hold.
var scalarSchema = &invopop.Schema{
	OneOf: []*invopop.Schema{
		{Type: "string"},
		{Type: "number"},
		{Type: "integer"},
		{Type: "boolean"},
		{Type: "null"},
	},
}

// RowValidator validates result rows against the schema implied by a
// response's header list: an object whose properties are exactly the headers,
// each holding a scalar, with no additional keys.
type RowValidator struct {
	headers  map[string]struct{}
	compiled *jsonschema.Schema
}

// NewRowValidator builds and compiles the row schema for the given headers.
func NewRowValidator(headers []string) (*RowValidator, error) {
	props := invopop.NewProperties()
	for _, h := range headers {
		props.Set(h, scalarSchema)
	}
	rowSchema := &invopop.Schema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: invopop.FalseSchema,
	}

	raw, err := json.Marshal(rowSchema)
	if err != nil {
		return nil, fmt.Errorf("marshaling row schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling row schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("row.json", doc); err != nil {
		return nil, fmt.Errorf("adding row schema resource: %w", err)
	}
	compiled, err := compiler.Compile("row.json")
	if err != nil {
		return nil, fmt.Errorf("compiling row schema: %w", err)
	}

	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[h] = struct{}{}
	}

	return &RowValidator{headers: set, compiled: compiled}, nil
}

// Validate checks a single row against the compiled schema and returns
// human-readable messages for any violations.
func (v *RowValidator) Validate(row types.Row) []string {
	value := make(map[string]any, len(row))
	for k, val := range row {
		value[k] = val
	}
	err := v.compiled.Validate(value)
	if err == nil {
		return nil
	}
	return extractValidationErrors(err)
}
