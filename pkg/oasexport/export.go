// Package oasexport describes sum-type schemas as OpenAPI 3.1 JSON Schemas.
//
// A schema becomes a oneOf with one branch per variant, in declaration order.
// Each branch is an object with a single required property named by the
// variant key and holding the payload's schema.
package oasexport

import (
	"github.com/speakeasy-api/adt"
	"github.com/speakeasy-api/openapi/jsonschema/oas3"
)

// Export describes s. Erased payload types describe as Top.
func Export(s *adt.Schema) *oas3.Schema {
	variants := s.Variants()
	out := &oas3.Schema{
		OneOf: make([]*oas3.JSONSchema[oas3.Referenceable], 0, len(variants)),
	}
	for _, v := range variants {
		out.OneOf = append(out.OneOf, oas3.NewJSONSchemaFromSchema[oas3.Referenceable](VariantSchema(v)))
	}
	return out
}

// VariantSchema describes one variant branch.
func VariantSchema(v adt.Variant) *oas3.Schema {
	payload := Top()
	if !v.Erased() {
		payload = TypeSchema(v.Payload.Type)
	}
	return BuildObject(map[string]*oas3.Schema{v.Key: payload}, []string{v.Key})
}
