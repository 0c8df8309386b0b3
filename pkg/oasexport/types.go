package oasexport

import (
	"reflect"
	"sort"
	"strings"

	"github.com/speakeasy-api/openapi/jsonschema/oas3"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Top returns the unconstrained schema, used for erased payload types.
func Top() *oas3.Schema {
	return &oas3.Schema{}
}

func typed(t oas3.SchemaType) *oas3.Schema {
	return &oas3.Schema{Type: oas3.NewTypeFromString(t)}
}

// ArrayType creates an array schema with the given items.
func ArrayType(items *oas3.Schema) *oas3.Schema {
	s := typed(oas3.SchemaTypeArray)
	s.Items = oas3.NewJSONSchemaFromSchema[oas3.Referenceable](items)
	return s
}

// BuildObject creates an object schema with properties in sorted key order.
func BuildObject(props map[string]*oas3.Schema, required []string) *oas3.Schema {
	propMap := sequencedmap.New[string, *oas3.JSONSchema[oas3.Referenceable]]()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		propMap.Set(k, oas3.NewJSONSchemaFromSchema[oas3.Referenceable](props[k]))
	}
	sort.Strings(required)

	return &oas3.Schema{
		Type:       oas3.NewTypeFromString(oas3.SchemaTypeObject),
		Properties: propMap,
		Required:   required,
	}
}

// TypeSchema describes a Go type as JSON Schema. Types with no JSON shape
// (functions, channels) and recursive references describe as Top.
func TypeSchema(t reflect.Type) *oas3.Schema {
	return typeSchema(t, map[reflect.Type]bool{})
}

func typeSchema(t reflect.Type, visiting map[reflect.Type]bool) *oas3.Schema {
	if t == nil || visiting[t] {
		return Top()
	}

	switch t.Kind() {
	case reflect.Bool:
		return typed(oas3.SchemaTypeBoolean)
	case reflect.String:
		return typed(oas3.SchemaTypeString)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return typed(oas3.SchemaTypeInteger)
	case reflect.Float32, reflect.Float64:
		return typed(oas3.SchemaTypeNumber)
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			s := typed(oas3.SchemaTypeString)
			format := "byte"
			s.Format = &format
			return s
		}
		visiting[t] = true
		defer delete(visiting, t)
		return ArrayType(typeSchema(t.Elem(), visiting))
	case reflect.Map:
		visiting[t] = true
		defer delete(visiting, t)
		s := typed(oas3.SchemaTypeObject)
		s.AdditionalProperties = oas3.NewJSONSchemaFromSchema[oas3.Referenceable](typeSchema(t.Elem(), visiting))
		return s
	case reflect.Pointer:
		visiting[t] = true
		defer delete(visiting, t)
		s := typeSchema(t.Elem(), visiting)
		nullable := true
		s.Nullable = &nullable
		return s
	case reflect.Struct:
		visiting[t] = true
		defer delete(visiting, t)
		props := make(map[string]*oas3.Schema)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			props[name] = typeSchema(f.Type, visiting)
		}
		return BuildObject(props, nil)
	default:
		return Top()
	}
}

func getType(s *oas3.Schema) string {
	if s == nil {
		return ""
	}
	types := s.GetType()
	if len(types) != 1 {
		return ""
	}
	return string(types[0])
}
