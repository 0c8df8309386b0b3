// Package adt implements closed sum types: values that are exactly one of a
// fixed, named set of variants, with exhaustive dispatch over them.
package adt

import (
	"go/token"
	"hash/fnv"
	"reflect"
	"strings"
)

// Binding pairs a variant name with its payload type expression.
type Binding struct {
	Name string
	Type TypeExpr
}

// Case is shorthand for Binding{name, t}.
func Case(name string, t TypeExpr) Binding {
	return Binding{Name: name, Type: t}
}

// Declaration is the input of schema extraction: an ordered set of variant
// bindings, optionally parametrized over named type parameters.
type Declaration struct {
	Name     string
	Params   []string
	Variants []Binding
}

// Declare builds a declaration without type parameters.
func Declare(name string, variants ...Binding) Declaration {
	return Declaration{Name: name, Variants: variants}
}

// WithParams returns a copy of d declaring the given type parameters.
func (d Declaration) WithParams(params ...string) Declaration {
	d.Params = append([]string(nil), params...)
	return d
}

func (d Declaration) sameShape(o Declaration) bool {
	if d.Name != o.Name || len(d.Params) != len(o.Params) || len(d.Variants) != len(o.Variants) {
		return false
	}
	for i := range d.Params {
		if d.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range d.Variants {
		if d.Variants[i] != o.Variants[i] {
			return false
		}
	}
	return true
}

// Variant describes one alternative of a schema.
type Variant struct {
	Name    string   // declared name, e.g. "LEFT"
	Key     string   // normalized name used by accessors and match handlers, e.g. "left"
	Ordinal int      // position in declaration order
	Payload TypeExpr // concrete type, or a free type parameter
}

// Erased reports whether the payload type is a free type parameter, in which
// case constructors cannot validate payloads.
func (v Variant) Erased() bool {
	return v.Payload.IsParam()
}

// normalizeKey maps a variant name to its accessor and handler key.
func normalizeKey(name string) string {
	return strings.ToLower(name)
}

// Schema is the immutable description of a sum type's variant set. Schemas
// are only built by a Registry; two values can only be equal when they share
// the same *Schema.
type Schema struct {
	name     string
	id       string // registry identity: name, plus bindings when monomorphized
	params   []string
	bindings map[string]reflect.Type
	generic  *Schema
	variants []Variant
	byName   map[string]int
	byKey    map[string]int
	hash     uint64
	validate bool
}

func newSchema(d Declaration, validate bool) (*Schema, error) {
	if d.Name == "" {
		return nil, &SchemaError{Type: "<anonymous>", Err: ErrInvalidName}
	}
	if len(d.Variants) == 0 {
		return nil, &SchemaError{Type: d.Name, Err: ErrNoVariants}
	}

	params := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if !token.IsIdentifier(p) || params[p] {
			return nil, &SchemaError{Type: d.Name, Err: ErrInvalidName}
		}
		params[p] = true
	}

	s := &Schema{
		name:     d.Name,
		id:       d.Name,
		params:   append([]string(nil), d.Params...),
		variants: make([]Variant, 0, len(d.Variants)),
		byName:   make(map[string]int, len(d.Variants)),
		byKey:    make(map[string]int, len(d.Variants)),
		validate: validate,
	}
	for i, b := range d.Variants {
		if !token.IsIdentifier(b.Name) {
			return nil, &SchemaError{Type: d.Name, Variant: b.Name, Err: ErrInvalidName}
		}
		key := normalizeKey(b.Name)
		if _, dup := s.byKey[key]; dup {
			return nil, &SchemaError{Type: d.Name, Variant: b.Name, Err: ErrDuplicateVariant}
		}
		if !b.Type.resolved() {
			return nil, &SchemaError{Type: d.Name, Variant: b.Name, Err: ErrUnresolvedType}
		}
		if b.Type.IsParam() && !params[b.Type.Param] {
			return nil, &SchemaError{Type: d.Name, Variant: b.Name, Err: ErrUnknownParam}
		}
		s.variants = append(s.variants, Variant{Name: b.Name, Key: key, Ordinal: i, Payload: b.Type})
		s.byName[b.Name] = i
		s.byKey[key] = i
	}
	s.generic = s
	s.hash = identityHash(s.id)
	return s, nil
}

func identityHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// Name returns the declared type name.
func (s *Schema) Name() string { return s.name }

// String returns the schema identity, including type arguments for
// monomorphized schemas, e.g. "Either[L=int,R=string]".
func (s *Schema) String() string { return s.id }

// Params returns the declared type parameters.
func (s *Schema) Params() []string {
	return append([]string(nil), s.params...)
}

// Bindings returns the type arguments bound by Registry.Bind.
func (s *Schema) Bindings() map[string]reflect.Type {
	out := make(map[string]reflect.Type, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Generic returns the unbound schema s was monomorphized from, or s itself.
func (s *Schema) Generic() *Schema { return s.generic }

// Len returns the number of variants.
func (s *Schema) Len() int { return len(s.variants) }

// Variants returns the variants in declaration order.
func (s *Schema) Variants() []Variant {
	return append([]Variant(nil), s.variants...)
}

// Keys returns the normalized variant keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.variants))
	for i, v := range s.variants {
		keys[i] = v.Key
	}
	return keys
}

// Variant looks a variant up by declared name or normalized key.
func (s *Schema) Variant(name string) (Variant, bool) {
	i, ok := s.lookup(name)
	if !ok {
		return Variant{}, false
	}
	return s.variants[i], true
}

func (s *Schema) lookup(name string) (int, bool) {
	if i, ok := s.byName[name]; ok {
		return i, true
	}
	i, ok := s.byKey[name]
	return i, ok
}

// Validates reports whether constructors check payload types.
func (s *Schema) Validates() bool { return s.validate }
