package adt

import "fmt"

// Value is an instance of a sum type: a schema, the active variant and its
// payload. Values are immutable; the zero Value belongs to no schema and is
// rejected by Match.
type Value struct {
	schema  *Schema
	ordinal int
	payload any
}

// Constructor builds values of a single variant.
type Constructor func(payload any) (Value, error)

// Constructor returns the constructor for the named variant. The name may be
// the declared name or its normalized key.
func (s *Schema) Constructor(name string) (Constructor, error) {
	i, ok := s.lookup(name)
	if !ok {
		return nil, &ConstructionError{Type: s.id, Variant: name, Err: ErrUnknownVariant}
	}
	return s.constructor(i), nil
}

// Constructors returns one constructor per variant, in declaration order.
func (s *Schema) Constructors() []Constructor {
	out := make([]Constructor, len(s.variants))
	for i := range s.variants {
		out[i] = s.constructor(i)
	}
	return out
}

// New constructs a value of the named variant.
func (s *Schema) New(name string, payload any) (Value, error) {
	c, err := s.Constructor(name)
	if err != nil {
		return Value{}, err
	}
	return c(payload)
}

// MustNew is New that panics on error.
func (s *Schema) MustNew(name string, payload any) Value {
	v, err := s.New(name, payload)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Schema) constructor(i int) Constructor {
	variant := s.variants[i]
	return func(payload any) (Value, error) {
		if s.validate && !variant.Payload.accepts(payload) {
			return Value{}, &ConstructionError{
				Type:    s.id,
				Variant: variant.Name,
				Err:     fmt.Errorf("%w: got %T, want %s", ErrPayloadType, payload, variant.Payload),
			}
		}
		return Value{schema: s, ordinal: i, payload: payload}, nil
	}
}

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool { return v.schema != nil }

// Schema returns the owning schema, or nil for the zero Value.
func (v Value) Schema() *Schema { return v.schema }

// Ordinal returns the active variant's position, or -1 for the zero Value.
func (v Value) Ordinal() int {
	if v.schema == nil {
		return -1
	}
	return v.ordinal
}

// Tag returns the active variant's declared name.
func (v Value) Tag() string {
	if v.schema == nil {
		return ""
	}
	return v.schema.variants[v.ordinal].Name
}

// Variant returns the active variant descriptor.
func (v Value) Variant() (Variant, bool) {
	if v.schema == nil {
		return Variant{}, false
	}
	return v.schema.variants[v.ordinal], true
}

// Payload returns the payload as stored; no copy is made.
func (v Value) Payload() any { return v.payload }

func (v Value) String() string {
	if v.schema == nil {
		return "<invalid>"
	}
	return fmt.Sprintf("%s.%s(%v)", v.schema.name, v.Tag(), v.payload)
}
