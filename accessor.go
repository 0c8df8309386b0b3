package adt

// Accessor projects a value onto one variant: it returns the payload and
// true when the value holds that variant, and nil and false otherwise.
type Accessor func(v Value) (any, bool)

// Accessor returns the projection for the named variant. The name may be
// the declared name or its normalized key.
func (s *Schema) Accessor(name string) (Accessor, error) {
	i, ok := s.lookup(name)
	if !ok {
		return nil, &SchemaError{Type: s.id, Variant: name, Err: ErrUnknownVariant}
	}
	return s.accessor(i), nil
}

// Accessors returns every projection keyed by normalized variant name.
func (s *Schema) Accessors() map[string]Accessor {
	out := make(map[string]Accessor, len(s.variants))
	for i, v := range s.variants {
		out[v.Key] = s.accessor(i)
	}
	return out
}

func (s *Schema) accessor(i int) Accessor {
	return func(v Value) (any, bool) {
		if v.schema != s || v.ordinal != i {
			return nil, false
		}
		return v.payload, true
	}
}

// Get projects v onto the named variant of its own schema. Unknown names and
// the zero Value yield false.
func (v Value) Get(name string) (any, bool) {
	if v.schema == nil {
		return nil, false
	}
	i, ok := v.schema.lookup(name)
	if !ok || i != v.ordinal {
		return nil, false
	}
	return v.payload, true
}
