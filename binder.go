package adt

import (
	"reflect"
	"strings"
)

// Bind monomorphizes s by substituting the given type arguments for its type
// parameters. The result is cached, so binding the same arguments twice
// returns the identical *Schema. Parameters left unbound stay erased and
// their variants are not validated. Binding an undeclared parameter fails
// with ErrUnknownParam; rebinding an already bound parameter to a different
// type fails with ErrConflictingDeclaration.
func (r *Registry) Bind(s *Schema, args map[string]reflect.Type) (*Schema, error) {
	merged := make(map[string]reflect.Type, len(s.bindings)+len(args))
	for k, v := range s.bindings {
		merged[k] = v
	}
	declared := make(map[string]bool, len(s.params))
	for _, p := range s.params {
		declared[p] = true
	}
	for p, t := range args {
		if !declared[p] {
			return nil, &SchemaError{Type: s.name, Variant: p, Err: ErrUnknownParam}
		}
		if t == nil {
			continue
		}
		if prev, ok := merged[p]; ok && prev != t {
			return nil, &SchemaError{Type: s.id, Variant: p, Err: ErrConflictingDeclaration}
		}
		merged[p] = t
	}

	generic := s.generic
	if len(merged) == 0 {
		return generic, nil
	}

	r.mu.RLock()
	cached := r.instance(generic, merged)
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	id := bindingID(generic, merged)
	bound := &Schema{
		name:     generic.name,
		id:       id,
		params:   generic.params,
		bindings: merged,
		generic:  generic,
		variants: make([]Variant, len(generic.variants)),
		byName:   generic.byName,
		byKey:    generic.byKey,
		hash:     identityHash(id),
		validate: generic.validate,
	}
	for i, v := range generic.variants {
		if v.Payload.IsParam() {
			if t, ok := merged[v.Payload.Param]; ok {
				v.Payload = Concrete(t)
			}
		}
		bound.variants[i] = v
	}

	r.mu.Lock()
	if cached := r.instance(generic, merged); cached != nil {
		r.mu.Unlock()
		return cached, nil
	}
	r.bound[generic] = append(r.bound[generic], bound)
	r.publish(bound)
	r.mu.Unlock()

	r.logger.With(schemaFields(bound)).Debugf("bound type parameters")
	return bound, nil
}

// instance finds the cached instantiation of generic for bindings. Types
// are compared as reflect.Type values, never by their rendered names.
// Callers hold r.mu.
func (r *Registry) instance(generic *Schema, bindings map[string]reflect.Type) *Schema {
	for _, s := range r.bound[generic] {
		if sameBindings(s.bindings, bindings) {
			return s
		}
	}
	return nil
}

func sameBindings(a, b map[string]reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for p, t := range a {
		if b[p] != t {
			return false
		}
	}
	return true
}

// bindingID renders "Name[P1=t1,P2]" with parameters in declaration order.
// It is for display and Lookup only.
func bindingID(generic *Schema, bindings map[string]reflect.Type) string {
	var b strings.Builder
	b.WriteString(generic.name)
	b.WriteByte('[')
	for i, p := range generic.params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p)
		if t, ok := bindings[p]; ok {
			b.WriteByte('=')
			b.WriteString(typeID(t))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func typeID(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
