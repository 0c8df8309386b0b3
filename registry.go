package adt

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry extracts schemas and caches them for its lifetime. Entries are
// only ever added; a published *Schema is never mutated, so schemas may be
// shared freely across goroutines.
type Registry struct {
	opts   Options
	logger Logger

	mu     sync.RWMutex
	all    []*Schema
	byID   map[string]*Schema // first schema published under each id
	decls  map[string]Declaration
	named  map[string]*Schema // schemas of decls
	byType map[reflect.Type]*Schema
	bound  map[*Schema][]*Schema // instantiations per generic schema
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:   opts,
		logger: opts.logger(),
		byID:   make(map[string]*Schema),
		decls:  make(map[string]Declaration),
		named:  make(map[string]*Schema),
		byType: make(map[reflect.Type]*Schema),
		bound:  make(map[*Schema][]*Schema),
	}
}

// publish records s. Callers hold r.mu. Distinct types can render the same
// id (function-local types sharing a name), so ids never decide identity.
func (r *Registry) publish(s *Schema) {
	r.all = append(r.all, s)
	if _, taken := r.byID[s.id]; !taken {
		r.byID[s.id] = s
	}
}

// Extract returns the schema for d, building it on first use. Extracting
// the same declaration again returns the identical *Schema; extracting a
// different declaration under an already registered name fails with
// ErrConflictingDeclaration.
func (r *Registry) Extract(d Declaration) (*Schema, error) {
	r.mu.RLock()
	prev, ok := r.decls[d.Name]
	s := r.named[d.Name]
	r.mu.RUnlock()
	if ok {
		return r.reuse(s, prev, d)
	}

	built, err := newSchema(d, r.opts.ValidatePayloads)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if prev, ok := r.decls[d.Name]; ok {
		s := r.named[d.Name]
		r.mu.Unlock()
		return r.reuse(s, prev, d)
	}
	r.decls[d.Name] = d
	r.named[d.Name] = built
	r.publish(built)
	r.mu.Unlock()

	r.logger.With(schemaFields(built)).Debugf("extracted schema")
	return built, nil
}

func (r *Registry) reuse(s *Schema, prev, d Declaration) (*Schema, error) {
	if prev.sameShape(d) {
		return s, nil
	}
	r.logger.With(map[string]any{"schema": d.Name}).Warnf("rejected redeclaration with a different shape")
	return nil, &SchemaError{Type: d.Name, Err: ErrConflictingDeclaration}
}

// Lookup returns a previously extracted or bound schema by its rendered id.
// When distinct types render the same id, the first one registered wins.
func (r *Registry) Lookup(id string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// Schemas returns every registered schema, sorted by id.
func (r *Registry) Schemas() []*Schema {
	r.mu.RLock()
	out := append([]*Schema(nil), r.all...)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// ExtractStruct reads a declaration from a struct type whose exported fields
// are the variants. A field's `adt:"NAME"` tag overrides the variant name and
// `adt:"-"` skips the field. Instantiations of generic struct types are
// distinct declaring types, so their variants are always concrete. Struct
// schemas are keyed by type alone and never collide with declarations or
// with other types of the same name.
func (r *Registry) ExtractStruct(t reflect.Type) (*Schema, error) {
	r.mu.RLock()
	s, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	d, err := declarationOf(t)
	if err != nil {
		return nil, err
	}
	built, err := newSchema(d, r.opts.ValidatePayloads)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if s, ok := r.byType[t]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.byType[t] = built
	r.publish(built)
	r.mu.Unlock()

	r.logger.With(schemaFields(built)).Debugf("extracted struct schema")
	return built, nil
}

// SchemaFor is ExtractStruct for the struct type T.
func SchemaFor[T any](r *Registry) (*Schema, error) {
	return r.ExtractStruct(reflect.TypeFor[T]())
}

func declarationOf(t reflect.Type) (Declaration, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return Declaration{}, fmt.Errorf("adt: %v is not a struct type", t)
	}
	d := Declaration{Name: typeID(t)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		variant := f.Name
		if tag, ok := f.Tag.Lookup("adt"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				variant = tag
			}
		}
		d.Variants = append(d.Variants, Case(variant, Concrete(f.Type)))
	}
	return d, nil
}
