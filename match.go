package adt

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// Handler handles the payload of one variant.
type Handler[R any] func(payload any) (R, error)

// Handlers maps normalized variant keys to handlers. There is no wildcard:
// a handler set must name every variant of the schema and nothing else. A
// nil handler for a declared key counts as missing.
type Handlers[R any] map[string]Handler[R]

// Match dispatches v to the handler for its active variant and returns the
// handler's result unchanged. If the handler keys differ from the schema's
// variant keys, Match fails with a *MatchError listing every missing and
// every unexpected key, whichever variant v holds. Errors and panics raised
// by the handler reach the caller untouched.
func Match[R any](v Value, handlers Handlers[R]) (R, error) {
	var zero R
	if v.schema == nil {
		return zero, fmt.Errorf("adt: match: %w", ErrInvalidValue)
	}
	if err := v.schema.CheckHandlers(handlerKeys(v.schema, handlers)); err != nil {
		return zero, err
	}
	return handlers[v.schema.variants[v.ordinal].Key](v.payload)
}

// CheckHandlers verifies that keys name exactly the schema's variant keys.
func (s *Schema) CheckHandlers(keys []string) error {
	declared := set.From(s.Keys())
	supplied := set.From(keys)

	missing := declared.Difference(supplied)
	unexpected := supplied.Difference(declared)
	if missing.Size() == 0 && unexpected.Size() == 0 {
		return nil
	}

	merr := &MatchError{
		Type:       s.id,
		Missing:    make([]string, 0, missing.Size()),
		Unexpected: make([]string, 0, unexpected.Size()),
	}
	for _, v := range s.variants {
		if missing.Contains(v.Key) {
			merr.Missing = append(merr.Missing, v.Key)
		}
	}
	merr.Unexpected = append(merr.Unexpected, unexpected.Slice()...)
	sort.Strings(merr.Unexpected)
	return merr
}

// handlerKeys returns the supplied keys, leaving out declared keys bound to
// a nil handler so that CheckHandlers reports them missing.
func handlerKeys[R any](s *Schema, handlers Handlers[R]) []string {
	keys := make([]string, 0, len(handlers))
	for k, h := range handlers {
		if _, declared := s.byKey[k]; declared && h == nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// Matcher is a dispatch table validated once against a schema, for call
// sites that assemble their handlers at runtime and dispatch many values.
type Matcher[R any] struct {
	schema   *Schema
	handlers []Handler[R] // indexed by ordinal
}

// NewMatcher validates handlers against s.
func NewMatcher[R any](s *Schema, handlers Handlers[R]) (*Matcher[R], error) {
	if err := s.CheckHandlers(handlerKeys(s, handlers)); err != nil {
		return nil, err
	}
	m := &Matcher[R]{
		schema:   s,
		handlers: make([]Handler[R], len(s.variants)),
	}
	for i, v := range s.variants {
		m.handlers[i] = handlers[v.Key]
	}
	return m, nil
}

// Match dispatches v, which must belong to the matcher's schema.
func (m *Matcher[R]) Match(v Value) (R, error) {
	var zero R
	if v.schema == nil {
		return zero, fmt.Errorf("adt: match: %w", ErrInvalidValue)
	}
	if v.schema != m.schema {
		return zero, fmt.Errorf("adt: match %s against %s: %w", v.schema.id, m.schema.id, ErrSchemaMismatch)
	}
	return m.handlers[v.ordinal](v.payload)
}
