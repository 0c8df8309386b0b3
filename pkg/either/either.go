// Package either provides a typed Either sum type on top of package adt.
package either

import (
	"fmt"
	"reflect"

	"github.com/speakeasy-api/adt"
)

// Declaration is the generic Either declaration: {LEFT: L, RIGHT: R}.
var Declaration = adt.Declare("Either",
	adt.Case("LEFT", adt.Param("L")),
	adt.Case("RIGHT", adt.Param("R")),
).WithParams("L", "R")

var registry = adt.NewRegistry(adt.Options{ValidatePayloads: true})

// Schema returns the schema monomorphized for L and R. Every Either[L, R]
// shares it, so values of different instantiations are never equal.
func Schema[L, R any]() *adt.Schema {
	generic, err := registry.Extract(Declaration)
	if err != nil {
		panic(err)
	}
	s, err := registry.Bind(generic, map[string]reflect.Type{
		"L": reflect.TypeFor[L](),
		"R": reflect.TypeFor[R](),
	})
	if err != nil {
		panic(err)
	}
	return s
}

// Either holds either a left value of type L or a right value of type R.
// The zero Either holds neither and is only useful as a placeholder.
type Either[L, R any] struct {
	v adt.Value
}

// Left constructs a left Either.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{v: Schema[L, R]().MustNew("LEFT", l)}
}

// Right constructs a right Either.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{v: Schema[L, R]().MustNew("RIGHT", r)}
}

// FromValue converts a dynamic value of the matching schema.
func FromValue[L, R any](v adt.Value) (Either[L, R], error) {
	if v.Schema() != Schema[L, R]() {
		return Either[L, R]{}, fmt.Errorf("either: %v: %w", v, adt.ErrSchemaMismatch)
	}
	return Either[L, R]{v: v}, nil
}

// Left returns the left value and true if e is a left.
func (e Either[L, R]) Left() (L, bool) {
	p, ok := e.v.Get("left")
	if !ok {
		var zero L
		return zero, false
	}
	return payload[L](p), true
}

// Right returns the right value and true if e is a right.
func (e Either[L, R]) Right() (R, bool) {
	p, ok := e.v.Get("right")
	if !ok {
		var zero R
		return zero, false
	}
	return payload[R](p), true
}

// IsLeft reports whether e holds a left value.
func (e Either[L, R]) IsLeft() bool {
	_, ok := e.v.Get("left")
	return ok
}

// Value exposes the underlying dynamic value, for use with adt.Match.
func (e Either[L, R]) Value() adt.Value { return e.v }

func (e Either[L, R]) Equal(o Either[L, R]) bool { return e.v.Equal(o.v) }

func (e Either[L, R]) Hash() uint64 { return e.v.Hash() }

func (e Either[L, R]) String() string { return e.v.String() }

// Match calls onLeft or onRight with e's value. Both handlers are required
// by the signature, so exhaustiveness is checked at compile time.
func Match[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if l, ok := e.Left(); ok {
		return onLeft(l)
	}
	if r, ok := e.Right(); ok {
		return onRight(r)
	}
	panic(fmt.Sprintf("either: match on %v", e.v))
}

// payload asserts p to T, mapping a nil interface payload to T's zero value.
func payload[T any](p any) T {
	if p == nil {
		var zero T
		return zero
	}
	return p.(T)
}
