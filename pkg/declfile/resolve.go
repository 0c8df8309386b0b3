package declfile

import (
	"reflect"
	"strings"

	"github.com/speakeasy-api/adt"
)

// Resolver maps type-expression strings to adt type expressions.
// Supported forms are builtin type names, registered names, declaration
// parameters, "[]T", "*T" and "map[K]V" over concrete types.
type Resolver struct {
	named map[string]reflect.Type
}

// NewResolver returns a resolver knowing the Go builtin types.
func NewResolver() *Resolver {
	return &Resolver{
		named: map[string]reflect.Type{
			"bool":       reflect.TypeFor[bool](),
			"string":     reflect.TypeFor[string](),
			"int":        reflect.TypeFor[int](),
			"int8":       reflect.TypeFor[int8](),
			"int16":      reflect.TypeFor[int16](),
			"int32":      reflect.TypeFor[int32](),
			"int64":      reflect.TypeFor[int64](),
			"uint":       reflect.TypeFor[uint](),
			"uint8":      reflect.TypeFor[uint8](),
			"uint16":     reflect.TypeFor[uint16](),
			"uint32":     reflect.TypeFor[uint32](),
			"uint64":     reflect.TypeFor[uint64](),
			"uintptr":    reflect.TypeFor[uintptr](),
			"float32":    reflect.TypeFor[float32](),
			"float64":    reflect.TypeFor[float64](),
			"complex64":  reflect.TypeFor[complex64](),
			"complex128": reflect.TypeFor[complex128](),
			"byte":       reflect.TypeFor[byte](),
			"rune":       reflect.TypeFor[rune](),
			"any":        reflect.TypeFor[any](),
			"error":      reflect.TypeFor[error](),
			"struct{}":   reflect.TypeFor[struct{}](),
		},
	}
}

// Register makes t resolvable under name.
func (r *Resolver) Register(name string, t reflect.Type) {
	r.named[name] = t
}

// Resolve maps expr to a type expression. Text it cannot resolve becomes an
// adt.Unresolved expression, which extraction reports as ErrUnresolvedType.
// Composite types over type parameters are not supported.
func (r *Resolver) Resolve(expr string, params []string) adt.TypeExpr {
	expr = strings.TrimSpace(expr)
	for _, p := range params {
		if expr == p {
			return adt.Param(p)
		}
	}
	if t, ok := r.concrete(expr); ok {
		return adt.Concrete(t)
	}
	return adt.Unresolved(expr)
}

func (r *Resolver) concrete(expr string) (reflect.Type, bool) {
	expr = strings.TrimSpace(expr)
	if t, ok := r.named[expr]; ok {
		return t, true
	}

	switch {
	case strings.HasPrefix(expr, "[]"):
		elem, ok := r.concrete(expr[2:])
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true

	case strings.HasPrefix(expr, "*"):
		elem, ok := r.concrete(expr[1:])
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(elem), true

	case strings.HasPrefix(expr, "map["):
		end := closingBracket(expr, len("map"))
		if end < 0 {
			return nil, false
		}
		key, ok := r.concrete(expr[len("map["):end])
		if !ok || !key.Comparable() {
			return nil, false
		}
		elem, ok := r.concrete(expr[end+1:])
		if !ok {
			return nil, false
		}
		return reflect.MapOf(key, elem), true
	}
	return nil, false
}

// closingBracket returns the index of the ']' matching the '[' at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
