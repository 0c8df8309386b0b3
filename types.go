package adt

import "reflect"

// TypeExpr is a payload type expression. Exactly one of Type, Param or
// Source describes it: a concrete Go type, a reference to a type parameter
// of the declaration, or text a front end could not resolve.
type TypeExpr struct {
	Type   reflect.Type
	Param  string
	Source string
}

// TypeOf returns the expression for the concrete type T.
func TypeOf[T any]() TypeExpr {
	return TypeExpr{Type: reflect.TypeFor[T]()}
}

// Concrete wraps a reflect.Type.
func Concrete(t reflect.Type) TypeExpr {
	return TypeExpr{Type: t}
}

// Param references a type parameter of the enclosing declaration.
func Param(name string) TypeExpr {
	return TypeExpr{Param: name}
}

// Unresolved records a type expression a front end could not map to a type.
// Extracting a declaration that contains one fails with ErrUnresolvedType.
func Unresolved(src string) TypeExpr {
	return TypeExpr{Source: src}
}

// IsParam reports whether the expression is a free type parameter.
func (t TypeExpr) IsParam() bool {
	return t.Type == nil && t.Param != ""
}

func (t TypeExpr) resolved() bool {
	return t.Type != nil || t.Param != ""
}

func (t TypeExpr) String() string {
	switch {
	case t.Type != nil:
		return t.Type.String()
	case t.Param != "":
		return t.Param
	case t.Source != "":
		return "?" + t.Source
	default:
		return "?"
	}
}

// accepts reports whether payload satisfies a concrete type.
func (t TypeExpr) accepts(payload any) bool {
	if t.Type == nil {
		return true
	}
	if payload == nil {
		switch t.Type.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(payload).AssignableTo(t.Type)
}
