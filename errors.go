package adt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by SchemaError, ConstructionError and the match engine.
var (
	ErrNoVariants             = errors.New("no variants declared")
	ErrDuplicateVariant       = errors.New("duplicate variant")
	ErrInvalidName            = errors.New("invalid variant name")
	ErrUnresolvedType         = errors.New("unresolved payload type")
	ErrUnknownParam           = errors.New("unknown type parameter")
	ErrConflictingDeclaration = errors.New("conflicting declaration")
	ErrUnknownVariant         = errors.New("unknown variant")
	ErrPayloadType            = errors.New("payload does not satisfy variant type")
	ErrInvalidValue           = errors.New("invalid value")
	ErrSchemaMismatch         = errors.New("value belongs to a different schema")
)

// SchemaError reports a declaration that cannot be turned into a schema.
type SchemaError struct {
	Type    string // declaring type name
	Variant string // offending variant, empty when the error is about the whole declaration
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("adt: schema %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("adt: schema %s: variant %s: %v", e.Type, e.Variant, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ConstructionError reports a payload rejected by a variant constructor.
type ConstructionError struct {
	Type    string
	Variant string
	Err     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("adt: construct %s.%s: %v", e.Type, e.Variant, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// MatchError reports a handler set that differs from the declared variant set.
// Missing and Unexpected are never nil; at least one of them is non-empty.
type MatchError struct {
	Type       string
	Missing    []string // declared keys with no handler, in declaration order
	Unexpected []string // handler keys naming no variant, sorted
}

func (e *MatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "adt: inexhaustive match on %s", e.Type)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing handlers [%s]", strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		fmt.Fprintf(&b, ": unexpected handlers [%s]", strings.Join(e.Unexpected, ", "))
	}
	return b.String()
}
