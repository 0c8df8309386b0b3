package adt

import (
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
)

var hashSeed = maphash.MakeSeed()

var boolType = reflect.TypeFor[bool]()

// Equal reports whether a and b share the same schema (by identity), the same
// active variant and equal payloads. Payload equality is delegated: a payload
// whose type has an Equal method taking its own type and returning bool is
// compared with it, anything else with ==, except that float and complex
// payloads treat NaN as equal to NaN so that every value equals itself.
// Equal panics if a payload has neither, as when comparing incomparable
// interface values.
func (v Value) Equal(o Value) bool {
	if v.schema != o.schema || v.ordinal != o.ordinal {
		return false
	}
	return payloadEqual(v.payload, o.payload)
}

// Hash returns a hash consistent with Equal. A payload with a custom Equal
// method must provide a matching Hash() uint64 method; otherwise Hash panics
// rather than guessing a hash that could disagree with Equal.
func (v Value) Hash() uint64 {
	if v.schema == nil {
		return 0
	}
	h := v.schema.hash
	h = h*31 + uint64(v.ordinal)
	h = h*31 + payloadHash(v.payload)
	return h
}

// Equal is a.Equal(b).
func Equal(a, b Value) bool { return a.Equal(b) }

// Hash is v.Hash().
func Hash(v Value) uint64 { return v.Hash() }

func payloadEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := callEqual(a, b); ok {
		return eq
	}
	av := reflect.ValueOf(a)
	if isFloatKind(av.Kind()) {
		return floatEqual(av, reflect.ValueOf(b))
	}
	if !av.Comparable() {
		panic(fmt.Sprintf("adt: payload of type %T has no defined equality", a))
	}
	if !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// callEqual invokes a's Equal(T) bool method when it has one.
func callEqual(a, b any) (eq, ok bool) {
	m, ok := equalMethod(a)
	if !ok {
		return false, false
	}
	bv := reflect.ValueOf(b)
	if !bv.Type().AssignableTo(m.Type().In(0)) {
		return false, true
	}
	return m.Call([]reflect.Value{bv})[0].Bool(), true
}

func equalMethod(a any) (reflect.Value, bool) {
	m := reflect.ValueOf(a).MethodByName("Equal")
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0) != boolType {
		return reflect.Value{}, false
	}
	return m, true
}

func payloadHash(p any) uint64 {
	if p == nil {
		return 0
	}
	if h, ok := p.(interface{ Hash() uint64 }); ok {
		return h.Hash()
	}
	if _, ok := equalMethod(p); ok {
		panic(fmt.Sprintf("adt: payload of type %T defines Equal but not Hash", p))
	}
	pv := reflect.ValueOf(p)
	if isFloatKind(pv.Kind()) {
		return floatHash(pv)
	}
	if !pv.Comparable() {
		panic(fmt.Sprintf("adt: payload of type %T is not hashable", p))
	}
	return maphash.Comparable(hashSeed, p)
}

func isFloatKind(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// floatEqual is == on same-typed floats and complexes, with NaN equal to NaN.
func floatEqual(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		return sameFloat(real(ac), real(bc)) && sameFloat(imag(ac), imag(bc))
	default:
		return sameFloat(a.Float(), b.Float())
	}
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// floatHash hashes every NaN alike; +0 and -0 already hash alike.
func floatHash(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return canonicalFloatHash(real(c))*31 + canonicalFloatHash(imag(c))
	default:
		return canonicalFloatHash(v.Float())
	}
}

func canonicalFloatHash(f float64) uint64 {
	if math.IsNaN(f) {
		return maphash.String(hashSeed, "NaN")
	}
	return maphash.Comparable(hashSeed, f)
}
