package adt

import (
	"math"
	"testing"
)

type point struct{ X, Y int }

// loose compares case-insensitively and hashes accordingly.
type loose string

func (l loose) Equal(o loose) bool { return normalizeKey(string(l)) == normalizeKey(string(o)) }
func (l loose) Hash() uint64       { return identityHash(normalizeKey(string(l))) }

type equalOnly []int

func (e equalOnly) Equal(o equalOnly) bool { return len(e) == len(o) }

func TestEqual_Structural(t *testing.T) {
	r := testRegistry()
	s := intOrString(t, r)

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same_left", s.MustNew("LEFT", 5), s.MustNew("LEFT", 5), true},
		{"different_payload", s.MustNew("LEFT", 5), s.MustNew("LEFT", 6), false},
		{"same_right", s.MustNew("RIGHT", "foobar"), s.MustNew("RIGHT", "foobar"), true},
		{"cross_variant", s.MustNew("LEFT", 5), s.MustNew("RIGHT", "5"), false},
		{"zero_values", Value{}, Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if tt.want && Hash(tt.a) != Hash(tt.b) {
				t.Errorf("equal values hash differently: %d vs %d", Hash(tt.a), Hash(tt.b))
			}
		})
	}
}

func TestEqual_CrossVariantSamePayload(t *testing.T) {
	s, _ := testRegistry().Extract(eitherDecl())
	if Equal(s.MustNew("LEFT", 5), s.MustNew("RIGHT", 5)) {
		t.Error("LEFT(5) must not equal RIGHT(5)")
	}
}

func TestEqual_SchemaIdentity(t *testing.T) {
	r := testRegistry()
	a, _ := r.Extract(Declare("A", Case("X", TypeOf[int]())))
	b, _ := r.Extract(Declare("B", Case("X", TypeOf[int]())))
	if Equal(a.MustNew("X", 1), b.MustNew("X", 1)) {
		t.Error("values of different schemas must never be equal")
	}

	// Same declaration in two registries yields two schemas.
	other, _ := testRegistry().Extract(Declare("A", Case("X", TypeOf[int]())))
	if Equal(a.MustNew("X", 1), other.MustNew("X", 1)) {
		t.Error("schema equality is by identity, not structure")
	}
}

func TestEqual_DelegatesToPayload(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Payloads",
		Case("POINT", TypeOf[point]()),
		Case("LOOSE", TypeOf[loose]()),
		Case("NESTED", TypeOf[Value]()),
	))

	if !Equal(s.MustNew("POINT", point{1, 2}), s.MustNew("POINT", point{1, 2})) {
		t.Error("comparable struct payloads should compare with ==")
	}

	a, b := s.MustNew("LOOSE", loose("Hello")), s.MustNew("LOOSE", loose("HELLO"))
	if !Equal(a, b) {
		t.Error("payload Equal method should be used")
	}
	if Hash(a) != Hash(b) {
		t.Error("payload Hash method should be used")
	}

	inner := intOrString(t, testRegistry())
	n1 := s.MustNew("NESTED", inner.MustNew("LEFT", 1))
	n2 := s.MustNew("NESTED", inner.MustNew("LEFT", 1))
	if !Equal(n1, n2) || Hash(n1) != Hash(n2) {
		t.Error("nested values should compare structurally")
	}
}

type celsius float64

func TestEqual_Reflexive(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Any", Case("ITEM", TypeOf[any]())))
	nan := math.NaN()

	tests := []struct {
		name    string
		payload any
	}{
		{"equal_method", equalOnly{1, 2}},
		{"nan64", nan},
		{"nan32", float32(nan)},
		{"named_nan", celsius(nan)},
		{"complex_nan", complex(nan, 1)},
		{"negative_zero", math.Copysign(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := s.MustNew("ITEM", tt.payload)
			w := s.MustNew("ITEM", tt.payload)
			if !Equal(v, v) || !Equal(v, w) {
				t.Errorf("%v should equal itself", v)
			}
			if _, ok := tt.payload.(equalOnly); ok {
				return
			}
			if Hash(v) != Hash(v) || Hash(v) != Hash(w) {
				t.Errorf("unstable hash for %v: %d vs %d", v, Hash(v), Hash(w))
			}
		})
	}
}

func TestEqual_Floats(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Any", Case("ITEM", TypeOf[any]())))
	nan := math.NaN()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nan_vs_other_nan", nan, math.Float64frombits(0x7ff8000000000001), true},
		{"nan_vs_number", nan, 1.0, false},
		{"zero_signs", 0.0, math.Copysign(0, -1), true},
		{"float32_vs_float64", float32(1), 1.0, false},
		{"named_vs_plain", celsius(1), 1.0, false},
		{"complex_parts", complex(1, nan), complex(1, nan), true},
		{"complex_differs", complex(1, 2), complex(1, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := s.MustNew("ITEM", tt.a), s.MustNew("ITEM", tt.b)
			if got := Equal(a, b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", a, b, got, tt.want)
			}
			if tt.want && Hash(a) != Hash(b) {
				t.Errorf("equal values hash differently: %d vs %d", Hash(a), Hash(b))
			}
		})
	}
}

func TestEqual_UndefinedEqualityPanics(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Bag", Case("ITEMS", TypeOf[[]int]())))
	v := s.MustNew("ITEMS", []int{1})

	assertPanics(t, "Equal", func() { Equal(v, v) })
	assertPanics(t, "Hash", func() { Hash(v) })

	e, _ := testRegistry().Extract(Declare("EqOnly", Case("ITEMS", TypeOf[equalOnly]())))
	assertPanics(t, "Hash without Hash method", func() { Hash(e.MustNew("ITEMS", equalOnly{1})) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
