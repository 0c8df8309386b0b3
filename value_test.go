package adt

import (
	"errors"
	"testing"
)

func TestConstruct_LeftAndRight(t *testing.T) {
	s := intOrString(t, testRegistry())

	left, err := s.New("LEFT", 5)
	if err != nil {
		t.Fatalf("New(LEFT) failed: %v", err)
	}
	if left.Tag() != "LEFT" || left.Ordinal() != 0 || left.Payload() != 5 {
		t.Errorf("unexpected value %v", left)
	}
	if left.Schema() != s {
		t.Error("value should reference its schema")
	}

	right, err := s.New("right", "foobar")
	if err != nil {
		t.Fatalf("New(right) failed: %v", err)
	}
	if right.Tag() != "RIGHT" || right.Payload() != "foobar" {
		t.Errorf("unexpected value %v", right)
	}
	if right.String() != "IntOrString.RIGHT(foobar)" {
		t.Errorf("String() = %q", right.String())
	}
}

func TestConstruct_Validation(t *testing.T) {
	s := intOrString(t, testRegistry())

	_, err := s.New("LEFT", "five")
	if !errors.Is(err, ErrPayloadType) {
		t.Fatalf("expected ErrPayloadType, got %v", err)
	}
	var cerr *ConstructionError
	if !errors.As(err, &cerr) || cerr.Variant != "LEFT" {
		t.Errorf("expected *ConstructionError for LEFT, got %v", err)
	}

	if _, err := s.New("RIGHT", nil); !errors.Is(err, ErrPayloadType) {
		t.Errorf("nil is not a string, got %v", err)
	}
	if _, err := s.New("MIDDLE", 1); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestConstruct_ValidationDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.LogLevel = ""
	opts.ValidatePayloads = false
	r := NewRegistry(opts)
	s := intOrString(t, r)
	if s.Validates() {
		t.Fatal("schema should not validate")
	}

	v, err := s.New("LEFT", "five")
	if err != nil {
		t.Fatalf("New failed with validation disabled: %v", err)
	}
	if v.Payload() != "five" {
		t.Errorf("payload = %v", v.Payload())
	}
}

func TestConstruct_NilForNilableKinds(t *testing.T) {
	s, err := testRegistry().Extract(Declare("Maybe",
		Case("SOME", TypeOf[*int]()),
		Case("ITEMS", TypeOf[[]string]()),
		Case("ANY", TypeOf[any]()),
	))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for _, name := range []string{"SOME", "ITEMS", "ANY"} {
		if _, err := s.New(name, nil); err != nil {
			t.Errorf("New(%s, nil) failed: %v", name, err)
		}
	}
}

func TestConstructors_Order(t *testing.T) {
	s := intOrString(t, testRegistry())
	ctors := s.Constructors()
	if len(ctors) != 2 {
		t.Fatalf("expected 2 constructors, got %d", len(ctors))
	}
	l, err := ctors[0](1)
	if err != nil || l.Tag() != "LEFT" {
		t.Errorf("first constructor built %v (%v)", l, err)
	}
	r, err := ctors[1]("x")
	if err != nil || r.Tag() != "RIGHT" {
		t.Errorf("second constructor built %v (%v)", r, err)
	}
}

func TestConstruct_NoCopy(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Bag", Case("ITEMS", TypeOf[[]int]())))
	items := []int{1, 2, 3}
	v := s.MustNew("ITEMS", items)
	items[0] = 42
	if got := v.Payload().([]int); got[0] != 42 {
		t.Error("payload should be stored without copying")
	}
}

func TestAccessors(t *testing.T) {
	s := intOrString(t, testRegistry())
	left := s.MustNew("LEFT", 5)
	right := s.MustNew("RIGHT", "foobar")

	accLeft, err := s.Accessor("left")
	if err != nil {
		t.Fatalf("Accessor failed: %v", err)
	}
	accRight := s.Accessors()["right"]

	if p, ok := accLeft(left); !ok || p != 5 {
		t.Errorf("left(LEFT(5)) = %v, %v", p, ok)
	}
	if p, ok := accRight(left); ok || p != nil {
		t.Errorf("right(LEFT(5)) = %v, %v; want absent", p, ok)
	}
	if p, ok := accRight(right); !ok || p != "foobar" {
		t.Errorf("right(RIGHT(foobar)) = %v, %v", p, ok)
	}
	if _, ok := accLeft(right); ok {
		t.Error("left(RIGHT(foobar)) should be absent")
	}
	if _, ok := accLeft(Value{}); ok {
		t.Error("accessors must reject the zero Value")
	}

	if p, ok := left.Get("LEFT"); !ok || p != 5 {
		t.Errorf("Get(LEFT) = %v, %v", p, ok)
	}
	if _, ok := left.Get("nope"); ok {
		t.Error("Get on unknown variant should be absent")
	}
	if _, err := s.Accessor("nope"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestAccessors_AbsentDistinctFromNilPayload(t *testing.T) {
	s, _ := testRegistry().Extract(Declare("Opt",
		Case("SOME", TypeOf[any]()),
		Case("NONE", TypeOf[struct{}]()),
	))
	v := s.MustNew("SOME", nil)
	if p, ok := v.Get("some"); !ok || p != nil {
		t.Errorf("Get(some) = %v, %v; want nil payload present", p, ok)
	}
	if _, ok := v.Get("none"); ok {
		t.Error("Get(none) should be absent")
	}
}

func TestZeroValue(t *testing.T) {
	var v Value
	if v.IsValid() || v.Schema() != nil || v.Ordinal() != -1 || v.Tag() != "" {
		t.Errorf("unexpected zero value state: %v", v)
	}
	if _, ok := v.Variant(); ok {
		t.Error("zero value has no variant")
	}
}
