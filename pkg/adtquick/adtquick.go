// Package adtquick generates random sum-type values for testing/quick.
//
// It composes the core's ordered variant list and per-variant constructors:
// pick a variant uniformly, generate a payload of its type, construct.
package adtquick

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing/quick"

	"github.com/speakeasy-api/adt"
)

// PayloadFunc generates a payload for variant v. Returning ok == false falls
// back to the default generator.
type PayloadFunc func(v adt.Variant, r *rand.Rand, size int) (payload any, ok bool)

// Generator builds random values of one schema.
type Generator struct {
	Schema  *adt.Schema
	Payload PayloadFunc // optional
	Size    int         // size hint passed to Payload (default: 16)

	ctors []adt.Constructor
}

// New returns a generator for s.
func New(s *adt.Schema) *Generator {
	return &Generator{Schema: s, Size: 16, ctors: s.Constructors()}
}

// Generate picks a variant, generates its payload and constructs the value.
func (g *Generator) Generate(r *rand.Rand) (adt.Value, error) {
	if g.ctors == nil {
		g.ctors = g.Schema.Constructors()
	}
	variants := g.Schema.Variants()
	i := r.Intn(len(variants))

	p, err := g.payload(variants[i], r)
	if err != nil {
		return adt.Value{}, err
	}
	return g.ctors[i](p)
}

func (g *Generator) payload(v adt.Variant, r *rand.Rand) (any, error) {
	size := g.Size
	if size <= 0 {
		size = 16
	}
	if g.Payload != nil {
		if p, ok := g.Payload(v, r, size); ok {
			return p, nil
		}
	}
	if v.Erased() || v.Payload.Type.Kind() == reflect.Interface {
		return anyValue(r), nil
	}
	rv, ok := quick.Value(v.Payload.Type, r)
	if !ok {
		return nil, fmt.Errorf("adtquick: cannot generate %s payload for %s.%s", v.Payload, g.Schema, v.Name)
	}
	return rv.Interface(), nil
}

// anyValue draws from a small pool of comparable types for erased payloads,
// NaN included.
func anyValue(r *rand.Rand) any {
	switch r.Intn(5) {
	case 0:
		return r.Int()
	case 1:
		b := make([]byte, r.Intn(8))
		for i := range b {
			b[i] = byte('a' + r.Intn(26))
		}
		return string(b)
	case 2:
		return r.Intn(2) == 1
	case 3:
		return math.NaN()
	default:
		return r.Float64()
	}
}

// Config returns a quick.Config whose Values function fills every argument
// of the checked function with a generated value. All arguments must be
// adt.Value.
func (g *Generator) Config(maxCount int) *quick.Config {
	return &quick.Config{
		MaxCount: maxCount,
		Values: func(args []reflect.Value, r *rand.Rand) {
			for i := range args {
				v, err := g.Generate(r)
				if err != nil {
					panic(err)
				}
				args[i] = reflect.ValueOf(v)
			}
		},
	}
}
