// Package declfile loads sum-type declarations from YAML.
//
// A file lists declarations under "sumtypes". Variants are a mapping from
// variant name to type expression and keep their order from the file:
//
//	sumtypes:
//	  - name: Either
//	    params: [L, R]
//	    variants:
//	      LEFT: L
//	      RIGHT: R
//	    instances:
//	      - {L: int, R: string}
package declfile

import (
	"fmt"
	"os"
	"reflect"

	"github.com/speakeasy-api/adt"
	"gopkg.in/yaml.v3"
)

// File is a parsed declaration file.
type File struct {
	Declarations []adt.Declaration
	// Instances lists, per declaration index, the type arguments to bind.
	Instances map[int][]map[string]string
}

type fileDoc struct {
	SumTypes []sumTypeDoc `yaml:"sumtypes"`
}

type sumTypeDoc struct {
	Name      string              `yaml:"name"`
	Params    []string            `yaml:"params"`
	Variants  yaml.Node           `yaml:"variants"`
	Instances []map[string]string `yaml:"instances"`
}

// Decode parses declarations from YAML, resolving type expressions with res.
func Decode(data []byte, res *Resolver) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}
	if res == nil {
		res = NewResolver()
	}

	f := &File{Instances: make(map[int][]map[string]string)}
	for i, st := range doc.SumTypes {
		d := adt.Declaration{Name: st.Name, Params: st.Params}
		bindings, err := parseVariants(&st.Variants, st.Params, res)
		if err != nil {
			return nil, fmt.Errorf("sumtype %q: %w", st.Name, err)
		}
		d.Variants = bindings
		f.Declarations = append(f.Declarations, d)
		if len(st.Instances) > 0 {
			f.Instances[i] = st.Instances
		}
	}
	return f, nil
}

// parseVariants reads the ordered variants mapping.
func parseVariants(node *yaml.Node, params []string, res *Resolver) ([]adt.Binding, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variants must be a mapping (line %d)", node.Line)
	}

	// MappingNode stores content as alternating key/value pairs
	bindings := make([]adt.Binding, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("variant %s: type must be a string (line %d)", keyNode.Value, valueNode.Line)
		}
		bindings = append(bindings, adt.Case(keyNode.Value, res.Resolve(valueNode.Value, params)))
	}
	return bindings, nil
}

// Load extracts every declaration of data into reg, followed by the bound
// instances each declaration lists.
func Load(reg *adt.Registry, data []byte, res *Resolver) ([]*adt.Schema, error) {
	if res == nil {
		res = NewResolver()
	}
	f, err := Decode(data, res)
	if err != nil {
		return nil, err
	}

	var out []*adt.Schema
	for i, d := range f.Declarations {
		s, err := reg.Extract(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)

		for _, inst := range f.Instances[i] {
			args := make(map[string]reflect.Type, len(inst))
			for p, expr := range inst {
				te := res.Resolve(expr, nil)
				if te.Type == nil {
					return nil, &adt.SchemaError{Type: d.Name, Variant: p, Err: fmt.Errorf("%w: %s", adt.ErrUnresolvedType, expr)}
				}
				args[p] = te.Type
			}
			bound, err := reg.Bind(s, args)
			if err != nil {
				return nil, err
			}
			out = append(out, bound)
		}
	}
	return out, nil
}

// LoadFile is Load for the file at path.
func LoadFile(reg *adt.Registry, path string, res *Resolver) ([]*adt.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schemas, err := Load(reg, data, res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}
