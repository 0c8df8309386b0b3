package oasexport

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"

	"github.com/speakeasy-api/adt"
	"github.com/speakeasy-api/openapi/jsonschema/oas3"
)

// Fingerprinter hashes exported schemas with caching. Fingerprints depend
// only on the structure of the export, so two registries declaring the same
// sum type agree on it.
type Fingerprinter struct {
	mu    sync.RWMutex
	cache map[*adt.Schema]string
}

// NewFingerprinter creates a new fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{cache: make(map[*adt.Schema]string, 64)}
}

// Fingerprint returns a deterministic hex fingerprint for s.
func (fp *Fingerprinter) Fingerprint(s *adt.Schema) string {
	fp.mu.RLock()
	if sum, ok := fp.cache[s]; ok {
		fp.mu.RUnlock()
		return sum
	}
	fp.mu.RUnlock()

	w := newCanonWriter()
	w.WriteString(fmt.Sprintf("%q:", s.Name()))
	encodeSchema(Export(s), w)
	sum := sha256.Sum256(w.Bytes())
	hex := fmt.Sprintf("%x", sum[:])

	fp.mu.Lock()
	fp.cache[s] = hex
	fp.mu.Unlock()
	return hex
}

var defaultFingerprinter = NewFingerprinter()

// Fingerprint is a convenience function using the default fingerprinter.
func Fingerprint(s *adt.Schema) string {
	return defaultFingerprinter.Fingerprint(s)
}

// encodeSchema writes the canonical form of the subset of JSON Schema that
// Export produces. Properties are sorted; oneOf keeps declaration order.
func encodeSchema(s *oas3.Schema, w *canonWriter) {
	if s == nil {
		w.WriteString("{\"$bottom\":true}")
		return
	}

	w.WriteByte('{')
	first := true
	writeField := func(key string, fn func()) {
		if !first {
			w.WriteByte(',')
		}
		first = false
		w.WriteString(fmt.Sprintf("%q:", key))
		fn()
	}

	if typ := getType(s); typ != "" {
		writeField("type", func() { w.WriteString(fmt.Sprintf("%q", typ)) })
	}
	if s.Nullable != nil && *s.Nullable {
		writeField("nullable", func() { w.WriteString("true") })
	}
	if s.Format != nil {
		writeField("format", func() { w.WriteString(fmt.Sprintf("%q", *s.Format)) })
	}
	if s.Items != nil {
		writeField("items", func() { encodeSchema(s.Items.Left, w) })
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		writeField("properties", func() {
			type propEntry struct {
				key    string
				schema *oas3.Schema
			}
			props := make([]propEntry, 0, s.Properties.Len())
			for k, v := range s.Properties.All() {
				props = append(props, propEntry{k, v.Left})
			}
			sort.Slice(props, func(i, j int) bool { return props[i].key < props[j].key })

			w.WriteByte('{')
			for i, p := range props {
				if i > 0 {
					w.WriteByte(',')
				}
				w.WriteString(fmt.Sprintf("%q:", p.key))
				encodeSchema(p.schema, w)
			}
			w.WriteByte('}')
		})
	}

	if s.AdditionalProperties != nil {
		writeField("additionalProperties", func() { encodeSchema(s.AdditionalProperties.Left, w) })
	}

	if len(s.Required) > 0 {
		writeField("required", func() {
			sorted := append([]string(nil), s.Required...)
			sort.Strings(sorted)
			w.WriteByte('[')
			for i, r := range sorted {
				if i > 0 {
					w.WriteByte(',')
				}
				w.WriteString(fmt.Sprintf("%q", r))
			}
			w.WriteByte(']')
		})
	}

	if len(s.OneOf) > 0 {
		writeField("oneOf", func() {
			w.WriteByte('[')
			for i, branch := range s.OneOf {
				if i > 0 {
					w.WriteByte(',')
				}
				encodeSchema(branch.Left, w)
			}
			w.WriteByte(']')
		})
	}

	w.WriteByte('}')
}

// canonWriter is a simple buffer for building canonical representations.
type canonWriter struct {
	buf []byte
}

func newCanonWriter() *canonWriter {
	return &canonWriter{buf: make([]byte, 0, 512)}
}

func (w *canonWriter) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

func (w *canonWriter) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *canonWriter) Bytes() []byte {
	return w.buf
}
