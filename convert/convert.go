package convert

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonwraymond/scenebridge/scene"
)

// Rule pairs a field predicate with a converter. Rules are matched in order against
// the lower-cased field name; node is the optional context disambiguating
// identically named properties whose native type differs by node kind.
type Rule struct {
	// Name identifies the rule in error messages.
	Name string

	// Match reports whether this rule applies to the field.
	Match func(field string, node scene.Node) bool

	// Apply converts the raw composite. It either fully applies or returns
	// an error naming the offending sub-fields.
	Apply func(raw any, node scene.Node) (any, error)
}

// Convert marshals one wire value for the named field. Non-composite values
// pass through unchanged, as does any composite no rule claims. node may be
// nil when no context is available.
func Convert(field string, raw any, node scene.Node) (any, error) {
	switch raw.(type) {
	case map[string]any, []any:
	default:
		return raw, nil
	}

	lower := strings.ToLower(field)
	for _, r := range rules {
		if r.Match(lower, node) {
			return r.Apply(raw, node)
		}
	}
	return raw, nil
}

// record returns raw as a key-folded record. Keys are lower-cased so wire
// producers may use any casing for sub-fields.
func record(raw any) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out, true
}

// toNumber coerces the numeric encodings that reach the converter from JSON
// decoding and from handler-built records.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// reader accumulates missing and invalid sub-fields while pulling numbers
// out of a record, so a rule can report every problem at once.
type reader struct {
	rec     map[string]any
	missing []string
	invalid []string
}

func newReader(rec map[string]any) *reader {
	return &reader{rec: rec}
}

// req reads a required numeric sub-field.
func (r *reader) req(key string) float64 {
	v, ok := r.rec[key]
	if !ok {
		r.missing = append(r.missing, key)
		return 0
	}
	n, ok := toNumber(v)
	if !ok {
		r.invalid = append(r.invalid, key)
		return 0
	}
	return n
}

// opt reads an optional numeric sub-field, defaulting when absent.
func (r *reader) opt(key string, def float64) float64 {
	v, ok := r.rec[key]
	if !ok {
		return def
	}
	n, ok := toNumber(v)
	if !ok {
		r.invalid = append(r.invalid, key)
		return def
	}
	return n
}

// optAlias reads an optional numeric sub-field accepting alternate key
// spellings, defaulting when none are present.
func (r *reader) optAlias(def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := r.rec[k]; ok {
			n, ok := toNumber(v)
			if !ok {
				r.invalid = append(r.invalid, k)
				return def
			}
			return n
		}
	}
	return def
}

// hasAny reports whether any of the keys is present.
func (r *reader) hasAny(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r.rec[k]; ok {
			return true
		}
	}
	return false
}

// err reports the accumulated problems, or nil when the record read cleanly.
func (r *reader) err(rule string) error {
	if len(r.missing) == 0 && len(r.invalid) == 0 {
		return nil
	}
	sort.Strings(r.missing)
	sort.Strings(r.invalid)
	var parts []string
	if len(r.missing) > 0 {
		parts = append(parts, "missing "+strings.Join(r.missing, ", "))
	}
	if len(r.invalid) > 0 {
		parts = append(parts, "non-numeric "+strings.Join(r.invalid, ", "))
	}
	return fmt.Errorf("%s: %s", rule, strings.Join(parts, "; "))
}
