// Package normalize converts raw provider payload values into display-safe
// strings. Providers are not trusted to return a plain string: the text field
// has been observed as a string, a list of fragments, a nested object, or
// missing entirely. Everything that crosses into persistence or a client
// response goes through Normalize first.
package normalize

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the shape of a raw provider value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindList
	KindMap
	KindOther
)

// Value is a tagged variant over the shapes a decoded JSON payload can take.
// Exactly one of the payload fields is meaningful for a given Kind.
type Value struct {
	Kind Kind
	Str  string
	List []Value
	Map  map[string]any
	Raw  any
}

func Absent() Value          { return Value{Kind: KindAbsent} }
func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func List(vs ...Value) Value { return Value{Kind: KindList, List: vs} }
func Map(m map[string]any) Value {
	return Value{Kind: KindMap, Map: m}
}
func Other(v any) Value { return Value{Kind: KindOther, Raw: v} }

// FromJSON classifies a value decoded by encoding/json into the variant.
// Nested lists are classified recursively; maps are kept whole since no
// semantic text field is assumed inside them.
func FromJSON(v any) Value {
	switch t := v.(type) {
	case nil:
		return Absent()
	case string:
		return String(t)
	case []any:
		out := make([]Value, 0, len(t))
		for _, e := range t {
			out = append(out, FromJSON(e))
		}
		return Value{Kind: KindList, List: out}
	case map[string]any:
		return Map(t)
	default:
		return Other(t)
	}
}

// Normalize renders a Value as a single string. It is total: every input,
// including misbehaving fmt.Stringer implementations, yields some string.
//
//   - string: unchanged
//   - absent: ""
//   - list: elements normalized independently, space-joined, original order
//   - map: deterministic debug rendering (keys sorted)
//   - anything else: best-effort fmt conversion
func Normalize(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindAbsent:
		return ""
	case KindList:
		parts := make([]string, 0, len(v.List))
		for _, e := range v.List {
			parts = append(parts, Normalize(e))
		}
		return strings.Join(parts, " ")
	case KindMap:
		return renderMap(v.Map)
	default:
		return stringify(v.Raw)
	}
}

// renderMap produces a map[k:v ...] rendering with sorted keys so the output
// is stable across runs. fmt's own map printing already sorts keys, but the
// values here may themselves be maps or lists, so each is stringified
// explicitly.
func renderMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("map[")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(stringify(m[k]))
	}
	b.WriteByte(']')
	return b.String()
}

// stringify is the no-error-path fallback. fmt.Sprint cannot fail but a
// custom String()/Error() method can panic; that panic is converted into a
// type-based diagnostic instead of propagating.
func stringify(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<unprintable %T>", v)
		}
	}()
	return fmt.Sprint(v)
}
