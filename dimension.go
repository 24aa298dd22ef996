package veneer

import (
	"sort"
	"strconv"
	"strings"
)

// Dimension is a key/value pair qualifying a metric stream, e.g. a route
// name or status code.
//
// Pair order carries no meaning for identity: two dimension sets are
// equivalent when their key-to-value mappings are equal, with the last value
// winning for a duplicated key. Backends that key on dimensions should
// compare canonical forms (see CanonicalDimensions) rather than raw slices.
type Dimension struct {
	Key   string
	Value string
}

// Dim is shorthand for constructing a Dimension.
func Dim(key, value string) Dimension {
	return Dimension{Key: key, Value: value}
}

// CanonicalDimensions returns dims with duplicate keys collapsed (last value
// wins) and the remaining pairs sorted by key. The input is not modified.
func CanonicalDimensions(dims []Dimension) []Dimension {
	if len(dims) == 0 {
		return nil
	}

	byKey := make(map[string]string, len(dims))
	for _, d := range dims {
		byKey[d.Key] = d.Value
	}

	out := make([]Dimension, 0, len(byKey))
	for k, v := range byKey {
		out = append(out, Dimension{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DimensionsKey returns a stable string key for a label and dimension set,
// identical for all orderings of equivalent dimensions. Backends use it to
// index handlers by metric identity.
func DimensionsKey(label string, dims []Dimension) string {
	canonical := CanonicalDimensions(dims)

	var b strings.Builder
	b.WriteString(strconv.Quote(label))
	for _, d := range canonical {
		b.WriteByte(',')
		b.WriteString(strconv.Quote(d.Key))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(d.Value))
	}
	return b.String()
}
