// Package flatten converts the store's nested collections into flat,
// tagged record sequences. The remote store pushes whole subtrees as
// opaque nested mappings with no schema; this package is where those
// mappings become ordered records with defaults filled in.
package flatten

import (
	"sort"
	"strconv"
)

// Record is one flattened entity. Key is the entity's own key within
// its collection; OwnerKey is set only for owner-scoped collections
// (appointments are keyed by patient first). Key uniqueness holds
// within one collection only; identity is the (OwnerKey, Key) pair.
type Record struct {
	OwnerKey string
	Key      string
	Fields   map[string]any
}

// Flat flattens a single-level mapping (entityId → record). A nil or
// empty tree yields an empty sequence, never an error. Entities are
// emitted in sorted key order, matching the store's key ordering.
func Flat(tree map[string]any, defaults map[string]any) []Record {
	out := make([]Record, 0, len(tree))
	for _, key := range sortedKeys(tree) {
		out = append(out, Record{Key: key, Fields: merge(defaults, tree[key])})
	}
	return out
}

// Nested flattens a two-level mapping (ownerId → entityId → record).
// Owners whose value is not itself a mapping are skipped; the store
// enforces no schema, so stray leaves are not an error. Output is
// stable within an owner (sorted entity keys).
func Nested(tree map[string]any, defaults map[string]any) []Record {
	out := make([]Record, 0, len(tree))
	for _, owner := range sortedKeys(tree) {
		entities, ok := tree[owner].(map[string]any)
		if !ok {
			continue
		}
		for _, key := range sortedKeys(entities) {
			out = append(out, Record{OwnerKey: owner, Key: key, Fields: merge(defaults, entities[key])})
		}
	}
	return out
}

// merge lays the source record's fields over the defaults. Only
// absence falls through to a default: a present-but-falsy field (empty
// string, zero) is preserved as authored.
func merge(defaults map[string]any, raw any) map[string]any {
	fields := make(map[string]any, len(defaults)+4)
	for k, v := range defaults {
		fields[k] = v
	}
	src, ok := raw.(map[string]any)
	if !ok {
		return fields
	}
	for k, v := range src {
		fields[k] = v
	}
	return fields
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str reads a string field, returning def when the field is absent or
// not a string.
func Str(fields map[string]any, key, def string) string {
	v, ok := fields[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Num reads a numeric field. JSON numbers decode as float64, but the
// store enforces no schema, so numeric strings are accepted too.
func Num(fields map[string]any, key string, def float64) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
