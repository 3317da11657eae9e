package restmux

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// merge returns a deep merge of two metadata maps. Values from b win on key
// conflicts; nested maps merge recursively. Neither input is mutated.
func merge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		av, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		am, aIsMap := av.(map[string]any)
		bm, bIsMap := v.(map[string]any)
		if aIsMap && bIsMap {
			out[k] = merge(am, bm)
		} else {
			out[k] = v
		}
	}
	return out
}

// mergeParams merges two name-keyed parameter tables, b winning per key.
func mergeParams(a, b map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if av, ok := out[k]; ok {
			out[k] = merge(av, v)
		} else {
			out[k] = v
		}
	}
	return out
}

// notNone drops nil-valued entries in place and returns the map. Typed nil
// slices and maps stored through any count as nil too.
func notNone(m map[string]any) map[string]any {
	for k, v := range m {
		if isNone(v) {
			delete(m, k)
		}
	}
	return m
}

func isNone(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

var (
	reFirstCap = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	reAllCap   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// camelToSnake turns "TodoItem" into "todo_item" for default operation ids.
func camelToSnake(s string) string {
	s = reFirstCap.ReplaceAllString(s, "${1}_${2}")
	s = reAllCap.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
