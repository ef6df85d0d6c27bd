// Package meta holds decoded metadata mappings and the rules for turning
// their values into text.
package meta

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedValue is returned when a value has no text form (e.g. a map).
var ErrUnsupportedValue = errors.New("unsupported metadata value")

// Map is a decoded metadata mapping. Values are whatever the YAML or TOML
// decoder produced.
type Map map[string]any

// Text returns the text form of the value stored under key.
// ok is false when the key is missing or its value is null.
func (m Map) Text(key string) (s string, ok bool, err error) {
	v, found := m[key]
	if !found || v == nil {
		return "", false, nil
	}
	s, err = Format(v)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", key, err)
	}
	return s, true, nil
}

// Lookup is like Text but treats an empty result as absent. Directive
// options use it: an empty label is the same as no label.
func (m Map) Lookup(key string) (string, bool, error) {
	s, ok, err := m.Text(key)
	if err != nil || !ok || s == "" {
		return "", false, err
	}
	return s, true, nil
}

// Keys returns the keys of m in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format converts a decoded scalar to text. Lists of scalars are joined with
// a comma and no space. Maps and other composite values are rejected.
func Format(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case time.Time:
		return formatTime(x), nil
	case fmt.Stringer:
		return x.String(), nil
	case []any:
		return formatList(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return formatList(items)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func formatList(items []any) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		if isComposite(item) {
			return "", fmt.Errorf("%w: nested %T", ErrUnsupportedValue, item)
		}
		s, err := Format(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ","), nil
}

func isComposite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		_, isTime := v.(time.Time)
		_, isStringer := v.(fmt.Stringer)
		return !isTime && !isStringer
	}
	return false
}

// Locations BurntSushi/toml assigns to values written without an offset.
const (
	tomlLocalDatetime = "datetime-local"
	tomlLocalDate     = "date-local"
	tomlLocalTime     = "time-local"
)

// formatTime prints dates without a clock as YYYY-MM-DD. TOML local values
// keep the precision they were written with and get no zone suffix.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case tomlLocalDate:
		return t.Format(time.DateOnly)
	case tomlLocalDatetime:
		return t.Format("2006-01-02T15:04:05.999999999")
	case tomlLocalTime:
		return t.Format("15:04:05.999999999")
	}
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 && t.Location() == time.UTC {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
