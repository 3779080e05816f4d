package schema

import "time"

// Target is the callable a schema invokes with its resolved values.
type Target func(vals Mapping) error

// Mapping holds resolved argument values keyed by declaration name. Single
// arity values are scalars; other arities are []any element slices. The
// typed accessors return the zero value on a missing name or type mismatch.
type Mapping map[string]any

// String returns the named value as a string.
func (m Mapping) String(name string) string {
	v, _ := m[name].(string)
	return v
}

// Int returns the named value as an int.
func (m Mapping) Int(name string) int {
	v, _ := m[name].(int)
	return v
}

// Float returns the named value as a float64.
func (m Mapping) Float(name string) float64 {
	v, _ := m[name].(float64)
	return v
}

// Bool returns the named value as a bool.
func (m Mapping) Bool(name string) bool {
	v, _ := m[name].(bool)
	return v
}

// Time returns the named value as a time.Time.
func (m Mapping) Time(name string) time.Time {
	v, _ := m[name].(time.Time)
	return v
}

// Duration returns the named value as a time.Duration.
func (m Mapping) Duration(name string) time.Duration {
	v, _ := m[name].(time.Duration)
	return v
}

// Slice returns the named element slice of a non-single arity value.
func (m Mapping) Slice(name string) []any {
	v, _ := m[name].([]any)
	return v
}

// Strings returns the named element slice with each string element kept.
func (m Mapping) Strings(name string) []string {
	elems := m.Slice(name)
	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Ints returns the named element slice with each int element kept.
func (m Mapping) Ints(name string) []int {
	elems := m.Slice(name)
	out := make([]int, 0, len(elems))
	for _, elem := range elems {
		if n, ok := elem.(int); ok {
			out = append(out, n)
		}
	}
	return out
}
