// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile expands parameterized feature profiles into concrete
// sets of preprocessor defines.
//
// A profile maps feature names to values. A value is a boolean, a
// scalar, a list of scalars or an inclusive integer range. Lists and
// ranges are expanded combinatorially: a profile with a three element
// range and a two element list becomes six concrete profiles.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// A Kind identifies which of the four value shapes a Value holds.
type Kind int

const (
	Bool Kind = iota
	Scalar
	List
	Range
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Range:
		return "range"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Value is a feature value. The zero Value is the boolean false.
type Value struct {
	kind     Kind
	b        bool
	text     string
	elems    []Value
	min, max int
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// ScalarValue returns a scalar Value with the given define text.
func ScalarValue(text string) Value { return Value{kind: Scalar, text: text} }

// IntValue returns a scalar Value holding an integer.
func IntValue(i int) Value { return ScalarValue(strconv.Itoa(i)) }

// ListValue returns a list Value. Elements must be booleans or scalars.
func ListValue(elems ...Value) (Value, error) {
	if len(elems) == 0 {
		return Value{}, &ConfigError{Msg: "empty value list"}
	}
	for _, e := range elems {
		if e.kind != Bool && e.kind != Scalar {
			return Value{}, &ConfigError{Msg: fmt.Sprintf("list element must be a scalar or boolean, not a %s", e.kind)}
		}
	}
	return Value{kind: List, elems: elems}, nil
}

// RangeValue returns the inclusive integer range [min, max].
func RangeValue(min, max int) (Value, error) {
	if min > max {
		return Value{}, &ConfigError{Msg: fmt.Sprintf("invalid range: min %d is greater than max %d", min, max)}
	}
	return Value{kind: Range, min: min, max: max}, nil
}

// Kind returns the shape of v.
func (v Value) Kind() Kind { return v.kind }

// Variable reports whether v expands to more than one concrete value
// slot, that is, whether it is a list or a range.
func (v Value) Variable() bool {
	return v.kind == List || v.kind == Range
}

// Values returns the sequence of fixed values a variable Value expands
// to. For a fixed Value it returns v itself.
func (v Value) Values() []Value {
	switch v.kind {
	case List:
		return v.elems
	case Range:
		vals := make([]Value, 0, v.max-v.min+1)
		for i := v.min; i <= v.max; i++ {
			vals = append(vals, IntValue(i))
		}
		return vals
	}
	return []Value{v}
}

// Text returns the define text of a fixed Value, normalizing booleans
// with tokens.
func (v Value) Text(tokens Tokens) string {
	switch v.kind {
	case Bool:
		if v.b {
			return tokens.True
		}
		return tokens.False
	case Scalar:
		return v.text
	}
	panic(fmt.Sprintf("Text of %s value", v.kind))
}

func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Scalar:
		return v.text
	case List:
		s := "["
		for i, e := range v.elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case Range:
		return fmt.Sprintf("{min = %d, max = %d}", v.min, v.max)
	}
	return "?"
}

// ParseValue converts a value decoded from TOML (or JSON or YAML) into a
// Value. Booleans, strings and numbers are fixed values, arrays are
// lists and tables with "min" and "max" keys are ranges.
func ParseValue(raw any) (Value, error) {
	switch raw := raw.(type) {
	case bool:
		return BoolValue(raw), nil
	case []any:
		elems := make([]Value, len(raw))
		for i, r := range raw {
			e, err := ParseValue(r)
			if err != nil {
				return Value{}, err
			}
			elems[i] = e
		}
		return ListValue(elems...)
	case map[string]any:
		return parseRange(raw)
	}
	if text, ok := scalarText(raw); ok {
		return ScalarValue(text), nil
	}
	return Value{}, &ConfigError{Msg: fmt.Sprintf("unsupported value %v of type %T", raw, raw)}
}

func scalarText(raw any) (string, bool) {
	switch raw := raw.(type) {
	case string:
		return raw, true
	case int:
		return strconv.Itoa(raw), true
	case int64:
		return strconv.FormatInt(raw, 10), true
	case uint64:
		return strconv.FormatUint(raw, 10), true
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64), true
	}
	return "", false
}

func parseRange(raw map[string]any) (Value, error) {
	var missing []string
	for _, k := range []string{"min", "max"} {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Value{}, &ConfigError{Msg: fmt.Sprintf("invalid range: missing %v", missing)}
	}
	for k := range raw {
		if k != "min" && k != "max" {
			return Value{}, &ConfigError{Msg: fmt.Sprintf("invalid range: unknown key %q", k)}
		}
	}
	lo, err := rangeBound(raw["min"])
	if err != nil {
		return Value{}, &ConfigError{Msg: "invalid range min: " + err.Error()}
	}
	hi, err := rangeBound(raw["max"])
	if err != nil {
		return Value{}, &ConfigError{Msg: "invalid range max: " + err.Error()}
	}
	return RangeValue(lo, hi)
}

func rangeBound(raw any) (int, error) {
	switch raw := raw.(type) {
	case int:
		return raw, nil
	case int64:
		return int(raw), nil
	case float64:
		if raw != math.Trunc(raw) {
			return 0, fmt.Errorf("%v is not an integer", raw)
		}
		return int(raw), nil
	case string:
		return strconv.Atoi(raw)
	}
	return 0, fmt.Errorf("%v is not an integer", raw)
}

// An Order is the order in which profile tables and their features
// were written. Decoded tables lose it, so it is recovered separately
// from the document.
type Order struct {
	Profiles []string
	Features map[string][]string // by profile name
}

// ordered returns the keys of m, first those in order that are present
// in m, then the rest sorted by name.
func ordered[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// ParseProfiles converts decoded profile tables into Profiles, with
// profiles and features in the given order. Names that order does not
// mention follow in name order.
func ParseProfiles(raw map[string]map[string]any, order Order) ([]Profile, error) {
	profiles := make([]Profile, 0, len(raw))
	for _, name := range ordered(raw, order.Profiles) {
		p := Profile{Name: name}
		for _, f := range ordered(raw[name], order.Features[name]) {
			v, err := ParseValue(raw[name][f])
			if err != nil {
				if ce, ok := err.(*ConfigError); ok {
					ce.Profile, ce.Feature = name, f
				}
				return nil, err
			}
			p.Features = append(p.Features, Feature{Name: f, Value: v})
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
