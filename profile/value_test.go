// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		raw  any
		kind Kind
		str  string
	}{
		{true, Bool, "true"},
		{"abc", Scalar, "abc"},
		{int64(42), Scalar, "42"},
		{1.5, Scalar, "1.5"},
		{[]any{int64(1), "two", false}, List, "[1, two, false]"},
		{map[string]any{"min": int64(1), "max": int64(3)}, Range, "{min = 1, max = 3}"},
		{map[string]any{"min": 2.0, "max": "4"}, Range, "{min = 2, max = 4}"},
	} {
		v, err := ParseValue(tc.raw)
		require.NoError(t, err, "%v", tc.raw)
		assert.Equal(t, tc.kind, v.Kind(), "%v", tc.raw)
		assert.Equal(t, tc.str, v.String(), "%v", tc.raw)
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, tc := range []struct {
		raw  any
		want string
	}{
		{map[string]any{"min": int64(1)}, "missing [max]"},
		{map[string]any{"max": int64(1)}, "missing [min]"},
		{map[string]any{}, "missing [min max]"},
		{map[string]any{"min": int64(3), "max": int64(1)}, "greater than max"},
		{map[string]any{"min": 1.5, "max": int64(3)}, "not an integer"},
		{map[string]any{"min": int64(1), "max": int64(3), "step": int64(2)}, "unknown key"},
		{[]any{}, "empty value list"},
		{[]any{[]any{int64(1)}}, "list element"},
		{nil, "unsupported value"},
	} {
		_, err := ParseValue(tc.raw)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce), "%v: got %v", tc.raw, err)
		assert.Contains(t, err.Error(), tc.want)
	}
}

func TestRangeValues(t *testing.T) {
	v, err := ParseValue(map[string]any{"min": int64(-1), "max": int64(1)})
	require.NoError(t, err)
	assert.Equal(t, []Value{IntValue(-1), IntValue(0), IntValue(1)}, v.Values())
	assert.True(t, v.Variable())
	assert.False(t, IntValue(3).Variable())
}

func TestParseProfiles(t *testing.T) {
	raw := map[string]map[string]any{
		"zeta": {"B": true, "A": int64(2)},
		"alpha": {
			"N":    map[string]any{"min": int64(1), "max": int64(2)},
			"MODE": []any{"x", "y"},
		},
	}
	ps, err := ParseProfiles(raw, Order{})
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "alpha", ps[0].Name)
	assert.Equal(t, "MODE", ps[0].Features[0].Name)
	assert.Equal(t, "N", ps[0].Features[1].Name)
	assert.Equal(t, "zeta", ps[1].Name)
	assert.Equal(t, "A", ps[1].Features[0].Name)

	cs, err := Expand(ps, DefaultTokens)
	require.NoError(t, err)
	assert.Len(t, cs, 5)
	assert.Equal(t, "alpha_MODEx_N1", cs[0].Name)
	assert.Equal(t, Concrete{Name: "zeta", Defines: []Define{{"A", "2"}, {"B", "1"}}}, cs[4])
}

func TestParseProfilesOrder(t *testing.T) {
	raw := map[string]map[string]any{
		"zeta": {
			"N":   map[string]any{"min": int64(1), "max": int64(2)},
			"ALT": []any{"x", "y"},
		},
		"alpha": {"K": int64(1)},
		"beta":  {"Z": int64(1), "Y": int64(2)},
	}
	ps, err := ParseProfiles(raw, Order{
		Profiles: []string{"zeta", "alpha", "gone"},
		Features: map[string][]string{"zeta": {"N", "ALT"}},
	})
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "zeta", ps[0].Name)
	assert.Equal(t, "N", ps[0].Features[0].Name)
	assert.Equal(t, "ALT", ps[0].Features[1].Name)
	assert.Equal(t, "alpha", ps[1].Name)
	// Unlisted names follow, sorted.
	assert.Equal(t, "beta", ps[2].Name)
	assert.Equal(t, "Y", ps[2].Features[0].Name)

	cs, err := Expand(ps, DefaultTokens)
	require.NoError(t, err)
	var names []string
	for _, c := range cs {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zeta_N1_ALTx", "zeta_N1_ALTy", "zeta_N2_ALTx", "zeta_N2_ALTy", "alpha", "beta"}, names)
}

func TestParseProfilesReportsLocation(t *testing.T) {
	_, err := ParseProfiles(map[string]map[string]any{
		"baseline": {"N": map[string]any{"min": int64(1)}},
	}, Order{})
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "baseline", ce.Profile)
	assert.Equal(t, "N", ce.Feature)
	assert.Equal(t, `profile "baseline" feature "N": invalid range: missing [max]`, err.Error())
}
