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

func mustRange(t *testing.T, lo, hi int) Value {
	t.Helper()
	v, err := RangeValue(lo, hi)
	require.NoError(t, err)
	return v
}

func mustList(t *testing.T, elems ...Value) Value {
	t.Helper()
	v, err := ListValue(elems...)
	require.NoError(t, err)
	return v
}

func TestExpandIdentity(t *testing.T) {
	p := Profile{Name: "plain", Features: FeatureSet{
		{"MODE", ScalarValue("fast")},
		{"DEPTH", IntValue(4)},
	}}
	got, err := Expand([]Profile{p}, DefaultTokens)
	require.NoError(t, err)
	assert.Equal(t, []Concrete{{
		Name:    "plain",
		Defines: []Define{{"MODE", "fast"}, {"DEPTH", "4"}},
	}}, got)
}

func TestExpandEmptyProfile(t *testing.T) {
	got, err := Expand([]Profile{{Name: "nothing"}}, DefaultTokens)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "nothing", got[0].Name)
	assert.Empty(t, got[0].Defines)
}

func TestExpandCrossProduct(t *testing.T) {
	p := Profile{Name: "p", Features: FeatureSet{
		{"N", mustRange(t, 1, 3)},
		{"T", mustList(t, ScalarValue("a"), ScalarValue("b"))},
		{"X", ScalarValue("fixed")},
	}}
	got, err := Expand([]Profile{p}, DefaultTokens)
	require.NoError(t, err)
	require.Len(t, got, 6)

	var names []string
	combos := make(map[[2]string]bool)
	for _, c := range got {
		names = append(names, c.Name)
		require.Len(t, c.Defines, 3)
		assert.Equal(t, "N", c.Defines[0].Name)
		assert.Equal(t, "T", c.Defines[1].Name)
		assert.Equal(t, Define{"X", "fixed"}, c.Defines[2])
		assert.Contains(t, c.Name, "N"+c.Defines[0].Value)
		assert.Contains(t, c.Name, "T"+c.Defines[1].Value)
		combos[[2]string{c.Defines[0].Value, c.Defines[1].Value}] = true
	}
	assert.Equal(t, []string{
		"p_N1_Ta", "p_N1_Tb",
		"p_N2_Ta", "p_N2_Tb",
		"p_N3_Ta", "p_N3_Tb",
	}, names)

	// The produced sets reconstruct the full cross product.
	for _, n := range []string{"1", "2", "3"} {
		for _, s := range []string{"a", "b"} {
			assert.True(t, combos[[2]string{n, s}], "missing N=%s T=%s", n, s)
		}
	}
}

func TestExpandBooleans(t *testing.T) {
	tokens := Tokens{True: "yes", False: "no"}
	p := Profile{Name: "b", Features: FeatureSet{
		{"DEBUG", BoolValue(true)},
		{"FAST", mustList(t, BoolValue(false), BoolValue(true))},
		{"TRACE", BoolValue(false)},
	}}
	got, err := Expand([]Profile{p}, tokens)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, Concrete{
		Name:    "b_FASTno",
		Defines: []Define{{"DEBUG", "yes"}, {"FAST", "no"}, {"TRACE", "no"}},
	}, got[0])
	assert.Equal(t, Concrete{
		Name:    "b_FASTyes",
		Defines: []Define{{"DEBUG", "yes"}, {"FAST", "yes"}, {"TRACE", "no"}},
	}, got[1])

	fixed, err := Expand([]Profile{{Name: "f", Features: FeatureSet{{"ON", BoolValue(true)}}}}, DefaultTokens)
	require.NoError(t, err)
	assert.Equal(t, []Define{{"ON", "1"}}, fixed[0].Defines)
}

func TestExpandKeepsProfileOrder(t *testing.T) {
	got, err := Expand([]Profile{
		{Name: "z"},
		{Name: "a", Features: FeatureSet{{"K", mustRange(t, 0, 1)}}},
	}, DefaultTokens)
	require.NoError(t, err)
	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"z", "a_K0", "a_K1"}, names)
}

func TestExpandDuplicateNames(t *testing.T) {
	_, err := Expand([]Profile{
		{Name: "a_K0"},
		{Name: "a", Features: FeatureSet{{"K", mustRange(t, 0, 1)}}},
	}, DefaultTokens)
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Error(), `"a_K0"`)
}

func TestProduct(t *testing.T) {
	seqs := [][]Value{
		{IntValue(1), IntValue(2)},
		{ScalarValue("x")},
		{IntValue(7), IntValue(8), IntValue(9)},
	}
	got := product(seqs)
	require.Len(t, got, 6)
	assert.Equal(t, []Value{IntValue(1), ScalarValue("x"), IntValue(7)}, got[0])
	assert.Equal(t, []Value{IntValue(1), ScalarValue("x"), IntValue(8)}, got[1])
	assert.Equal(t, []Value{IntValue(2), ScalarValue("x"), IntValue(9)}, got[5])
}
