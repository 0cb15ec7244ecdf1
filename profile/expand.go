// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"fmt"
	"strings"
)

// A Feature is one named entry of a FeatureSet.
type Feature struct {
	Name  string
	Value Value
}

// A FeatureSet is an ordered list of features. The order determines
// the iteration order of the cross product and the concrete profile
// names.
type FeatureSet []Feature

// A Profile is a named FeatureSet as written by the user.
type Profile struct {
	Name     string
	Features FeatureSet
}

// A Define is a single preprocessor define, passed to the compiler as
// -DName=Value.
type Define struct {
	Name, Value string
}

func (d Define) String() string {
	return d.Name + "=" + d.Value
}

// A Concrete is a fully expanded profile: every feature has exactly one
// textual value.
type Concrete struct {
	Name    string
	Defines []Define
}

// Tokens are the define texts used for boolean feature values.
type Tokens struct {
	True, False string
}

// DefaultTokens are the tokens used when none are configured.
var DefaultTokens = Tokens{True: "1", False: "0"}

// A ConfigError reports a malformed profile. It is always fatal and is
// raised before any compiler runs.
type ConfigError struct {
	Profile string // Profile name, if known
	Feature string // Feature name, if known
	Msg     string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("profile")
	if e.Profile != "" {
		fmt.Fprintf(&b, " %q", e.Profile)
	}
	if e.Feature != "" {
		fmt.Fprintf(&b, " feature %q", e.Feature)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// Expand expands every profile into its concrete profiles.
//
// A profile without list or range features is passed through under its
// own name. Otherwise Expand produces one concrete profile for every
// combination in the cross product of its variable features, the first
// variable feature varying slowest. Each concrete profile is named
// "{profile}_{feature}{value}_..." over the variable features. Boolean
// values are replaced by tokens, both in defines and in names.
func Expand(profiles []Profile, tokens Tokens) ([]Concrete, error) {
	var out []Concrete
	seen := make(map[string]string)
	for _, p := range profiles {
		cs, err := expandOne(p, tokens)
		if err != nil {
			return nil, err
		}
		for _, c := range cs {
			if prev, ok := seen[c.Name]; ok {
				return nil, &ConfigError{Profile: p.Name, Msg: fmt.Sprintf("concrete profile %q also produced by profile %q", c.Name, prev)}
			}
			seen[c.Name] = p.Name
		}
		out = append(out, cs...)
	}
	return out, nil
}

func expandOne(p Profile, tokens Tokens) ([]Concrete, error) {
	// Indexes of the variable features and their value sequences.
	var vars []int
	var seqs [][]Value
	for i, f := range p.Features {
		if f.Value.Variable() {
			seq := f.Value.Values()
			if len(seq) == 0 {
				return nil, &ConfigError{Profile: p.Name, Feature: f.Name, Msg: "no values to expand"}
			}
			vars = append(vars, i)
			seqs = append(seqs, seq)
		}
	}

	if len(vars) == 0 {
		c := Concrete{Name: p.Name, Defines: make([]Define, len(p.Features))}
		for i, f := range p.Features {
			c.Defines[i] = Define{f.Name, f.Value.Text(tokens)}
		}
		return []Concrete{c}, nil
	}

	var out []Concrete
	for _, combo := range product(seqs) {
		c := Concrete{Defines: make([]Define, len(p.Features))}
		for i, f := range p.Features {
			if !f.Value.Variable() {
				c.Defines[i] = Define{f.Name, f.Value.Text(tokens)}
			}
		}
		frags := make([]string, len(vars))
		for k, i := range vars {
			text := combo[k].Text(tokens)
			c.Defines[i] = Define{p.Features[i].Name, text}
			frags[k] = p.Features[i].Name + text
		}
		c.Name = p.Name + "_" + strings.Join(frags, "_")
		out = append(out, c)
	}
	return out, nil
}

// product returns the cartesian product of seqs in lexicographic
// order: the last sequence varies fastest.
func product(seqs [][]Value) [][]Value {
	n := 1
	for _, s := range seqs {
		n *= len(s)
	}
	out := make([][]Value, 0, n)
	idx := make([]int, len(seqs))
	for {
		combo := make([]Value, len(seqs))
		for k, s := range seqs {
			combo[k] = s[idx[k]]
		}
		out = append(out, combo)

		// Advance the odometer.
		k := len(seqs) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(seqs[k]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return out
		}
	}
}
