// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"slices"

	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/slo-cpp/ctbench/profile"
)

// profileOrder returns the order in which the profiles of a record and
// their features first appear in the document. It understands table
// headers ([profile.p], [profile.p.F]), dotted keys and inline tables.
func profileOrder(data []byte) (profile.Order, error) {
	o := profile.Order{Features: make(map[string][]string)}
	seenProfile := make(map[string]bool)
	seenFeature := make(map[[2]string]bool)
	add := func(path []string) {
		if len(path) < 2 || path[0] != "profile" {
			return
		}
		name := path[1]
		if !seenProfile[name] {
			seenProfile[name] = true
			o.Profiles = append(o.Profiles, name)
		}
		if len(path) < 3 {
			return
		}
		if k := [2]string{name, path[2]}; !seenFeature[k] {
			seenFeature[k] = true
			o.Features[name] = append(o.Features[name], path[2])
		}
	}

	var p unstable.Parser
	p.Reset(data)
	var table []string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyPath(e.Key())
			add(table)
		case unstable.KeyValue:
			walkKeyValue(table, e, add)
		}
	}
	return o, p.Error()
}

func walkKeyValue(prefix []string, kv *unstable.Node, add func([]string)) {
	path := append(slices.Clone(prefix), keyPath(kv.Key())...)
	add(path)
	if v := kv.Value(); v.Kind == unstable.InlineTable {
		it := v.Children()
		for it.Next() {
			walkKeyValue(path, it.Node(), add)
		}
	}
}

func keyPath(it unstable.Iterator) []string {
	var path []string
	for it.Next() {
		path = append(path, string(it.Node().Data))
	}
	return path
}
