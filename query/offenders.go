// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/slo-cpp/ctbench/trace"
)

// DefaultOffenders is the number of events Offenders reports per
// category by default.
const DefaultOffenders = 10

// offenderExpr selects the events named name whose detail does not
// start with the std namespace, slowest first.
func offenderExpr(name string) string {
	return fmt.Sprintf("reverse(sort_by(traceEvents[?name=='%s' && !starts_with(to_string(args.detail), 'std')], &dur))", name)
}

var (
	classExpr    = jmespath.MustCompile(offenderExpr("ParseClass"))
	functionExpr = jmespath.MustCompile(offenderExpr("InstantiateFunction"))
)

// Offenders are the most expensive class parses and function
// instantiations of one trace, excluding the standard library.
type Offenders struct {
	Classes   []trace.Event `json:"classes"`
	Functions []trace.Event `json:"functions"`
}

// FindOffenders returns the n slowest ParseClass and InstantiateFunction
// events of doc in order of descending duration. This is a diagnostic
// view and is independent of any query Set.
func FindOffenders(doc *trace.Document, n int) (*Offenders, error) {
	classes, err := topEvents(doc, classExpr, n)
	if err != nil {
		return nil, fmt.Errorf("class offenders: %w", err)
	}
	funcs, err := topEvents(doc, functionExpr, n)
	if err != nil {
		return nil, fmt.Errorf("function offenders: %w", err)
	}
	return &Offenders{Classes: classes, Functions: funcs}, nil
}

func topEvents(doc *trace.Document, jp *jmespath.JMESPath, n int) ([]trace.Event, error) {
	tree, err := doc.Tree()
	if err != nil {
		return nil, err
	}
	out, err := jp.Search(tree)
	if err != nil {
		return nil, err
	}
	list, _ := out.([]any)
	if n >= 0 && len(list) > n {
		list = list[:n]
	}

	// Round-trip through JSON to get typed events.
	data, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	events := []trace.Event{}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}
