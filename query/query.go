// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query extracts numeric measurements from trace documents
// with named JMESPath expressions.
//
// A query must select exactly one value per document. A query whose
// result is a list selects each element of the list; null or an empty
// list selects nothing; any other result is a single match. For
// example, the frontend time of a clang trace is
//
//	traceEvents[?name=='Total Frontend'].dur
package query

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/rs/zerolog/log"

	"github.com/slo-cpp/ctbench/trace"
)

// A Policy decides what happens when a query matches more than one
// value.
type Policy int

const (
	// First keeps the first match and logs a warning.
	First Policy = iota
	// Strict fails the evaluation with an *AmbiguityError.
	Strict
)

// ParsePolicy parses "first" or "strict".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "first":
		return First, nil
	case "strict":
		return Strict, nil
	}
	return 0, fmt.Errorf("unknown ambiguity policy %q (want first or strict)", s)
}

func (p Policy) String() string {
	switch p {
	case First:
		return "first"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// A Query is a named, compiled expression.
type Query struct {
	Name string
	Expr string

	jp *jmespath.JMESPath
}

// A Set is a group of compiled queries. It is read-only after Compile
// and safe to reuse across any number of documents.
type Set struct {
	queries []*Query
	policy  Policy
}

// An Option configures a Set.
type Option func(*Set)

// WithPolicy sets the ambiguity policy. The default is First.
func WithPolicy(p Policy) Option {
	return func(s *Set) { s.policy = p }
}

// A SyntaxError reports a query expression that does not compile.
type SyntaxError struct {
	Name string
	Expr string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query %s: %v\n\t%s", e.Name, e.Err, e.Expr)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Compile compiles every expression in exprs, keyed by query name.
// Queries are evaluated in name order.
func Compile(exprs map[string]string, opts ...Option) (*Set, error) {
	s := &Set{}
	for _, o := range opts {
		o(s)
	}
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		jp, err := jmespath.Compile(exprs[name])
		if err != nil {
			return nil, &SyntaxError{name, exprs[name], err}
		}
		s.queries = append(s.queries, &Query{Name: name, Expr: exprs[name], jp: jp})
	}
	return s, nil
}

// Names returns the query names in evaluation order.
func (s *Set) Names() []string {
	names := make([]string, len(s.queries))
	for i, q := range s.queries {
		names[i] = q.Name
	}
	return names
}

// Policy returns the ambiguity policy of s.
func (s *Set) Policy() Policy {
	return s.policy
}

// Results maps query names to the value each query extracted. A query
// that matched nothing has no entry.
type Results map[string]float64

// An AmbiguityError reports a query that matched several values under
// the Strict policy.
type AmbiguityError struct {
	Query   string
	Matches int
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("query %s: %d matches, want exactly one", e.Query, e.Matches)
}

// A TypeError reports a match that is not a number.
type TypeError struct {
	Query string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("query %s: match %v (%T) is not a number", e.Query, e.Value, e.Value)
}

// Evaluate runs every query of s against doc.
func (s *Set) Evaluate(doc *trace.Document) (Results, error) {
	res := make(Results, len(s.queries))
	for _, q := range s.queries {
		// Each query gets its own tree: JMESPath functions such
		// as sort_by may reorder arrays in place.
		tree, err := doc.Tree()
		if err != nil {
			return nil, err
		}
		v, ok, err := s.eval(q, tree)
		if err != nil {
			if doc.Path != "" {
				return nil, fmt.Errorf("%s: %w", doc.Path, err)
			}
			return nil, err
		}
		if ok {
			res[q.Name] = v
		}
	}
	return res, nil
}

func (s *Set) eval(q *Query, tree any) (float64, bool, error) {
	out, err := q.jp.Search(tree)
	if err != nil {
		return 0, false, fmt.Errorf("query %s: %w", q.Name, err)
	}
	matches := flatten(out)
	switch {
	case len(matches) == 0:
		log.Debug().Str("query", q.Name).Msg("no match")
		return 0, false, nil
	case len(matches) > 1:
		if s.policy == Strict {
			return 0, false, &AmbiguityError{q.Name, len(matches)}
		}
		log.Warn().Str("query", q.Name).Int("matches", len(matches)).Msg("more than one result found, using the first")
	}
	v, ok := number(matches[0])
	if !ok {
		return 0, false, &TypeError{q.Name, matches[0]}
	}
	return v, true, nil
}

func flatten(out any) []any {
	switch out := out.(type) {
	case nil:
		return nil
	case []any:
		return out
	}
	return []any{out}
}

// number converts a match to a finite float64.
func number(v any) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
