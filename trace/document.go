// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// An Event is one entry of the traceEvents array in the Chrome trace
// event format emitted by -ftime-trace. Times are in microseconds.
type Event struct {
	Name string  `json:"name"`
	Ph   string  `json:"ph,omitempty"`
	Ts   float64 `json:"ts"`
	Dur  float64 `json:"dur"`
	Pid  int     `json:"pid,omitempty"`
	Tid  int     `json:"tid,omitempty"`
	Args Args    `json:"args,omitempty"`
}

// Args is the argument bag of an Event.
type Args struct {
	// Detail names the entity the event is about, such as the
	// class being parsed or the function being instantiated.
	Detail string `json:"detail,omitempty"`
}

// A Document is one trace file. It is never mutated after loading.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string

	// Events are the decoded trace events, in file order.
	Events []Event

	data []byte
}

// A DocumentError reports a trace that is missing or is not a valid
// trace document.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bad trace: %v", e.Err)
	}
	return fmt.Sprintf("bad trace %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Load reads and parses the trace file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{path, err}
	}
	doc, err := Parse(data)
	if err != nil {
		err.(*DocumentError).Path = path
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse parses a trace document. The top level must be a JSON object
// with a traceEvents array.
func Parse(data []byte) (*Document, error) {
	var top struct {
		TraceEvents *[]Event `json:"traceEvents"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &DocumentError{Err: err}
	}
	if top.TraceEvents == nil {
		return nil, &DocumentError{Err: fmt.Errorf("no traceEvents")}
	}
	return &Document{Events: *top.TraceEvents, data: data}, nil
}

// Tree returns a freshly decoded generic tree of the document, made of
// map[string]any, []any, float64, string, bool and nil. Each call
// returns a new tree, so callers may modify it freely.
func (d *Document) Tree() (any, error) {
	var v any
	if err := json.Unmarshal(d.data, &v); err != nil {
		return nil, &DocumentError{d.Path, err}
	}
	return v, nil
}
