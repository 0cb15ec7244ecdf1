// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "small.json"))
	require.NoError(t, err)
	require.Len(t, doc.Events, 7)
	assert.Equal(t, Event{Name: "ParseClass", Ph: "X", Ts: 20, Dur: 120, Pid: 1, Tid: 1, Args: Args{Detail: "slo::Variant"}}, doc.Events[1])
	assert.Equal(t, filepath.Join("testdata", "small.json"), doc.Path)
}

func TestTreeIsFresh(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "small.json"))
	require.NoError(t, err)

	a, err := doc.Tree()
	require.NoError(t, err)
	a.(map[string]any)["traceEvents"] = nil

	b, err := doc.Tree()
	require.NoError(t, err)
	assert.Len(t, b.(map[string]any)["traceEvents"], 7)
}

func TestBadDocuments(t *testing.T) {
	for _, data := range []string{
		``,
		`{"traceEvents": [`,
		`{"events": []}`,
		`[1, 2, 3]`,
	} {
		_, err := Parse([]byte(data))
		var de *DocumentError
		assert.True(t, errors.As(err, &de), "%q: got %v", data, err)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var de *DocumentError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "missing.json")
}
