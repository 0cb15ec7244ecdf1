// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slo-cpp/ctbench/trace"
)

func loadSmall(t *testing.T) *trace.Document {
	t.Helper()
	doc, err := trace.Load(filepath.Join("..", "trace", "testdata", "small.json"))
	require.NoError(t, err)
	return doc
}

// captureLog redirects the global logger into a buffer for the rest of
// the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = saved })
	return &buf
}

func TestEvaluate(t *testing.T) {
	logs := captureLog(t)
	set, err := Compile(map[string]string{
		"frontend": "traceEvents[?name=='Total Frontend'].dur",
		"parse":    "traceEvents[?name=='ParseClass'].dur",
		"missing":  "traceEvents[?name=='Backend'].dur",
		"scalar":   "beginningOfTime",
		"nothing":  "noSuchField",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"frontend", "missing", "nothing", "parse", "scalar"}, set.Names())

	res, err := set.Evaluate(loadSmall(t))
	require.NoError(t, err)

	assert.Equal(t, Results{
		"frontend": 5000,
		"parse":    300,
		"scalar":   1700000000000000,
	}, res)
	_, ok := res["missing"]
	assert.False(t, ok, "a miss must be absent, not zero")

	assert.Contains(t, logs.String(), `"query":"parse"`)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"matches":2`)
}

func TestEvaluateStrict(t *testing.T) {
	set, err := Compile(map[string]string{
		"parse": "traceEvents[?name=='ParseClass'].dur",
	}, WithPolicy(Strict))
	require.NoError(t, err)
	_, err = set.Evaluate(loadSmall(t))
	var ae *AmbiguityError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Matches)
}

func TestEvaluateIsRepeatable(t *testing.T) {
	set, err := Compile(map[string]string{
		"slowest": "sort_by(traceEvents[?dur], &dur)[-1].dur",
		"first":   "traceEvents[0].dur",
	})
	require.NoError(t, err)
	doc := loadSmall(t)
	for i := 0; i < 3; i++ {
		res, err := set.Evaluate(doc)
		require.NoError(t, err)
		assert.Equal(t, Results{"slowest": 5000, "first": 300}, res)
	}
}

func TestEvaluateNonNumeric(t *testing.T) {
	set, err := Compile(map[string]string{
		"detail": "traceEvents[?name=='InstantiateFunction'].args.detail",
	})
	require.NoError(t, err)
	_, err = set.Evaluate(loadSmall(t))
	var te *TypeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "detail", te.Query)
}

func TestNumericStrings(t *testing.T) {
	doc, err := trace.Parse([]byte(`{"traceEvents": [], "total": "12.5"}`))
	require.NoError(t, err)
	set, err := Compile(map[string]string{"total": "total"})
	require.NoError(t, err)
	res, err := set.Evaluate(doc)
	require.NoError(t, err)
	assert.Equal(t, 12.5, res["total"])
}

func TestNonFiniteStrings(t *testing.T) {
	for _, text := range []string{"inf", "-Inf", "NaN", "+infinity"} {
		doc, err := trace.Parse([]byte(`{"traceEvents": [], "total": "` + text + `"}`))
		require.NoError(t, err)
		set, err := Compile(map[string]string{"total": "total"})
		require.NoError(t, err)
		res, err := set.Evaluate(doc)
		var te *TypeError
		assert.True(t, errors.As(err, &te), "%s: got %v", text, err)
		assert.Nil(t, res, text)
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile(map[string]string{"bad": "traceEvents[?"})
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bad", se.Name)
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": First, "first": First, "STRICT": Strict} {
		got, err := ParsePolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePolicy("mean")
	assert.Error(t, err)
}

func TestFindOffenders(t *testing.T) {
	off, err := FindOffenders(loadSmall(t), DefaultOffenders)
	require.NoError(t, err)

	require.Len(t, off.Classes, 1)
	assert.Equal(t, "slo::Variant", off.Classes[0].Args.Detail)
	require.Len(t, off.Functions, 1)
	assert.Equal(t, "slo::visit<int>", off.Functions[0].Args.Detail)
	assert.Equal(t, 80.0, off.Functions[0].Dur)
}

func TestFindOffendersTopN(t *testing.T) {
	var b bytes.Buffer
	b.WriteString(`{"traceEvents": [`)
	for i := 1; i <= 15; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name": "ParseClass", "ph": "X", "dur": %d, "args": {"detail": "C%d"}}`, i*10, i)
	}
	b.WriteString(`]}`)
	doc, err := trace.Parse(b.Bytes())
	require.NoError(t, err)

	off, err := FindOffenders(doc, DefaultOffenders)
	require.NoError(t, err)
	require.Len(t, off.Classes, 10)
	for i := 1; i < len(off.Classes); i++ {
		assert.GreaterOrEqual(t, off.Classes[i-1].Dur, off.Classes[i].Dur)
	}
	assert.Equal(t, 150.0, off.Classes[0].Dur)
	assert.Equal(t, 60.0, off.Classes[9].Dur)
	assert.Empty(t, off.Functions)
}
