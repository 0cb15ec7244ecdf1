// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ctbench measures compiler front-end time across build configurations.
//
// Usage:
//
//	ctbench run [flags] [dir|profiles.toml ...]
//	ctbench expand [dir|profiles.toml ...]
//	ctbench offenders [-n count] trace.json ...
//	ctbench version
//
// Run discovers every profiles.toml below the given directories (the
// current directory by default). Each such record names a C++ source
// file, a set of feature profiles and a set of queries:
//
//	source = "variant.cpp"
//	options = ["-O0"]
//
//	[profile.baseline]
//	ALTERNATIVES = {min = 1, max = 4}
//	USE_CONCEPTS = [true, false]
//
//	[query]
//	frontend = "traceEvents[?name=='Total Frontend'].dur"
//
// Profiles with list or range features expand to one concrete profile
// per combination, named after the varying features, for example
// baseline_ALTERNATIVES1_USE_CONCEPTS1. Every concrete profile is
// compiled with -ftime-trace the configured number of times and each
// query, a JMESPath expression, is evaluated against every trace.
//
// For each record, run writes to <output>/<record directory>/:
//
//	<query>.json     line chart description, one line per profile
//	summary.json     minimum of every query under every profile
//	offenders.json   slowest non-std class parses and instantiations (--offenders)
//	summary.txt      text table (--format text)
//	offenders.txt    offender tables (--format text with --offenders)
//	summary.html     HTML table (--format html)
//	results.bench    Go benchmark format, for benchstat (--format bench)
//
// Settings shared by every record are read from ctbench.yaml in the
// current directory, or from the file named by --config. Flags override
// the file.
//
// Records run concurrently, one per CPU listed with --cpus, and every
// compiler invocation of a record is pinned to its CPU with taskset.
// Invocations of one record never overlap.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
