// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/slo-cpp/ctbench/config"
	"github.com/slo-cpp/ctbench/internal/logging"
	"github.com/slo-cpp/ctbench/trace"
)

// globals holds the state shared by all subcommands.
type globals struct {
	configPath string
	logLevel   string
	logJSON    bool

	settings config.Settings

	// runner runs the compiler. Nil runs real processes.
	runner trace.Runner
}

func newRootCmd(runner trace.Runner) *cobra.Command {
	g := &globals{runner: runner}
	cmd := &cobra.Command{
		Use:           "ctbench",
		Short:         "Benchmark compiler front-end time across build configurations",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", config.SettingsFile, "settings file")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "log one JSON object per line")

	cmd.AddCommand(newRunCmd(g))
	cmd.AddCommand(newExpandCmd(g))
	cmd.AddCommand(newOffendersCmd(g))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// load reads the settings file and configures logging. A missing
// settings file is only an error if it was named explicitly.
func (g *globals) load(cmd *cobra.Command) error {
	optional := !cmd.Flags().Changed("config")
	s, err := config.LoadSettings(g.configPath, optional)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		s.Log.Level = g.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		s.Log.JSON = g.logJSON
	}
	g.settings = s
	return logging.Setup(s.Log, cmd.ErrOrStderr())
}
