// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/cppforlife/cobrautil"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yamltidy/yamltidy/pkg/cmd/ui"
	"github.com/yamltidy/yamltidy/pkg/files"
	"github.com/yamltidy/yamltidy/pkg/tidy"
	"github.com/yamltidy/yamltidy/pkg/tidyconfig"
	"github.com/yamltidy/yamltidy/pkg/version"
)

// Exit codes communicate three distinct states to callers.
const (
	ExitNoChanges = 0
	ExitChanges   = 1
	ExitFailure   = 2
)

type YamltidyOptions struct {
	ConfigFiles []string
	EnvPrefix   string
	EnvFile     string
	Check       bool
	NumWorkers  int
	Debug       bool

	changed bool
}

func NewDefaultYamltidyOptions() *YamltidyOptions {
	return &YamltidyOptions{}
}

func NewDefaultYamltidyCmd() *cobra.Command {
	return NewYamltidyCmd(NewDefaultYamltidyOptions())
}

func NewYamltidyCmd(o *YamltidyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yamltidy [flags] FILE...",
		Short: "yamltidy formats YAML files into a canonical style, keeping your comments",
		Long: `yamltidy formats YAML files into a canonical style, keeping your comments.

Files are rewritten in place, and only when their content changed. "-" reads
stdin and prints the result to stdout.

Exit status: 0 when nothing needed fixing, 1 when files were fixed (or, with
--check, would be fixed), 2 on parse/validation failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error { return o.Run(args) },
	}

	cmd.Version = version.Version

	cmd.Flags().StringArrayVarP(&o.ConfigFiles, "config-file", "c", nil, "TOML config file, later files override earlier ones (can be specified multiple times)")
	cmd.Flags().StringVar(&o.EnvPrefix, "env-prefix", tidyconfig.DefaultEnvPrefix, "Prefix of environment variables that override config files")
	cmd.Flags().StringVar(&o.EnvFile, "env-file", "", "Load environment variables from this file before resolving options")
	cmd.Flags().BoolVar(&o.Check, "check", false, "Report which files would change without writing them")
	cmd.Flags().IntVar(&o.NumWorkers, "workers", 0, "Number of files to process concurrently (0 means number of CPUs)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd)

	return cmd
}

func (o *YamltidyOptions) Run(args []string) error {
	outUI := ui.NewTTY(o.Debug)

	if o.EnvFile != "" {
		err := godotenv.Load(o.EnvFile)
		if err != nil {
			return fmt.Errorf("Loading env file '%s': %s", o.EnvFile, err)
		}
	}

	opts, err := tidyconfig.Load(o.ConfigFiles, o.EnvPrefix)
	if err != nil {
		return err
	}

	err = opts.CheckToolVersion(version.Version)
	if err != nil {
		return err
	}

	srcs, err := files.NewSources(args)
	if err != nil {
		return err
	}

	for _, src := range srcs {
		if src.InPlace() && !files.HasYAMLExt(src.Path()) {
			outUI.Warnf("yamltidy: Warning: %s does not look like a YAML file\n", src.Description())
		}
	}

	agg := tidy.NewFixer(opts).FixSources(srcs, tidy.BatchOpts{
		Check:      o.Check,
		NumWorkers: o.NumWorkers,
	}, outUI)

	o.changed = agg.NumChanged() > 0

	for _, res := range agg.Results {
		if res.Changed && o.Check {
			outUI.Printf("would fix %s\n", res.Path)
		} else if res.Changed {
			outUI.Debugf("fixed %s\n", res.Path)
		}
	}

	if len(agg.Failures) > 0 {
		var lines []string
		for _, failure := range agg.Failures {
			lines = append(lines, failure.Err.Error())
		}
		return fmt.Errorf("Fixing %d of %d file(s) failed:\n%s",
			len(agg.Failures), agg.NumFiles(), strings.Join(lines, "\n"))
	}

	return nil
}

// ExitCode reports the final process status after a successful Run.
func (o *YamltidyOptions) ExitCode() int {
	if o.changed {
		return ExitChanges
	}
	return ExitNoChanges
}
