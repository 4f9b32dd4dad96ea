// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/yamltidy/yamltidy/pkg/cmd"
)

func main() {
	opts := cmd.NewDefaultYamltidyOptions()
	command := cmd.NewYamltidyCmd(opts)

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "yamltidy: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(cmd.ExitFailure)
	}

	os.Exit(opts.ExitCode())
}
