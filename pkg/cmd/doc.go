// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to yamltidy's "commands" -- instances of cobra.Command
(not to be confused with ./cmd which contains the bootstrapping for the
yamltidy binary).

The root command formats the given files in place; "version" prints the
build version.
*/
package cmd
