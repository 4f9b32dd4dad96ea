// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamltidy/yamltidy/pkg/cmd"
)

func TestYamltidyCmd_FixesFileInPlace(t *testing.T) {
	path := writeFile(t, "in.yaml", "a: [1,2,3]\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{path})

	require.NoError(t, c.Execute())

	require.Equal(t, "---\na: [1, 2, 3]\n", readFile(t, path))
	require.Equal(t, cmd.ExitChanges, opts.ExitCode())
}

func TestYamltidyCmd_NoChanges(t *testing.T) {
	path := writeFile(t, "in.yaml", "---\na: [1, 2, 3]\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{path})

	require.NoError(t, c.Execute())

	require.Equal(t, "---\na: [1, 2, 3]\n", readFile(t, path))
	require.Equal(t, cmd.ExitNoChanges, opts.ExitCode())
}

func TestYamltidyCmd_CheckMode(t *testing.T) {
	path := writeFile(t, "in.yaml", "a: [1,2,3]\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{"--check", path})

	require.NoError(t, c.Execute())

	// file is untouched, exit status still reports the pending change
	require.Equal(t, "a: [1,2,3]\n", readFile(t, path))
	require.Equal(t, cmd.ExitChanges, opts.ExitCode())
}

func TestYamltidyCmd_FailureKeepsProcessingBatch(t *testing.T) {
	good := writeFile(t, "good.yaml", "a: [1,2]\n")
	bad := writeFile(t, "bad.yaml", "a: [1,\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{good, bad})

	err := c.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Fixing 1 of 2 file(s) failed")
	require.Contains(t, err.Error(), "bad.yaml")

	// the good file was still fixed
	require.Equal(t, "---\na: [1, 2]\n", readFile(t, good))
}

func TestYamltidyCmd_ConfigFileFlag(t *testing.T) {
	cfg := writeFile(t, "yamltidy.toml", "explicit_start = false\nsequence_style = \"block_style\"\n")
	path := writeFile(t, "in.yaml", "a: [1, 2]\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{"-c", cfg, path})

	require.NoError(t, c.Execute())

	require.Equal(t, "a:\n  - 1\n  - 2\n", readFile(t, path))
}

func TestYamltidyCmd_EnvOverride(t *testing.T) {
	t.Setenv("YAMLTIDY_EXPLICIT_START", "false")

	path := writeFile(t, "in.yaml", "a: [1,2]\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{path})

	require.NoError(t, c.Execute())

	require.Equal(t, "a: [1, 2]\n", readFile(t, path))
}

func TestYamltidyCmd_EnvFileFlag(t *testing.T) {
	envFile := writeFile(t, "fix.env", "YAMLTIDY_EXPLICIT_START=false\n")
	path := writeFile(t, "in.yaml", "a: [1,2]\n")

	t.Cleanup(func() { os.Unsetenv("YAMLTIDY_EXPLICIT_START") })

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{"--env-file", envFile, path})

	require.NoError(t, c.Execute())

	require.Equal(t, "a: [1, 2]\n", readFile(t, path))
}

func TestYamltidyCmd_RequiredVersion(t *testing.T) {
	cfg := writeFile(t, "yamltidy.toml", "required_version = \">= 99.0.0\"\n")
	path := writeFile(t, "in.yaml", "a: 1\n")

	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{"-c", cfg, path})

	err := c.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "required_version")

	// nothing was written
	require.Equal(t, "a: 1\n", readFile(t, path))
}

func TestYamltidyCmd_RequiresArgs(t *testing.T) {
	opts := cmd.NewDefaultYamltidyOptions()
	c := cmd.NewYamltidyCmd(opts)
	c.SetArgs([]string{})

	require.Error(t, c.Execute())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
