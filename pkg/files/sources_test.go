// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamltidy/yamltidy/pkg/files"
)

func TestNewSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	srcs, err := files.NewSources([]string{path})
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	require.Equal(t, path, srcs[0].Path())
	require.True(t, srcs[0].InPlace())

	t.Run("directories are rejected", func(t *testing.T) {
		_, err := files.NewSources([]string{dir})
		require.Error(t, err)
		require.Contains(t, err.Error(), "to not be a directory")
	})

	t.Run("missing files are rejected", func(t *testing.T) {
		_, err := files.NewSources([]string{filepath.Join(dir, "missing.yaml")})
		require.Error(t, err)
	})
}

func TestHasYAMLExt(t *testing.T) {
	require.True(t, files.HasYAMLExt("config.yaml"))
	require.True(t, files.HasYAMLExt("config.yml"))
	require.True(t, files.HasYAMLExt("dir/CONFIG.YML"))
	require.False(t, files.HasYAMLExt("config.json"))
	require.False(t, files.HasYAMLExt("config"))
}

func TestLocalSource_WriteKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o640))

	src := files.NewLocalSource(path)

	data, err := src.Bytes()
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(data))

	require.NoError(t, src.Write([]byte("a: 2\n")))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a: 2\n", string(data))

	fileInfo, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), fileInfo.Mode().Perm())
}

func TestStdinSource(t *testing.T) {
	var out bytes.Buffer
	src := files.NewCustomStdinSource([]byte("a: 1\n"), &out)

	require.Equal(t, "stdin", src.Description())
	require.Equal(t, "-", src.Path())
	require.False(t, src.InPlace())

	data, err := src.Bytes()
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(data))

	require.NoError(t, src.Write([]byte("b: 2\n")))
	require.Equal(t, "b: 2\n", out.String())
}

func TestBytesSource(t *testing.T) {
	src := files.NewBytesSource("mem.yaml", []byte("a: 1\n"))

	require.Equal(t, "a: 1\n", string(src.Output()))

	require.NoError(t, src.Write([]byte("b: 2\n")))
	require.Equal(t, "b: 2\n", string(src.Output()))
}
