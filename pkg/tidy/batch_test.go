// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamltidy/yamltidy/pkg/cmd/ui"
	"github.com/yamltidy/yamltidy/pkg/files"
	"github.com/yamltidy/yamltidy/pkg/tidy"
	"github.com/yamltidy/yamltidy/pkg/tidyconfig"
)

func TestFixSources_PartialFailure(t *testing.T) {
	changed := files.NewBytesSource("a.yaml", []byte("a: [1,2]\n"))
	broken := files.NewBytesSource("b.yaml", []byte("b: [1,\n"))
	untouched := files.NewBytesSource("c.yaml", []byte("---\nc: 1\n"))

	fixer := tidy.NewFixer(tidyconfig.Default())

	agg := fixer.FixSources([]files.Source{changed, broken, untouched}, tidy.BatchOpts{}, discardUI())

	require.Equal(t, 3, agg.NumFiles())
	require.Equal(t, 1, agg.NumChanged())
	require.Equal(t, tidy.StatusFailed, agg.Status())

	require.Len(t, agg.Results, 2)
	require.Equal(t, "a.yaml", agg.Results[0].Path)
	require.True(t, agg.Results[0].Changed)
	require.Equal(t, "c.yaml", agg.Results[1].Path)
	require.False(t, agg.Results[1].Changed)

	require.Len(t, agg.Failures, 1)
	require.Equal(t, "b.yaml", agg.Failures[0].Path)
	require.Contains(t, agg.Failures[0].Err.Error(), "b.yaml")

	require.Equal(t, "---\na: [1, 2]\n", string(changed.Output()))
	require.Equal(t, "---\nc: 1\n", string(untouched.Output()))
}

func TestFixSources_CheckModeWritesNothing(t *testing.T) {
	src := files.NewBytesSource("a.yaml", []byte("a: [1,2]\n"))

	fixer := tidy.NewFixer(tidyconfig.Default())

	agg := fixer.FixSources([]files.Source{src}, tidy.BatchOpts{Check: true}, discardUI())

	require.Equal(t, tidy.StatusChanged, agg.Status())
	require.Equal(t, 1, agg.NumChanged())
	require.Equal(t, "a: [1,2]\n", string(src.Output()))
}

func TestFixSources_UnchangedBatch(t *testing.T) {
	srcs := []files.Source{
		files.NewBytesSource("a.yaml", []byte("---\na: 1\n")),
		files.NewBytesSource("b.yaml", []byte("---\nb: 2\n")),
	}

	fixer := tidy.NewFixer(tidyconfig.Default())

	agg := fixer.FixSources(srcs, tidy.BatchOpts{NumWorkers: 2}, discardUI())

	require.Equal(t, tidy.StatusUnchanged, agg.Status())
	require.Equal(t, 0, agg.NumChanged())
	require.Empty(t, agg.Failures)
}

// stdin is not an in-place source; the result is written out even when
// nothing changed.
func TestFixSources_StdinAlwaysWritten(t *testing.T) {
	var out bytes.Buffer
	src := files.NewCustomStdinSource([]byte("---\na: 1\n"), &out)

	fixer := tidy.NewFixer(tidyconfig.Default())

	agg := fixer.FixSources([]files.Source{src}, tidy.BatchOpts{}, discardUI())

	require.Equal(t, tidy.StatusUnchanged, agg.Status())
	require.Equal(t, "---\na: 1\n", out.String())
}

func TestFixSources_ManyFiles(t *testing.T) {
	var srcs []files.Source
	for i := 0; i < 50; i++ {
		srcs = append(srcs, files.NewBytesSource("f.yaml", []byte("x: [1,2]\n")))
	}

	fixer := tidy.NewFixer(tidyconfig.Default())

	agg := fixer.FixSources(srcs, tidy.BatchOpts{NumWorkers: 8}, discardUI())

	require.Equal(t, 50, agg.NumChanged())
	require.Empty(t, agg.Failures)

	for _, src := range srcs {
		require.Equal(t, "---\nx: [1, 2]\n", string(src.(*files.BytesSource).Output()))
	}
}

func TestAggregateStatus(t *testing.T) {
	require.Equal(t, tidy.StatusUnchanged, tidy.Aggregate{}.Status())

	agg := tidy.Aggregate{Results: []tidy.FixResult{{Path: "a", Changed: true}}}
	require.Equal(t, tidy.StatusChanged, agg.Status())

	agg.Failures = append(agg.Failures, tidy.Failure{Path: "b", Err: io.ErrUnexpectedEOF})
	require.Equal(t, tidy.StatusFailed, agg.Status())
}

func discardUI() ui.UI {
	return ui.NewCustomWriterTTY(false, io.Discard, io.Discard)
}
