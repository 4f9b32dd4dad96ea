// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yamltidy/yamltidy/pkg/cmd/ui"
	"github.com/yamltidy/yamltidy/pkg/files"
)

// FixResult is the outcome for one successfully processed source.
type FixResult struct {
	Path    string
	Changed bool
}

// Failure pairs a source path with the error that stopped it.
type Failure struct {
	Path string
	Err  error
}

type Status int

const (
	StatusUnchanged Status = iota
	StatusChanged
	StatusFailed
)

// Aggregate sums per-file outcomes across a batch. Results and Failures
// keep the original input order regardless of processing order.
type Aggregate struct {
	Results  []FixResult
	Failures []Failure
}

func (a Aggregate) NumFiles() int { return len(a.Results) + len(a.Failures) }

func (a Aggregate) NumChanged() int {
	changed := 0
	for _, res := range a.Results {
		if res.Changed {
			changed++
		}
	}
	return changed
}

func (a Aggregate) Status() Status {
	switch {
	case len(a.Failures) > 0:
		return StatusFailed
	case a.NumChanged() > 0:
		return StatusChanged
	default:
		return StatusUnchanged
	}
}

// BatchOpts controls batch processing. Check skips all writes and only
// reports which sources would change.
type BatchOpts struct {
	Check      bool
	NumWorkers int
}

// FixSources formats a batch of sources concurrently. Each source is a
// pure function of its own text, so sources are processed in parallel;
// a failure aborts only that source's write and never halts the batch.
// Output is fully computed in memory before any write happens.
func (f *Fixer) FixSources(srcs []files.Source, opts BatchOpts, ui ui.UI) Aggregate {
	type outcome struct {
		changed bool
		err     error
	}

	outcomes := make([]outcome, len(srcs))

	workers := opts.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var group errgroup.Group
	group.SetLimit(workers)

	for i, src := range srcs {
		i, src := i, src

		group.Go(func() error {
			ui.Debugf("fixing %s\n", src.Description())

			data, err := src.Bytes()
			if err != nil {
				outcomes[i] = outcome{err: fmt.Errorf("Reading %s: %s", src.Description(), err)}
				return nil
			}

			fixed, err := f.FixSource(string(data))
			if err != nil {
				outcomes[i] = outcome{err: attachPath(err, src.Path())}
				return nil
			}

			changed := fixed != string(data)
			outcomes[i] = outcome{changed: changed}

			if opts.Check {
				return nil
			}

			// unchanged in-place sources are not rewritten, preserving
			// file metadata
			if changed || !src.InPlace() {
				err := src.Write([]byte(fixed))
				if err != nil {
					outcomes[i] = outcome{err: err}
				}
			}
			return nil
		})
	}

	// worker funcs record errors per source instead of failing the group
	_ = group.Wait()

	var agg Aggregate
	for i, src := range srcs {
		if outcomes[i].err != nil {
			agg.Failures = append(agg.Failures, Failure{Path: src.Path(), Err: outcomes[i].err})
			continue
		}
		agg.Results = append(agg.Results, FixResult{Path: src.Path(), Changed: outcomes[i].changed})
	}

	return agg
}

// FixFiles is the path-based convenience around FixSources.
func (f *Fixer) FixFiles(paths []string, opts BatchOpts, ui ui.UI) (Aggregate, error) {
	srcs, err := files.NewSources(paths)
	if err != nil {
		return Aggregate{}, err
	}
	return f.FixSources(srcs, opts, ui), nil
}

func attachPath(err error, path string) error {
	switch typedErr := err.(type) {
	case *ParseError:
		typedErr.Path = path
	case *DuplicateKeyError:
		typedErr.Path = path
	}
	return err
}
