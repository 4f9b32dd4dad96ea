// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import "fmt"

// ParseError reports a malformed document. Fatal to the current file only;
// a batch keeps processing the remaining files.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Parsing YAML: %s", e.Err)
	}
	return fmt.Sprintf("Parsing '%s': %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateKeyError reports a repeated mapping key, fatal unless
// allow_duplicate_keys is set.
type DuplicateKeyError struct {
	Path string
	Key  string
	Line int
}

func (e *DuplicateKeyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Duplicate key '%s' on line %d", e.Key, e.Line)
	}
	return fmt.Sprintf("Duplicate key '%s' in '%s' on line %d", e.Key, e.Path, e.Line)
}
