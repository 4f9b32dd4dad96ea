// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var yamlExts = []string{".yaml", ".yml"}

// Source is one unit of YAML content. Bytes reads the current content;
// Write replaces it. Writing only happens when the formatter changed the
// content, so an unchanged Source keeps its on-disk metadata.
type Source interface {
	Description() string
	Path() string
	Bytes() ([]byte, error)
	Write(data []byte) error

	// InPlace reports whether Write replaces the original content.
	// Non-in-place sources (stdin) receive the result even when unchanged.
	InPlace() bool
}

var _ []Source = []Source{&LocalSource{}, &StdinSource{}, &BytesSource{}}

// NewSources builds Sources from CLI path arguments. "-" means stdin
// (result printed to stdout).
func NewSources(paths []string) ([]Source, error) {
	var srcs []Source

	for _, path := range paths {
		if path == "-" {
			srcs = append(srcs, NewStdinSource())
			continue
		}

		fileInfo, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("Checking file '%s': %s", path, err)
		}
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
		}

		srcs = append(srcs, NewLocalSource(path))
	}

	return srcs, nil
}

// HasYAMLExt reports whether path carries a known YAML extension.
func HasYAMLExt(path string) bool {
	ext := filepath.Ext(path)
	for _, yamlExt := range yamlExts {
		if strings.EqualFold(ext, yamlExt) {
			return true
		}
	}
	return false
}

type LocalSource struct {
	path string
}

func NewLocalSource(path string) *LocalSource { return &LocalSource{path} }

func (s *LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }
func (s *LocalSource) Path() string        { return s.path }

func (s *LocalSource) Bytes() ([]byte, error) { return os.ReadFile(s.path) }
func (s *LocalSource) InPlace() bool          { return true }

func (s *LocalSource) Write(data []byte) error {
	mode := os.FileMode(0600)
	if fileInfo, err := os.Stat(s.path); err == nil {
		mode = fileInfo.Mode()
	}

	err := os.WriteFile(s.path, data, mode)
	if err != nil {
		return fmt.Errorf("Writing file '%s': %s", s.path, err)
	}
	return nil
}

type StdinSource struct {
	bytes []byte
	err   error
	out   io.Writer
}

func NewStdinSource() *StdinSource {
	// only read stdin once
	bs, err := io.ReadAll(os.Stdin)
	return &StdinSource{bs, err, os.Stdout}
}

// NewCustomStdinSource is used by tests to substitute stdin and stdout.
func NewCustomStdinSource(in []byte, out io.Writer) *StdinSource {
	return &StdinSource{bytes: in, out: out}
}

func (s *StdinSource) Description() string { return "stdin" }
func (s *StdinSource) Path() string        { return "-" }

func (s *StdinSource) Bytes() ([]byte, error) { return s.bytes, s.err }
func (s *StdinSource) InPlace() bool          { return false }

func (s *StdinSource) Write(data []byte) error {
	_, err := s.out.Write(data)
	return err
}

// BytesSource holds content in memory; the library entry point for callers
// that do not want file IO.
type BytesSource struct {
	path    string
	data    []byte
	written []byte
}

func NewBytesSource(path string, data []byte) *BytesSource { return &BytesSource{path: path, data: data} }

func (s *BytesSource) Description() string    { return s.path }
func (s *BytesSource) Path() string           { return s.path }
func (s *BytesSource) Bytes() ([]byte, error) { return s.data, nil }
func (s *BytesSource) InPlace() bool          { return true }

func (s *BytesSource) Write(data []byte) error {
	s.written = append([]byte{}, data...)
	return nil
}

// Output returns written content, or the original when nothing was written.
func (s *BytesSource) Output() []byte {
	if s.written != nil {
		return s.written
	}
	return s.data
}
