// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package tidy reformats YAML documents into a canonical, opinionated style
while preserving comments, ordering and semantic content.

Front-and-center is tidy.Fixer. Its FixSource method is the pure
(text, Options) -> text pipeline: guard -> jinja escape -> document split ->
per-document structural normalize -> text post-processing -> reassembly ->
jinja restore. FixSources runs the pipeline over a batch of files.

The comment-preserving round-trip parse/emit itself is delegated to
gopkg.in/yaml.v3 (yaml.Node trees).
*/
package tidy
