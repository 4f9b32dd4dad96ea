// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files abstracts where YAML content is read from and written back to
(local files, stdin, in-memory buffers).
*/
package files
