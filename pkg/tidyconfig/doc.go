// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package tidyconfig resolves the formatting options consumed by pkg/tidy.

Options are resolved once per invocation: defaults, then TOML config files
(later files override earlier ones), then environment variables (which
override everything). The resolved Options value is immutable from the
pipeline's point of view; pkg/tidy only ever reads it.
*/
package tidyconfig
