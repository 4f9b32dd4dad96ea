// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the build version of yamltidy. May be overridden at
// link time via -ldflags.
var Version = "0.1.0"
