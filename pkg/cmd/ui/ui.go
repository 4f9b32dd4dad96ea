// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
}
