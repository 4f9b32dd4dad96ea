// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import "strings"

const vaultHeader = "$ANSIBLE_VAULT;"

// isVaultContent reports whether src is an encrypted vault payload, which
// must be passed through unmodified (a deliberate skip, not an error).
func isVaultContent(src string) bool {
	return strings.HasPrefix(src, vaultHeader)
}

// splitShebang carves a leading "#!" line out of src. The shebang is
// reattached verbatim at the very start of the final output.
func splitShebang(src string) (shebang, rest string) {
	if !strings.HasPrefix(src, "#!") {
		return "", src
	}

	eol := strings.Index(src, "\n")
	if eol < 0 {
		return src, ""
	}
	return src[:eol+1], src[eol+1:]
}
