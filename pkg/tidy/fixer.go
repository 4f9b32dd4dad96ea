// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"strings"

	"github.com/yamltidy/yamltidy/pkg/tidyconfig"
)

// Fixer turns arbitrary YAML text into its canonical rendering under a
// resolved set of options. A Fixer holds no mutable state; FixSource is a
// pure function of (text, options) and is safe for concurrent use.
type Fixer struct {
	opts tidyconfig.Options
}

func NewFixer(opts tidyconfig.Options) *Fixer {
	return &Fixer{opts: opts}
}

// FixSource formats one source text. Vault-encrypted content is returned
// unmodified; a leading shebang line is carved out and reattached verbatim.
// Applying FixSource to its own output returns the output unchanged.
func (f *Fixer) FixSource(src string) (string, error) {
	if isVaultContent(src) {
		return src, nil
	}

	shebang, body := splitShebang(src)

	post := postProcessor{opts: f.opts}

	escaper := newJinjaEscaper()
	escaped := escaper.Escape(body)

	// Legacy boolean aliases are rewritten before parsing; once the parser
	// has resolved them their original spelling is gone.
	escaped = post.fixTruthyValues(escaped)

	docs, err := splitDocuments(escaped)
	if err != nil {
		return "", err
	}

	if len(docs) == 0 {
		return shebang + f.fixTextOnly(escaper, escaped), nil
	}

	norm := normalizer{opts: f.opts}
	rendered := make([]string, 0, len(docs))

	for _, doc := range docs {
		out, err := norm.Render(doc)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, post.Apply(out))
	}

	result := f.assemble(rendered)
	result = escaper.Restore(result)

	return shebang + result, nil
}

// assemble joins per-document renderings back into one stream, inserting
// or omitting the explicit "---" marker. Document count and order are
// preserved; documents past the first always need the marker to stay
// separate.
func (f *Fixer) assemble(docs []string) string {
	var out strings.Builder

	for i, doc := range docs {
		marker := f.opts.ExplicitStart || i > 0

		// Removal only when the content does not depend on the marker's
		// presence (directives, or a body that looks like a marker).
		if !marker && (doc == "" || strings.HasPrefix(doc, "%") || strings.HasPrefix(doc, "---")) {
			marker = true
		}

		if marker {
			out.WriteString("---\n")
		}
		out.WriteString(doc)
	}

	return ensureTrailingNewline(out.String())
}

// fixTextOnly handles content the parser yields no documents for, such as
// comment-only files. Structural passes do not apply; comment spacing,
// whitelines and the trailing newline still do.
func (f *Fixer) fixTextOnly(escaper *jinjaEscaper, src string) string {
	src = strings.TrimPrefix(src, "---\n")
	if strings.TrimSpace(src) == "" || strings.TrimSpace(src) == "---" {
		return ""
	}

	post := postProcessor{opts: f.opts}

	out := post.fixComments(src)
	out = post.fixWhitelines(out)
	out = ensureTrailingNewline(out)

	if f.opts.ExplicitStart {
		out = "---\n" + out
	}

	return escaper.Restore(out)
}
