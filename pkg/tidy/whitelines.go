// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"regexp"
	"strings"
)

var (
	whitelinesCommentRegexp   = regexp.MustCompile(`\n\n+[\t ]*#`)
	whitelinesNoCommentRegexp = regexp.MustCompile(`\n\n+[\t ]*[^#\n\t ]`)

	// A section is a top-level key (optionally preceded by comment lines)
	// followed by at least one indented line.
	sectionPattern         = `\n*(?:^#.*\n)*\n*^[^ \n].*:\n(?:\n|(?:^  .*))+\n*`
	sectionBoundaryRegexp  = regexp.MustCompile(`(?m)((?:---\n|\A)` + sectionPattern + `)|(` + sectionPattern + `)`)
)

// fixWhitelines reconciles blank-line counts: generic whitelines between
// content, section boundaries, then comment whitelines. The comment rule
// runs last so it wins when a comment immediately precedes a section.
func (p postProcessor) fixWhitelines(src string) string {
	src = whitelinesNoCommentRegexp.ReplaceAllStringFunc(src, replaceWhitelines(p.opts.Whitelines))
	src = p.fixSectionWhitelines(src)
	src = whitelinesCommentRegexp.ReplaceAllStringFunc(src, replaceWhitelines(p.opts.CommentsWhitelines))
	return src
}

// replaceWhitelines normalizes the leading blank lines of a match to
// exactly n blank lines.
func replaceWhitelines(n int) func(string) string {
	return func(match string) string {
		return strings.Repeat("\n", n+1) + strings.TrimLeft(match, "\n")
	}
}

// fixSectionWhitelines enforces section_whitelines blank lines before and
// after each section. Sections at the start of a document (group 1, which
// also covers a leading "---") keep their position without added blanks;
// extra blanks at the very end are trimmed afterwards. A generic whitelines
// setting larger than section_whitelines wins at a boundary that already
// carried that many blanks.
func (p postProcessor) fixSectionWhitelines(src string) string {
	nWhite := p.opts.Whitelines
	nSection := p.opts.SectionWhitelines

	fixBefore := func(whole, beginning, section string) string {
		if section == "" {
			return whole
		}

		whitelines := nSection
		if nWhite > nSection && strings.HasPrefix(section, strings.Repeat("\n", nWhite+1)) {
			whitelines = nWhite
		}

		return strings.Repeat("\n", whitelines+1) + strings.TrimLeft(section, "\n")
	}

	fixAfter := func(whole, beginning, section string) string {
		if section == "" {
			section = beginning
		}

		whitelines := nSection
		if nWhite > nSection && strings.HasSuffix(section, strings.Repeat("\n", nWhite+2)) {
			whitelines = nWhite
		}

		return strings.TrimRight(section, "\n") + strings.Repeat("\n", whitelines+1)
	}

	src = replaceSections(src, fixBefore)
	src = replaceSections(src, fixAfter)

	for strings.HasSuffix(src, "\n\n") {
		src = src[:len(src)-1]
	}
	return src
}

func replaceSections(src string, repl func(whole, beginning, section string) string) string {
	matches := sectionBoundaryRegexp.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var out strings.Builder
	last := 0

	for _, idx := range matches {
		whole := src[idx[0]:idx[1]]
		beginning := submatch(src, idx, 1)
		section := submatch(src, idx, 2)

		out.WriteString(src[last:idx[0]])
		out.WriteString(repl(whole, beginning, section))
		last = idx[1]
	}
	out.WriteString(src[last:])

	return out.String()
}

func submatch(src string, idx []int, group int) string {
	start, end := idx[2*group], idx[2*group+1]
	if start < 0 {
		return ""
	}
	return src[start:end]
}
