// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"regexp"
	"strings"

	"github.com/yamltidy/yamltidy/pkg/tidyconfig"
)

// postProcessor is the ordered chain of text passes applied to each
// document after the structural rewrite. Later passes assume earlier
// invariants, so the order is pinned (and covered by tests); reordering
// changes observable output.
type postProcessor struct {
	opts tidyconfig.Options
}

func (p postProcessor) Apply(src string) string {
	passes := []func(string) string{
		p.fixNoneValues,
		repairFlowSequences,
		p.reconcileSequenceStyle,
		p.fixComments,
		p.fixWhitelines,
		fixTopLevelSequences,
		ensureTrailingNewline,
	}

	for _, pass := range passes {
		src = pass(src)
	}
	return src
}

var (
	truthyTrueRegexp  = regexp.MustCompile(`(?i)^(.*(?::|-) )(?:true|yes|on)$`)
	truthyFalseRegexp = regexp.MustCompile(`(?i)^(.*(?::|-) )(?:false|no|off)$`)
)

// fixTruthyValues rewrites unquoted legacy boolean aliases (True, yes, on,
// no, ...) to canonical true/false. It runs on the raw text before parsing.
// Quoted values do not match (the closing quote breaks the end-of-line
// anchor) and placeholder lines are skipped.
func (p postProcessor) fixTruthyValues(src string) string {
	lines := strings.Split(src, "\n")

	for i, line := range lines {
		if containsJinjaPlaceholder(line) {
			continue
		}
		if match := truthyTrueRegexp.FindStringSubmatch(line); match != nil {
			lines[i] = match[1] + "true"
		} else if match := truthyFalseRegexp.FindStringSubmatch(line); match != nil {
			lines[i] = match[1] + "false"
		}
	}

	return strings.Join(lines, "\n")
}

var nullValueRegexp = regexp.MustCompile(`^(\s*- |.*\S: )(?:null|Null|NULL|~)$`)

// fixNoneValues replaces the emitted null marker with the configured
// representation. The structural pass already rewrote null nodes; this
// catches aliases the emitter spells out on its own.
func (p postProcessor) fixNoneValues(src string) string {
	repr := p.opts.NoneRepresentation
	lines := strings.Split(src, "\n")

	for i, line := range lines {
		match := nullValueRegexp.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if repr == "" {
			lines[i] = strings.TrimRight(match[1], " ")
		} else {
			lines[i] = match[1] + repr
		}
	}

	return strings.Join(lines, "\n")
}

// flowJoinRegexp recognizes a line whose value opens a flow collection.
// A plain scalar that merely contains a bracket ("key: ab[cd") must not
// trigger joining.
var flowJoinRegexp = regexp.MustCompile(`^\s*(?:- )?(?:.*?: )?[\[{]`)

// repairFlowSequences rejoins flow sequences that the emitter wrapped over
// several physical lines, and moves trailing blank lines after the closing
// bracket. The reconciler below needs each flow sequence on a single line
// to measure it.
func repairFlowSequences(src string) string {
	lines := strings.Split(src, "\n")
	var fixed []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		depth := flowDepth(line)

		if depth <= 0 || !flowJoinRegexp.MatchString(line) {
			fixed = append(fixed, line)
			continue
		}

		joined := line
		blanks := 0

		for i+1 < len(lines) && depth > 0 {
			i++
			next := strings.TrimLeft(lines[i], " ")

			if next == "" {
				blanks++
				continue
			}

			if !strings.HasSuffix(joined, "[") && !strings.HasSuffix(joined, "{") &&
				!strings.HasPrefix(next, "]") && !strings.HasPrefix(next, "}") {
				joined += " "
			}
			joined += next

			depth += flowDepth(next)
		}

		fixed = append(fixed, joined)
		for b := 0; b < blanks; b++ {
			fixed = append(fixed, "")
		}
	}

	return strings.Join(fixed, "\n")
}

// flowDepth counts unbalanced flow brackets outside quoted regions.
func flowDepth(line string) int {
	depth := 0
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case '#':
			if i > 0 && line[i-1] == ' ' {
				return depth
			}
		}
	}

	return depth
}

var flowSeqLineRegexp = regexp.MustCompile(`^(\s*)(\S.*?):\s+\[(.*)\]\s*$`)

// reconcileSequenceStyle demotes a flow sequence whose single physical line
// exceeds line_length to block style, applying indent_sequence and
// indent_offset. The decision is local to each sequence line.
func (p postProcessor) reconcileSequenceStyle(src string) string {
	if p.opts.SequenceStyle == tidyconfig.SequenceStyleKeep {
		return src
	}

	lines := strings.Split(src, "\n")
	var fixed []string

	for _, line := range lines {
		match := flowSeqLineRegexp.FindStringSubmatch(line)
		if match == nil || len(line) <= p.opts.LineLength {
			fixed = append(fixed, line)
			continue
		}

		indent, key, items := match[1], match[2], match[3]

		dashIndent := indent + strings.Repeat(" ", p.opts.IndentOffset)
		gap := p.opts.IndentSequence - p.opts.IndentOffset - 1
		if gap < 1 {
			gap = 1
		}

		fixed = append(fixed, indent+key+":")
		for _, item := range splitFlowItems(items) {
			fixed = append(fixed, dashIndent+"-"+strings.Repeat(" ", gap)+item)
		}
	}

	return strings.Join(fixed, "\n")
}

// splitFlowItems splits "a, b, c" on top-level commas, honoring quotes and
// nested flow collections.
func splitFlowItems(items string) []string {
	var result []string
	depth := 0
	var quote byte
	start := 0

	for i := 0; i < len(items); i++ {
		c := items[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(items[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(items[start:]); last != "" {
		result = append(result, last)
	}

	return result
}

var commentStartingSpaceRegexp = regexp.MustCompile(`(^|\s)#\w`)

// fixComments enforces the configured spacing before an inline "#" and the
// starting space after it. Runs after the sequence reconciler because
// re-indentation shifts comment columns.
func (p postProcessor) fixComments(src string) string {
	commentStart := strings.Repeat(" ", p.opts.CommentsMinSpacesFromContent) + "#"
	midCommentRegexp := regexp.MustCompile(`(.+\S)(\s+?)#`)

	lines := strings.Split(src, "\n")

	for i, line := range lines {
		// Comment at the start of the line
		if p.opts.CommentsRequireStartingSpace && commentStartingSpaceRegexp.MatchString(line) {
			line = strings.ReplaceAll(line, "#", "# ")
		}
		// Comment in the middle of the line, but not part of a string
		if p.opts.CommentsMinSpacesFromContent > 1 && strings.Contains(line, " #") &&
			!strings.HasSuffix(line, "'") && !strings.HasSuffix(line, `"`) {
			line = midCommentRegexp.ReplaceAllString(line, "${1}"+commentStart)
		}
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

var (
	topLevelHeadRegexp    = regexp.MustCompile(`^(---|#.*|)$`)
	topLevelItemRegexp    = regexp.MustCompile(`^(\s*)- +.*`)
	topLevelCommentRegexp = regexp.MustCompile(`^\s*#`)
)

// fixTopLevelSequences de-indents documents whose root is a sequence, which
// the emitter renders indented under the (absent) key.
func fixTopLevelSequences(src string) string {
	lines := strings.Split(src, "\n")
	var fixed []string

	started := false
	indent := ""

	for _, line := range lines {
		// Skip the heading and first empty lines
		if topLevelHeadRegexp.MatchString(line) {
			fixed = append(fixed, line)
			continue
		}

		if !started {
			match := topLevelItemRegexp.FindStringSubmatch(line)
			if match == nil || match[1] == "" {
				return src
			}
			started = true
			indent = match[1]
			fixed = append(fixed, strings.TrimPrefix(line, indent))
			continue
		}

		// comments keep their own indentation
		if topLevelCommentRegexp.MatchString(line) {
			fixed = append(fixed, line)
		} else {
			fixed = append(fixed, strings.TrimPrefix(line, indent))
		}
	}

	return strings.Join(fixed, "\n")
}

// ensureTrailingNewline leaves exactly one trailing newline for non-empty
// content and none for empty content.
func ensureTrailingNewline(src string) string {
	trimmed := strings.TrimRight(src, " \t\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
