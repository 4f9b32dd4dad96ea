// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"fmt"
	"regexp"
	"strings"
)

// Templating expressions ({{ var }}, {% stmt %}) would be parsed as flow
// collections by the YAML parser, corrupting them. Before parsing, each
// expression is swapped for a plain-scalar placeholder token that survives
// parse/emit unchanged; after all passes the original bytes are restored.
var jinjaExprRegexp = regexp.MustCompile(`\{\{.*?\}\}|\{%.*?%\}`)

// jinjaTokenPrefix is deliberately a bare alphanumeric word: the parser
// treats it as a plain scalar and no pass re-quotes or rewrites it.
const jinjaTokenPrefix = "ytjinjaexpr"

type jinjaExpr struct {
	token    string
	original string
	quote    byte // surrounding quote rune, 0 when unquoted
}

type jinjaEscaper struct {
	exprs []jinjaExpr
}

func newJinjaEscaper() *jinjaEscaper { return &jinjaEscaper{} }

func (e *jinjaEscaper) Escape(src string) string {
	matches := jinjaExprRegexp.FindAllStringIndex(src, -1)
	if matches == nil {
		return src
	}

	var out strings.Builder
	last := 0

	for _, match := range matches {
		start, end := match[0], match[1]

		quote := byte(0)
		if start > 0 && (src[start-1] == '\'' || src[start-1] == '"') {
			quote = src[start-1]
		}

		token := fmt.Sprintf("%s%dx", jinjaTokenPrefix, len(e.exprs))
		e.exprs = append(e.exprs, jinjaExpr{token: token, original: src[start:end], quote: quote})

		out.WriteString(src[last:start])
		out.WriteString(token)
		last = end
	}
	out.WriteString(src[last:])

	return out.String()
}

func (e *jinjaEscaper) Restore(src string) string {
	for _, expr := range e.exprs {
		src = strings.ReplaceAll(src, expr.token, expr.original)
	}
	return src
}

// containsJinjaPlaceholder tells quoting and truthy passes to leave a
// scalar alone so the restored expression keeps its original quoting.
func containsJinjaPlaceholder(val string) bool {
	return strings.Contains(val, jinjaTokenPrefix)
}
