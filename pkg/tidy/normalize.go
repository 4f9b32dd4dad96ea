// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"bytes"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/yamltidy/yamltidy/pkg/tidyconfig"
)

// normalizer drives the round-trip emitter for one document: duplicate-key
// policy, sequence representation, quoting and null representation are
// decided on the node tree before emitting.
type normalizer struct {
	opts tidyconfig.Options
}

func (n normalizer) Render(doc document) (string, error) {
	if comments, ok := commentOnlyDocument(doc.node); ok {
		return comments, nil
	}

	// empty leading documents keep only their marker
	if isEmptyDocument(doc.node) && n.opts.NoneRepresentation == "" {
		return "", nil
	}

	if !n.opts.AllowDuplicateKeys {
		err := checkDuplicateKeys(doc.node)
		if err != nil {
			return "", err
		}
	}

	n.applySequenceStyle(doc.node)
	n.applyQuoteStyles(doc.node)
	n.applyNoneRepresentation(doc.node)

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(n.opts.IndentMapping)

	err := enc.Encode(doc.node)
	if err != nil {
		return "", &ParseError{Err: err}
	}

	err = enc.Close()
	if err != nil {
		return "", &ParseError{Err: err}
	}

	return buf.String(), nil
}

// commentOnlyDocument detects a document that holds comments but no value
// (eg a file of nothing but comments). The emitter would spell the implicit
// null out, so the comments are rendered directly instead.
func commentOnlyDocument(node *yaml.Node) (string, bool) {
	if node.Kind != yaml.DocumentNode || len(node.Content) != 1 {
		return "", false
	}

	root := node.Content[0]
	if root.Kind != yaml.ScalarNode || root.Tag != "!!null" || root.Value != "" {
		return "", false
	}

	var lines []string
	for _, comment := range []string{
		node.HeadComment, root.HeadComment, root.LineComment,
		root.FootComment, node.FootComment,
	} {
		if comment != "" {
			lines = append(lines, comment)
		}
	}

	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n") + "\n", true
}

// checkDuplicateKeys scans every mapping level for repeated scalar keys.
// The node parser preserves duplicates silently, so the policy lives here.
func checkDuplicateKeys(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		seen := map[string]bool{}

		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			if seen[key.Value] {
				return &DuplicateKeyError{Key: key.Value, Line: key.Line}
			}
			seen[key.Value] = true
		}
	}

	for _, child := range node.Content {
		err := checkDuplicateKeys(child)
		if err != nil {
			return err
		}
	}

	return nil
}

// applySequenceStyle sets the default sequence representation: flow unless
// sequence_style is block_style; keep_style preserves each node's parsed
// representation. Sequences holding non-scalar items or comments are forced
// to block style regardless, since flow cannot represent them readably.
func (n normalizer) applySequenceStyle(node *yaml.Node) {
	if n.opts.SequenceStyle == tidyconfig.SequenceStyleKeep {
		return
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]

			if key.Kind != yaml.ScalarNode || value.Kind != yaml.SequenceNode || len(value.Content) == 0 {
				continue
			}

			flow := n.opts.SequenceStyle == tidyconfig.SequenceStyleFlow
			if seqContainsNonScalars(value) || seqContainsComments(value) {
				flow = false
			}

			if flow {
				value.Style = yaml.FlowStyle
			} else {
				value.Style = 0
			}
		}
	}

	for _, child := range node.Content {
		n.applySequenceStyle(child)
	}
}

func seqContainsNonScalars(seq *yaml.Node) bool {
	for _, item := range seq.Content {
		if item.Kind != yaml.ScalarNode {
			return true
		}
	}
	return false
}

func seqContainsComments(seq *yaml.Node) bool {
	nodes := append([]*yaml.Node{seq}, seq.Content...)
	for _, item := range nodes {
		if item.HeadComment+item.LineComment+item.FootComment != "" {
			return true
		}
	}
	return false
}

// applyQuoteStyles first re-plains quoted strings that do not need quoting
// (unless preserve_quotes is set), then wraps basic values (and, optionally,
// keys) in the configured quote character.
func (n normalizer) applyQuoteStyles(node *yaml.Node) {
	if !n.opts.PreserveQuotes {
		walkNodes(node, func(nd *yaml.Node) {
			if nd.Kind != yaml.ScalarNode || nd.Tag != "!!str" {
				return
			}
			if nd.Style != yaml.SingleQuotedStyle && nd.Style != yaml.DoubleQuotedStyle {
				return
			}
			if plainRepresentable(nd.Value) && !containsJinjaPlaceholder(nd.Value) {
				nd.Style = 0
			}
		})
	}

	quoteStyle := yaml.SingleQuotedStyle
	if n.opts.QuoteRepresentation == `"` {
		quoteStyle = yaml.DoubleQuotedStyle
	}

	switch {
	case n.opts.QuoteKeysAndBasicValues:
		walkNodes(node, func(nd *yaml.Node) {
			if quotableScalar(nd) {
				nd.Style = quoteStyle
			}
		})

	case n.opts.QuoteBasicValues:
		n.quoteBasicValues(node, quoteStyle)
	}
}

// quoteBasicValues quotes mapping values that are simple strings, and the
// items of sequences that hold only simple scalars without comments.
func (n normalizer) quoteBasicValues(node *yaml.Node, quoteStyle yaml.Style) {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			value := node.Content[i+1]

			if quotableScalar(value) {
				value.Style = quoteStyle
			}

			if value.Kind == yaml.SequenceNode &&
				!seqContainsNonScalars(value) && !seqContainsComments(value) {
				for _, item := range value.Content {
					if quotableScalar(item) {
						item.Style = quoteStyle
					}
				}
			}
		}
	}

	for _, child := range node.Content {
		n.quoteBasicValues(child, quoteStyle)
	}
}

// quotableScalar: simple one-line strings only; multi-line strings keep
// their literal/folded style and placeholders keep their original quoting.
func quotableScalar(nd *yaml.Node) bool {
	return nd.Kind == yaml.ScalarNode && nd.Tag == "!!str" &&
		(nd.Style == 0 || nd.Style == yaml.SingleQuotedStyle || nd.Style == yaml.DoubleQuotedStyle) &&
		!strings.Contains(nd.Value, "\n") &&
		!containsJinjaPlaceholder(nd.Value)
}

// applyNoneRepresentation rewrites null scalars to the configured
// representation. The empty representation cannot be set on the node (the
// emitter would quote an empty plain scalar); those nodes are pinned to
// "null" and stripped by the text pass afterwards.
func (n normalizer) applyNoneRepresentation(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		repr := n.opts.NoneRepresentation
		if repr == "" {
			repr = "null"
		}
		node.Value = repr
		node.Style = 0
	}

	for _, child := range node.Content {
		n.applyNoneRepresentation(child)
	}
}

func walkNodes(node *yaml.Node, fn func(*yaml.Node)) {
	fn(node)
	for _, child := range node.Content {
		walkNodes(child, fn)
	}
}

var (
	plainIndicators = `-?:,[]{}#&*!|>'"%@` + "`"

	intRegexp   = regexp.MustCompile(`^[-+]?(\d[\d_]*|0x[0-9a-fA-F_]+|0o[0-7_]+)$`)
	floatRegexp = regexp.MustCompile(`^[-+]?(\.\d+|\d[\d_]*\.?\d*([eE][-+]?\d+)?|\.(inf|Inf|INF)|\.(nan|NaN|NAN))$`)
	dateRegexp  = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}`)
)

var nonStringAliases = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
	"on": true, "off": true, "y": true, "n": true,
	"null": true, "~": true, "none": true,
}

// plainRepresentable reports whether val can be emitted unquoted and still
// parse back as the same string. Errs on the side of keeping quotes.
func plainRepresentable(val string) bool {
	if val == "" {
		return false
	}
	if strings.TrimSpace(val) != val {
		return false
	}
	if strings.ContainsAny(val, "\n\t") {
		return false
	}
	if strings.ContainsRune(plainIndicators, rune(val[0])) {
		return false
	}
	if strings.Contains(val, ": ") || strings.HasSuffix(val, ":") {
		return false
	}
	if strings.Contains(val, " #") {
		return false
	}
	if nonStringAliases[strings.ToLower(val)] {
		return false
	}
	if intRegexp.MatchString(val) || floatRegexp.MatchString(val) || dateRegexp.MatchString(val) {
		return false
	}
	return true
}
