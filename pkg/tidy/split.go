// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidy

import (
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// document is one YAML unit inside a multi-document file. The node handle
// is owned by the parser and only lives for the duration of the pipeline.
type document struct {
	index int
	node  *yaml.Node
}

// splitDocuments divides a multi-document source into ordered units.
// Boundary detection is delegated to the parser's document stream; a naive
// "---" string split would misfire on markers inside block scalars or
// quoted values.
func splitDocuments(src string) ([]document, error) {
	var docs []document

	dec := yaml.NewDecoder(strings.NewReader(src))

	for {
		var node yaml.Node

		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		docs = append(docs, document{index: len(docs), node: &node})
	}

	// Drop empty trailing documents
	for len(docs) > 0 && isEmptyDocument(docs[len(docs)-1].node) {
		docs = docs[:len(docs)-1]
	}

	return docs, nil
}

func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) != 1 {
		return false
	}

	root := node.Content[0]
	return root.Kind == yaml.ScalarNode && root.Tag == "!!null" && root.Value == "" &&
		root.HeadComment == "" && root.LineComment == "" && root.FootComment == "" &&
		node.HeadComment == "" && node.FootComment == ""
}
