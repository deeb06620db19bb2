/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package casefile reads analyser test cases written in Markdown.
//
// Every case starts at a heading of the form "Test: <name>" and holds one
// "c0" fence with the program, followed by any number of assertion fences:
//
//	listing    the expected instruction listing of the whole program
//	error      the expected error code and position, e.g. "NotDeclared 2:1"
package casefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type FenceType string

const (
	FenceInput   FenceType = "c0"
	FenceListing FenceType = "listing"
	FenceError   FenceType = "error"
)

type Assertion struct {
	Type    FenceType
	Content string
	Line    int
}

type Case struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// Extract returns the cases found in a Markdown document, in order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []Case
	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}
		if current.Input == "" {
			return fmt.Errorf("case %q has no %s fence", current.Name, FenceInput)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("case %q has no assertions", current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, markdown)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := FenceType(n.Language(markdown))
			line := lineOf(n, markdown)

			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a case", line, language)
				}
				return ast.WalkContinue, nil
			}

			content := fenceContent(n, markdown)
			switch language {
			case FenceInput:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: case %q has more than one input", line, current.Name)
				}
				current.Input = content
			case FenceListing, FenceError:
				current.Assertions = append(current.Assertions, Assertion{
					Type:    language,
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence %q in case %q", line, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if err := finish(); err != nil {
		return nil, err
	}

	return cases, nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}

func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
