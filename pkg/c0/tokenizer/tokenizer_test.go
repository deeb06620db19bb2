/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/nalgeon/be"

	"github.com/dburkart/c0/pkg/common/parse"
)

func types(tokens []Token) []TokenType {
	var result []TokenType
	for _, tok := range tokens {
		result = append(result, tok.Type)
	}
	return result
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t  ", "// only a comment"} {
		tokens, err := Tokenize(input)
		be.Err(t, err, nil)
		be.Equal(t, types(tokens), []TokenType{TOK_EOF})
	}
}

func TestEOFRepeats(t *testing.T) {
	tok := New("x")

	first, err := tok.NextToken()
	be.Err(t, err, nil)
	be.Equal(t, first.Type, TOK_IDENT)

	for i := 0; i < 3; i++ {
		next, err := tok.NextToken()
		be.Err(t, err, nil)
		be.Equal(t, next.Type, TOK_EOF)
		be.Equal(t, next.Location.Start, next.Location.End)
	}
}

func TestUIntLiteral(t *testing.T) {
	tokens, err := Tokenize("0 42 4294967296 18446744073709551615")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 5)

	be.Equal(t, tokens[0].Value, any(uint64(0)))
	be.Equal(t, tokens[1].Value, any(uint64(42)))
	// Literals are 64 bits wide, not 32
	be.Equal(t, tokens[2].Value, any(uint64(4294967296)))
	be.Equal(t, tokens[3].Value, any(uint64(18446744073709551615)))
}

func TestUIntOverflow(t *testing.T) {
	_, err := Tokenize("x = 18446744073709551616")
	be.Err(t, err, parse.InvalidInput)

	var tokErr *Error
	be.True(t, errors.As(err, &tokErr))
	be.Equal(t, tokErr.Position, parse.Position{Offset: 4, Line: 1, Column: 5})
}

func TestDoubleLiteral(t *testing.T) {
	cases := map[string]float64{
		"1.5":     1.5,
		"1.0e3":   1000,
		"2.5E-2":  0.025,
		"3e2":     300,
		"7E+1":    70,
		"0.125":   0.125,
		"10.0e+0": 10,
	}

	for input, want := range cases {
		tokens, err := Tokenize(input)
		be.Err(t, err, nil)
		be.Equal(t, tokens[0].Type, TOK_DOUBLE_LITERAL)
		be.Equal(t, tokens[0].Value, any(want))
		be.Equal(t, tokens[0].Lexeme, input)
	}
}

func TestMalformedNumbers(t *testing.T) {
	cases := map[string]parse.Position{
		"1.":    {Offset: 2, Line: 1, Column: 3},
		"1.x":   {Offset: 2, Line: 1, Column: 3},
		"1e":    {Offset: 2, Line: 1, Column: 3},
		"1e+":   {Offset: 3, Line: 1, Column: 4},
		"12E-a": {Offset: 4, Line: 1, Column: 5},
	}

	for input, want := range cases {
		_, err := Tokenize(input)
		be.Err(t, err, parse.InvalidInput)

		var tokErr *Error
		be.True(t, errors.As(err, &tokErr))
		be.Equal(t, tokErr.Pos(), want)
	}
}

func TestKeywordsIgnoreCase(t *testing.T) {
	tokens, err := Tokenize("fn FN Let CONST as While iF ELSE return Break continue")
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []TokenType{
		TOK_FN, TOK_FN, TOK_LET, TOK_CONST, TOK_AS, TOK_WHILE, TOK_IF,
		TOK_ELSE, TOK_RETURN, TOK_BREAK, TOK_CONTINUE, TOK_EOF,
	})

	be.Equal(t, tokens[1].Value, any("FN"))
	be.True(t, tokens[1].Type.IsKeyword())
}

func TestIdentifiers(t *testing.T) {
	tokens, err := Tokenize("_a fnord letter x1 _")
	be.Err(t, err, nil)

	for _, tok := range tokens[:5] {
		be.Equal(t, tok.Type, TOK_IDENT)
		be.Equal(t, tok.Value, any(tok.Lexeme))
	}
	be.True(t, !tokens[0].Type.IsKeyword())
}

func TestOperators(t *testing.T) {
	tokens, err := Tokenize("+ - * / = == != < > <= >= ( ) { } -> , : ;")
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []TokenType{
		TOK_PLUS, TOK_MINUS, TOK_STAR, TOK_SLASH, TOK_ASSIGN, TOK_EQ_EQ,
		TOK_NOT_EQ, TOK_LESS, TOK_GREATER, TOK_LESS_EQ, TOK_GREATER_EQ,
		TOK_PAREN_L, TOK_PAREN_R, TOK_BRACE_L, TOK_BRACE_R, TOK_ARROW,
		TOK_COMMA, TOK_COLON, TOK_SEMICOLON, TOK_EOF,
	})

	for _, tok := range tokens {
		be.Equal(t, tok.Value, nil)
	}
}

func TestMaximalMunch(t *testing.T) {
	tokens, err := Tokenize("a->b<=c==d=e")
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []TokenType{
		TOK_IDENT, TOK_ARROW, TOK_IDENT, TOK_LESS_EQ, TOK_IDENT,
		TOK_EQ_EQ, TOK_IDENT, TOK_ASSIGN, TOK_IDENT, TOK_EOF,
	})
}

func TestBangAlone(t *testing.T) {
	_, err := Tokenize("a ! b")
	be.Err(t, err, parse.InvalidInput)

	var tokErr *Error
	be.True(t, errors.As(err, &tokErr))
	be.Equal(t, tokErr.Position.Column, 3)
}

func TestUnknownCharacter(t *testing.T) {
	tokens, err := Tokenize("let x = 1;\nlet @")
	be.Err(t, err, parse.InvalidInput)

	var tokErr *Error
	be.True(t, errors.As(err, &tokErr))
	be.Equal(t, tokErr.Position, parse.Position{Offset: 15, Line: 2, Column: 5})

	// Tokens before the failure are still returned
	be.Equal(t, len(tokens), 6)
}

func TestCharLiteral(t *testing.T) {
	tokens, err := Tokenize(`'a' '\n' '\'' '\\' '"'`)
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Value, any("a"))
	be.Equal(t, tokens[1].Value, any(`\n`))
	be.Equal(t, tokens[2].Value, any(`\'`))
	be.Equal(t, tokens[3].Value, any(`\\`))
	be.Equal(t, tokens[4].Value, any(`"`))

	for _, tok := range tokens[:5] {
		be.Equal(t, tok.Type, TOK_CHAR_LITERAL)
	}
}

func TestMalformedCharLiteral(t *testing.T) {
	cases := map[string]int{
		`'ab'`: 3,
		`''`:   2,
		`'\q'`: 2,
		`'a`:   3,
		`'`:    2,
	}

	for input, column := range cases {
		_, err := Tokenize(input)
		be.Err(t, err, parse.InvalidInput)

		var tokErr *Error
		be.True(t, errors.As(err, &tokErr))
		be.Equal(t, tokErr.Position.Column, column)
	}
}

func TestStringLiteral(t *testing.T) {
	tokens, err := Tokenize(`"hello, \"world\"\n"`)
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, TOK_STRING_LITERAL)
	be.Equal(t, tokens[0].Value, any(`hello, \"world\"\n`))
	be.Equal(t, Unescape(tokens[0].Value.(string)), "hello, \"world\"\n")
}

func TestMalformedStringLiteral(t *testing.T) {
	_, err := Tokenize(`"abc`)
	be.Err(t, err, parse.InvalidInput)
	be.Equal(t, err.(*Error).Position.Column, 5)

	_, err = Tokenize(`"ab\xc"`)
	be.Err(t, err, parse.InvalidInput)
	be.Equal(t, err.(*Error).Position.Column, 4)
}

func TestComments(t *testing.T) {
	tokens, err := Tokenize("a // b c d\nb // trailing")
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []TokenType{TOK_IDENT, TOK_IDENT, TOK_EOF})
	be.Equal(t, tokens[1].Lexeme, "b")
	be.Equal(t, tokens[1].Location.Start.Line, 2)
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("let\r\n  x\rä y")
	be.Err(t, err, nil)

	be.Equal(t, tokens[0].Location.Start, parse.Position{Offset: 0, Line: 1, Column: 1})
	be.Equal(t, tokens[0].Location.End, parse.Position{Offset: 3, Line: 1, Column: 4})
	be.Equal(t, tokens[1].Location.Start, parse.Position{Offset: 7, Line: 2, Column: 3})
	be.Equal(t, tokens[2].Location.Start, parse.Position{Offset: 9, Line: 3, Column: 1})
	be.Equal(t, tokens[2].Location.End, parse.Position{Offset: 11, Line: 3, Column: 2})
	be.Equal(t, tokens[3].Location.Start, parse.Position{Offset: 12, Line: 3, Column: 3})
}

func TestSpansCoverLexemes(t *testing.T) {
	input := "fn add(a: int, b: int) -> int {\n\treturn a + b * 2.5e1; // done\n}\nputstr(\"x\\ty\");"
	tokens, err := Tokenize(input)
	be.Err(t, err, nil)

	for _, tok := range tokens {
		be.Equal(t, input[tok.Location.Start.Offset:tok.Location.End.Offset], tok.Lexeme)
	}
}

func TestUnescape(t *testing.T) {
	be.Equal(t, Unescape(`plain`), "plain")
	be.Equal(t, Unescape(`a\tb\r\n`), "a\tb\r\n")
	be.Equal(t, Unescape(`\\\'\"`), `\'"`)
	be.Equal(t, Unescape(`ü\n`), "ü\n")
}

func TestTokenize(t *testing.T) {
	testDirectory, err := filepath.Abs("../../../test/tokens")
	if err != nil {
		panic(err)
	}

	inputDirectory := path.Join(testDirectory, "input")
	expectationDirectory := path.Join(testDirectory, "expectations")

	tests, err := filepath.Glob(fmt.Sprintf("%s/*.c0", inputDirectory))
	be.Err(t, err, nil)
	be.True(t, len(tests) > 0)

	for _, test := range tests {
		t.Run(filepath.Base(test), func(t *testing.T) {
			var expected string
			expectation := path.Join(expectationDirectory, strings.TrimSuffix(filepath.Base(test), ".c0")+".txt")
			expectedBytes, err := os.ReadFile(expectation)
			if err == nil {
				expected = string(expectedBytes)
			}

			input, err := os.ReadFile(test)
			if err != nil {
				t.Fatalf("Error opening test: %s", test)
			}

			var actual strings.Builder
			tokens, err := Tokenize(string(input))
			for _, tok := range tokens {
				fmt.Fprintln(&actual, tok.String())
			}
			if err != nil {
				fmt.Fprintf(&actual, "error: %s\n", err)
			}

			if os.Getenv("SHOULD_REBASE") != "" {
				err := os.WriteFile(expectation, []byte(actual.String()), 0666)
				if err != nil {
					t.Error(err)
				}
				expected = actual.String()
			}

			if a, e := strings.TrimSpace(actual.String()), strings.TrimSpace(expected); a != e {
				t.Errorf("Expectation not met:\n%s", diff.LineDiff(e, a))
			}
		})
	}
}
