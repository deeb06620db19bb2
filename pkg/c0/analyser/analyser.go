/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package analyser

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/c0/symbols"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
)

// TokenSource is anything that can be pulled for tokens. *tokenizer.Tokenizer
// is the usual one.
type TokenSource interface {
	NextToken() (tokenizer.Token, error)
}

type loop struct {
	head   int
	breaks []int
}

// Analyser checks a c0 program and emits its instructions in a single pass.
// An Analyser analyses exactly one compilation unit.
type Analyser struct {
	Log       zerolog.Logger
	Functions *symbols.FunctionTable

	src    TokenSource
	peeked *tokenizer.Token

	symbols *symbols.Table
	program *instruction.Program

	// fn is the function being emitted into, sig its signature
	fn    *instruction.Function
	sig   symbols.Signature
	loops []*loop

	mainPos parse.Position
}

func New(src TokenSource) *Analyser {
	return &Analyser{
		Log:       zerolog.Nop(),
		Functions: symbols.StandardLibrary(),
		src:       src,
		symbols:   symbols.NewTable(),
	}
}

// Analyse consumes the whole token source and returns the program. The
// first error found ends the analysis and is returned unchanged.
func (a *Analyser) Analyse() (program *instruction.Program, err error) {
	defer func() {
		if e := recover(); e != nil {
			b, ok := e.(bailout)
			if !ok {
				panic(e)
			}
			program, err = nil, b.err
		}
	}()

	entry, lookupErr := a.Functions.Lookup(symbols.EntryName, parse.Position{})
	if lookupErr != nil {
		return nil, lookupErr
	}

	start := &instruction.Function{Name: entry.Name, ID: entry.ID, Return: symbols.Void}
	a.program = &instruction.Program{Functions: []*instruction.Function{start}}
	a.fn, a.sig = start, entry

	a.analyseProgram()
	a.finishEntry(start)

	for _, g := range a.symbols.Globals() {
		a.program.Globals = append(a.program.Globals, instruction.Global{
			Name:     g.Name,
			Slot:     g.Slot,
			Constant: g.Constant,
		})
	}

	a.Log.Debug().
		Int("functions", len(a.program.Functions)).
		Int("globals", len(a.program.Globals)).
		Int("instructions", a.program.Count()).
		Msg("analysis complete")

	return a.program, nil
}

// finishEntry closes the entry function with a call to main, if the
// program defines one.
func (a *Analyser) finishEntry(start *instruction.Function) {
	main, err := a.Functions.Lookup("main", a.mainPos)
	if err == nil && !main.Builtin {
		if len(main.Params) != 0 {
			a.fail(parse.ArgumentMismatch, a.mainPos, "main must not take parameters")
		}
		start.Emit(instruction.Call, instruction.Callee{ID: main.ID, Name: main.Name})
		if main.Return != symbols.Void {
			start.Emit(instruction.Pop, nil)
		}
	}
	start.Emit(instruction.Ret, nil)
	start.Locals = a.symbols.EntryLocals()
}

func (a *Analyser) peek() tokenizer.Token {
	if a.peeked == nil {
		tok, err := a.src.NextToken()
		if err != nil {
			panic(bailout{err})
		}
		a.peeked = &tok
	}
	return *a.peeked
}

func (a *Analyser) next() tokenizer.Token {
	tok := a.peek()
	a.peeked = nil
	return tok
}

func (a *Analyser) check(tt tokenizer.TokenType) bool {
	return a.peek().Type == tt
}

func (a *Analyser) nextIf(tt tokenizer.TokenType) (tokenizer.Token, bool) {
	if a.check(tt) {
		return a.next(), true
	}
	return tokenizer.Token{}, false
}

func (a *Analyser) expect(tt tokenizer.TokenType) tokenizer.Token {
	if a.check(tt) {
		return a.next()
	}
	panic(bailout{&ExpectedTokenError{Expected: []tokenizer.TokenType{tt}, Found: a.peek()}})
}

func (a *Analyser) fail(code parse.ErrorCode, pos parse.Position, format string, args ...any) {
	panic(bailout{&Error{Kind: code, Message: fmt.Sprintf(format, args...), Position: pos}})
}

func (a *Analyser) must(err error) {
	if err != nil {
		panic(bailout{err})
	}
}

func slotOf(e symbols.Entry) instruction.Slot {
	return instruction.Slot{Kind: e.Kind, Index: e.Slot}
}

// analyseProgram is the top level of the grammar
//
// Grammar:
//
//	program     = *item EOF
//	item        = function / stmt
func (a *Analyser) analyseProgram() {
	for !a.check(tokenizer.TOK_EOF) {
		if a.check(tokenizer.TOK_FN) {
			a.analyseFunction()
			continue
		}
		a.analyseStatement()
	}
}

// analyseFunction registers the function before its body is analysed, so
// functions may call themselves.
//
// Grammar:
//
//	function    = "fn" IDENT "(" [ param *( "," param ) ] ")" "->" TYPE block
func (a *Analyser) analyseFunction() {
	a.expect(tokenizer.TOK_FN)
	name := a.expect(tokenizer.TOK_IDENT)
	a.expect(tokenizer.TOK_PAREN_L)

	a.symbols.EnterFunction()

	var params []symbols.Param
	if !a.check(tokenizer.TOK_PAREN_R) {
		for {
			params = append(params, a.analyseParam())
			if _, ok := a.nextIf(tokenizer.TOK_COMMA); !ok {
				break
			}
		}
	}
	a.expect(tokenizer.TOK_PAREN_R)
	a.expect(tokenizer.TOK_ARROW)
	ret := a.analyseType(true)

	sig, err := a.Functions.Register(symbols.Signature{
		Name:   name.Lexeme,
		Params: params,
		Return: ret,
	}, name.Location.Start)
	a.must(err)

	if sig.Name == "main" {
		a.mainPos = name.Location.Start
	}

	fn := &instruction.Function{Name: sig.Name, ID: sig.ID, Params: len(params), Return: ret}
	entry, entrySig := a.fn, a.sig
	a.fn, a.sig = fn, sig

	a.Log.Trace().Str("function", sig.String()).Msg("enter function")

	returns := a.analyseBlock()
	if ret == symbols.Void {
		fn.Emit(instruction.Ret, nil)
	} else if !returns {
		a.fail(parse.InvalidReturn, name.Location.Start, "%s can reach its end without returning a %s", sig.Name, ret)
	}

	fn.Locals = a.symbols.ExitFunction()
	a.program.Functions = append(a.program.Functions, fn)
	a.fn, a.sig = entry, entrySig

	a.Log.Trace().
		Str("function", sig.Name).
		Int("locals", fn.Locals).
		Int("instructions", len(fn.Body)).
		Msg("exit function")
}

// analyseParam declares one parameter of the function being analysed
//
// Grammar:
//
//	param       = [ "const" ] IDENT ":" TYPE
func (a *Analyser) analyseParam() symbols.Param {
	_, constant := a.nextIf(tokenizer.TOK_CONST)
	name := a.expect(tokenizer.TOK_IDENT)
	a.expect(tokenizer.TOK_COLON)
	ty := a.analyseType(false)

	_, err := a.symbols.DeclareParam(name.Lexeme, constant, name.Location.Start)
	a.must(err)

	return symbols.Param{Name: name.Lexeme, Constant: constant, Type: ty}
}

// analyseType resolves a type name. void is only allowed where allowVoid is
// set, which is for return types.
//
// Grammar:
//
//	TYPE        = IDENT
func (a *Analyser) analyseType(allowVoid bool) symbols.Type {
	tok := a.expect(tokenizer.TOK_IDENT)
	ty, ok := symbols.ParseType(tok.Lexeme)
	if !ok || (ty == symbols.Void && !allowVoid) {
		a.fail(parse.UnknownType, tok.Location.Start, "%q is not a valid type here", tok.Lexeme)
	}
	return ty
}
