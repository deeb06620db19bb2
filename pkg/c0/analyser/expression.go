/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package analyser

import (
	"unicode/utf8"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/c0/symbols"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
)

type precedence int

const (
	precNone precedence = iota
	precAssign
	precCompare
	precTerm
	precFactor
	precCast
	precUnary
)

// binaryPrecedence holds the infix operators. Assignment is not among
// them: it is recognized on its target identifier instead.
var binaryPrecedence = map[tokenizer.TokenType]precedence{
	tokenizer.TOK_EQ_EQ:      precCompare,
	tokenizer.TOK_NOT_EQ:     precCompare,
	tokenizer.TOK_LESS:       precCompare,
	tokenizer.TOK_GREATER:    precCompare,
	tokenizer.TOK_LESS_EQ:    precCompare,
	tokenizer.TOK_GREATER_EQ: precCompare,
	tokenizer.TOK_PLUS:       precTerm,
	tokenizer.TOK_MINUS:      precTerm,
	tokenizer.TOK_STAR:       precFactor,
	tokenizer.TOK_SLASH:      precFactor,
	tokenizer.TOK_AS:         precCast,
}

var binaryOps = map[tokenizer.TokenType]instruction.Operation{
	tokenizer.TOK_EQ_EQ:      instruction.CmpEq,
	tokenizer.TOK_NOT_EQ:     instruction.CmpNe,
	tokenizer.TOK_LESS:       instruction.CmpLt,
	tokenizer.TOK_GREATER:    instruction.CmpGt,
	tokenizer.TOK_LESS_EQ:    instruction.CmpLe,
	tokenizer.TOK_GREATER_EQ: instruction.CmpGe,
	tokenizer.TOK_PLUS:       instruction.Add,
	tokenizer.TOK_MINUS:      instruction.Sub,
	tokenizer.TOK_STAR:       instruction.Mul,
	tokenizer.TOK_SLASH:      instruction.Div,
}

var primaryStart = []tokenizer.TokenType{
	tokenizer.TOK_IDENT,
	tokenizer.TOK_UINT_LITERAL,
	tokenizer.TOK_DOUBLE_LITERAL,
	tokenizer.TOK_STRING_LITERAL,
	tokenizer.TOK_CHAR_LITERAL,
	tokenizer.TOK_PAREN_L,
	tokenizer.TOK_MINUS,
}

// analyseExpression emits an expression and reports whether it leaves a
// value on the stack. Assignments and calls to void functions do not.
//
// Grammar:
//
//	expr        = IDENT "=" expr / operand *( binary-op operand / "as" TYPE )
//	binary-op   = "==" / "!=" / "<" / ">" / "<=" / ">=" / "+" / "-" / "*" / "/"
//	operand     = "-" operand / primary
func (a *Analyser) analyseExpression() bool {
	return a.analysePrecedence(precAssign)
}

// analysePrecedence parses operators binding at least as tightly as min.
// Operators on the same level associate to the left.
func (a *Analyser) analysePrecedence(min precedence) bool {
	canAssign := min <= precAssign
	value := a.analyseUnary(canAssign)

	for {
		op := a.peek()
		prec, ok := binaryPrecedence[op.Type]
		if !ok || prec < min {
			break
		}
		a.next()
		a.requireValue(value, op)

		if op.Type == tokenizer.TOK_AS {
			a.fn.Emit(instruction.Cast, a.analyseType(false))
			value = true
			continue
		}

		rhs := a.peek()
		a.requireValue(a.analysePrecedence(prec+1), rhs)
		a.fn.Emit(binaryOps[op.Type], nil)
		value = true
	}

	if canAssign && a.check(tokenizer.TOK_ASSIGN) {
		a.fail(parse.InvalidAssignment, a.peek().Location.Start, "left side of assignment must be a variable")
	}

	return value
}

func (a *Analyser) analyseUnary(canAssign bool) bool {
	if _, ok := a.nextIf(tokenizer.TOK_MINUS); ok {
		operand := a.peek()
		a.requireValue(a.analysePrecedence(precUnary), operand)
		a.fn.Emit(instruction.Neg, nil)
		return true
	}
	return a.analysePrimary(canAssign)
}

// analysePrimary emits a literal, variable, call or parenthesized expression
//
// Grammar:
//
//	primary     = literal / IDENT / call / "(" expr ")"
//	literal     = uint-literal / double-literal / string-literal / char-literal
func (a *Analyser) analysePrimary(canAssign bool) bool {
	tok := a.next()

	switch tok.Type {
	case tokenizer.TOK_UINT_LITERAL:
		a.fn.Emit(instruction.Push, tok.Value.(uint64))
		return true
	case tokenizer.TOK_DOUBLE_LITERAL:
		a.fn.Emit(instruction.Push, tok.Value.(float64))
		return true
	case tokenizer.TOK_CHAR_LITERAL:
		r, _ := utf8.DecodeRuneInString(tokenizer.Unescape(tok.Value.(string)))
		a.fn.Emit(instruction.Push, uint64(r))
		return true
	case tokenizer.TOK_STRING_LITERAL:
		a.fn.Emit(instruction.Push, tokenizer.Unescape(tok.Value.(string)))
		return true
	case tokenizer.TOK_PAREN_L:
		value := a.analyseExpression()
		a.expect(tokenizer.TOK_PAREN_R)
		return value
	case tokenizer.TOK_IDENT:
		if a.check(tokenizer.TOK_PAREN_L) {
			return a.analyseCall(tok)
		}
		if canAssign && a.check(tokenizer.TOK_ASSIGN) {
			return a.analyseAssignment(tok)
		}
		return a.analyseLoad(tok)
	}

	panic(bailout{&ExpectedTokenError{Expected: primaryStart, Found: tok}})
}

func (a *Analyser) analyseLoad(name tokenizer.Token) bool {
	entry, err := a.symbols.Lookup(name.Lexeme, name.Location.Start)
	a.must(err)

	// Globals are zeroed and parameters are set by the caller
	if entry.Kind == symbols.Local && !entry.Initialized {
		a.fail(parse.NotInitialized, name.Location.Start, "%s is used before it is assigned", name.Lexeme)
	}

	a.fn.Emit(instruction.Load, slotOf(entry))
	return true
}

// analyseAssignment stores into a variable. The assignment is right
// associative and produces no value.
func (a *Analyser) analyseAssignment(target tokenizer.Token) bool {
	entry, err := a.symbols.Lookup(target.Lexeme, target.Location.Start)
	a.must(err)

	if entry.Constant {
		a.fail(parse.AssignToConstant, target.Location.Start, "cannot assign to %s", target.Lexeme)
	}

	eq := a.expect(tokenizer.TOK_ASSIGN)
	a.requireValue(a.analysePrecedence(precAssign), eq)

	a.fn.Emit(instruction.Store, slotOf(entry))
	a.must(a.symbols.MarkInitialized(target.Lexeme, target.Location.Start))
	return false
}

// analyseCall resolves the callee and checks the argument count
//
// Grammar:
//
//	call        = IDENT "(" [ expr *( "," expr ) ] ")"
func (a *Analyser) analyseCall(name tokenizer.Token) bool {
	sig, err := a.Functions.Lookup(name.Lexeme, name.Location.Start)
	a.must(err)

	// The entry function is only ever entered by the VM
	if sig.Name == symbols.EntryName {
		a.must(&symbols.Error{Kind: parse.NotDeclared, Name: name.Lexeme, Position: name.Location.Start})
	}

	a.expect(tokenizer.TOK_PAREN_L)

	argc := 0
	if !a.check(tokenizer.TOK_PAREN_R) {
		for {
			arg := a.peek()
			a.requireValue(a.analyseExpression(), arg)
			argc++
			if _, ok := a.nextIf(tokenizer.TOK_COMMA); !ok {
				break
			}
		}
	}
	a.expect(tokenizer.TOK_PAREN_R)

	if argc != len(sig.Params) {
		a.fail(parse.ArgumentMismatch, name.Location.Start, "%s takes %d arguments, got %d", sig.Name, len(sig.Params), argc)
	}

	a.fn.Emit(instruction.Call, instruction.Callee{ID: sig.ID, Name: sig.Name, Argc: argc})
	return sig.Return != symbols.Void
}

// requireValue fails unless the expression starting at tok left a value.
func (a *Analyser) requireValue(value bool, tok tokenizer.Token) {
	if !value {
		a.fail(parse.ExpectedValue, tok.Location.Start, "expression near %q has no value", tok.Lexeme)
	}
}
