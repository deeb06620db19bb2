/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package analyser

import (
	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/c0/symbols"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
)

// analyseStatement dispatches on the first token of a statement. It
// reports whether the statement returns on every path.
//
// Grammar:
//
//	stmt        = if-stmt / while-stmt / "break" ";" / "continue" ";"
//	            / return-stmt / decl-stmt / block / expr ";" / ";"
func (a *Analyser) analyseStatement() bool {
	switch a.peek().Type {
	case tokenizer.TOK_IF:
		return a.analyseIf()
	case tokenizer.TOK_WHILE:
		// The condition is not evaluated here, so a loop never counts
		a.analyseWhile()
	case tokenizer.TOK_BREAK, tokenizer.TOK_CONTINUE:
		a.analyseLoopControl()
	case tokenizer.TOK_RETURN:
		a.analyseReturn()
		return true
	case tokenizer.TOK_LET, tokenizer.TOK_CONST:
		a.analyseDeclaration()
	case tokenizer.TOK_BRACE_L:
		return a.analyseBlock()
	case tokenizer.TOK_SEMICOLON:
		a.next()
	default:
		if a.analyseExpression() {
			a.fn.Emit(instruction.Pop, nil)
		}
		a.expect(tokenizer.TOK_SEMICOLON)
	}
	return false
}

// analyseBlock opens a scope for the statements it contains
//
// Grammar:
//
//	block       = "{" *stmt "}"
func (a *Analyser) analyseBlock() bool {
	a.expect(tokenizer.TOK_BRACE_L)

	a.symbols.EnterScope()
	a.Log.Trace().Int("depth", a.symbols.Depth()).Msg("enter scope")

	returns := false
	for !a.check(tokenizer.TOK_BRACE_R) && !a.check(tokenizer.TOK_EOF) {
		if a.analyseStatement() {
			returns = true
		}
	}
	a.expect(tokenizer.TOK_BRACE_R)

	a.Log.Trace().Int("depth", a.symbols.Depth()).Msg("exit scope")
	a.symbols.ExitScope()
	return returns
}

// analyseDeclaration declares a variable. The name is visible, but not
// initialized, while its initializer is analysed.
//
// Grammar:
//
//	decl-stmt   = "let" IDENT ":" TYPE [ "=" expr ] ";"
//	            / "const" IDENT ":" TYPE "=" expr ";"
func (a *Analyser) analyseDeclaration() {
	constant := a.next().Type == tokenizer.TOK_CONST
	name := a.expect(tokenizer.TOK_IDENT)
	a.expect(tokenizer.TOK_COLON)
	a.analyseType(false)

	entry, err := a.symbols.Declare(name.Lexeme, constant, false, name.Location.Start)
	a.must(err)

	var eq tokenizer.Token
	hasInit := true
	if constant {
		eq = a.expect(tokenizer.TOK_ASSIGN)
	} else {
		eq, hasInit = a.nextIf(tokenizer.TOK_ASSIGN)
	}

	if hasInit {
		a.requireValue(a.analyseExpression(), eq)
		a.fn.Emit(instruction.Store, slotOf(entry))
		a.must(a.symbols.MarkInitialized(name.Lexeme, name.Location.Start))
	}

	a.expect(tokenizer.TOK_SEMICOLON)

	a.Log.Trace().
		Str("name", entry.Name).
		Stringer("kind", entry.Kind).
		Int("slot", entry.Slot).
		Bool("const", constant).
		Msg("declare")
}

// analyseIf emits a conditional branch per arm and a jump past the whole
// statement at the end of every arm that is followed by an else, unless the
// arm returns. The statement returns when it has an else and every arm
// returns.
//
// Grammar:
//
//	if-stmt     = "if" expr block *( "else" "if" expr block ) [ "else" block ]
func (a *Analyser) analyseIf() bool {
	a.expect(tokenizer.TOK_IF)

	var exits []int
	returns := true
	for {
		cond := a.peek()
		a.requireValue(a.analyseExpression(), cond)
		branch := a.fn.Emit(instruction.BrFalse, nil)

		armReturns := a.analyseBlock()
		returns = returns && armReturns

		if _, ok := a.nextIf(tokenizer.TOK_ELSE); !ok {
			a.fn.Patch(branch, a.fn.Next())
			returns = false
			break
		}

		if !armReturns {
			exits = append(exits, a.fn.Emit(instruction.Jmp, nil))
		}
		a.fn.Patch(branch, a.fn.Next())

		if _, ok := a.nextIf(tokenizer.TOK_IF); ok {
			continue
		}

		returns = a.analyseBlock() && returns
		break
	}

	for _, exit := range exits {
		a.fn.Patch(exit, a.fn.Next())
	}
	return returns
}

// analyseWhile emits the condition, the body and a jump back to the
// condition. break statements in the body are patched to the loop exit.
//
// Grammar:
//
//	while-stmt  = "while" expr block
func (a *Analyser) analyseWhile() {
	a.expect(tokenizer.TOK_WHILE)

	head := a.fn.Next()
	cond := a.peek()
	a.requireValue(a.analyseExpression(), cond)
	branch := a.fn.Emit(instruction.BrFalse, nil)

	l := &loop{head: head}
	a.loops = append(a.loops, l)
	a.analyseBlock()
	a.loops = a.loops[:len(a.loops)-1]

	a.fn.Emit(instruction.Jmp, instruction.Target(head))

	exit := a.fn.Next()
	a.fn.Patch(branch, exit)
	for _, b := range l.breaks {
		a.fn.Patch(b, exit)
	}
}

func (a *Analyser) analyseLoopControl() {
	tok := a.next()
	if len(a.loops) == 0 {
		a.fail(parse.NotInLoop, tok.Location.Start, "%s outside of a loop", tok.Lexeme)
	}

	l := a.loops[len(a.loops)-1]
	if tok.Type == tokenizer.TOK_BREAK {
		l.breaks = append(l.breaks, a.fn.Emit(instruction.Jmp, nil))
	} else {
		a.fn.Emit(instruction.Jmp, instruction.Target(l.head))
	}

	a.expect(tokenizer.TOK_SEMICOLON)
}

// analyseReturn checks that a value is returned exactly when the function
// has a non-void return type.
//
// Grammar:
//
//	return-stmt = "return" [ expr ] ";"
func (a *Analyser) analyseReturn() {
	tok := a.expect(tokenizer.TOK_RETURN)

	hasValue := false
	if !a.check(tokenizer.TOK_SEMICOLON) {
		start := a.peek()
		a.requireValue(a.analyseExpression(), start)
		hasValue = true
	}

	if wantValue := a.sig.Return != symbols.Void; hasValue != wantValue {
		if wantValue {
			a.fail(parse.InvalidReturn, tok.Location.Start, "%s must return a value of type %s", a.sig.Name, a.sig.Return)
		}
		a.fail(parse.InvalidReturn, tok.Location.Start, "%s does not return a value", a.sig.Name)
	}

	a.fn.Emit(instruction.Ret, nil)
	a.expect(tokenizer.TOK_SEMICOLON)
}
