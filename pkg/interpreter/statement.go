// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package interpreter

import (
	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// executeStatements runs body in the current scope, returning (result, true,
// nil) on an executed Return and (Null, false, nil) on falling off the end.
// acceptElse is a single latch carried across the list (not a per-statement
// flag): a false If/ElseIf condition opens it, any ElseIf/Else consumes it,
// and every other statement closes it, matching the flat If/ElseIf/Else
// sibling layout described on ast.Statement. A pending break/continue (set
// by a Break/Continue statement) stops the list immediately; it is the
// enclosing loop's job to observe and clear it.
func (e *Evaluator) executeStatements(ctx *Context, receiver *value.Value, body []ast.Statement) (value.Value, bool, error) {
	acceptElse := false

	for _, stmt := range body {
		if ctx.LoopBreak() || ctx.LoopContinue() {
			break
		}

		if err := e.incrementExpr(); err != nil {
			return value.Value{}, false, err
		}

		switch s := stmt.(type) {
		case *ast.VariableDecl:
			acceptElse = false

			v, err := e.evalExpression(ctx, nil, s.Value)
			if err != nil {
				return value.Value{}, false, err
			}

			if !v.GetType().Equal(s.Type) {
				return value.Value{}, false, vmerrors.NewOperationNotSameType(s.Type, v.GetType())
			}

			if err := ctx.RegisterVariable(s.Name, value.NewOwnedPath(v)); err != nil {
				return value.Value{}, false, err
			}

		case *ast.If:
			acceptElse = false

			cond, err := e.evalCondition(ctx, s.Condition)
			if err != nil {
				return value.Value{}, false, err
			}

			if cond {
				result, returned, err := e.runBlock(ctx, receiver, s.Body)
				if err != nil || returned {
					return result, returned, err
				}
			} else {
				acceptElse = true
			}

		case *ast.ElseIf:
			if !acceptElse {
				continue
			}

			acceptElse = false

			cond, err := e.evalCondition(ctx, s.Condition)
			if err != nil {
				return value.Value{}, false, err
			}

			if cond {
				result, returned, err := e.runBlock(ctx, receiver, s.Body)
				if err != nil || returned {
					return result, returned, err
				}
			} else {
				acceptElse = true
			}

		case *ast.Else:
			if !acceptElse {
				continue
			}

			acceptElse = false

			result, returned, err := e.runBlock(ctx, receiver, s.Body)
			if err != nil || returned {
				return result, returned, err
			}

		case *ast.For:
			acceptElse = false

			result, returned, err := e.executeFor(ctx, receiver, s)
			if err != nil || returned {
				return result, returned, err
			}

		case *ast.While:
			acceptElse = false

			result, returned, err := e.executeWhile(ctx, receiver, s)
			if err != nil || returned {
				return result, returned, err
			}

		case *ast.ForEach:
			acceptElse = false

			result, returned, err := e.executeForEach(ctx, receiver, s)
			if err != nil || returned {
				return result, returned, err
			}

		case *ast.Return:
			acceptElse = false

			if s.Value == nil {
				return value.Null(), true, nil
			}

			v, err := e.evalExpression(ctx, nil, s.Value)
			if err != nil {
				return value.Value{}, false, err
			}

			return v, true, nil

		case *ast.Break:
			acceptElse = false
			ctx.SetLoopBreak(true)

		case *ast.Continue:
			acceptElse = false
			ctx.SetLoopContinue(true)

		case *ast.Scope:
			acceptElse = false

			result, returned, err := e.runBlock(ctx, receiver, s.Body)
			if err != nil || returned {
				return result, returned, err
			}

		case *ast.ExpressionStatement:
			acceptElse = false

			if _, err := e.evalExpression(ctx, nil, s.Expr); err != nil {
				return value.Value{}, false, err
			}

		default:
			return value.Value{}, false, vmerrors.New(vmerrors.ExpectedValue)
		}
	}

	return value.Null(), false, nil
}

// runBlock brackets body with exactly one BeginScope/EndScope pair, the
// block-scoping unit shared by If/ElseIf/Else/Scope and a single loop
// iteration's body.
func (e *Evaluator) runBlock(ctx *Context, receiver *value.Value, body []ast.Statement) (value.Value, bool, error) {
	ctx.BeginScope()

	result, returned, err := e.executeStatements(ctx, receiver, body)

	// EndScope only fails if Begin/EndScope calls are unbalanced, which
	// cannot happen here: it guards a programming error, not a reachable
	// script condition.
	_ = ctx.EndScope()

	return result, returned, err
}

func (e *Evaluator) evalCondition(ctx *Context, expr ast.Expression) (bool, error) {
	v, err := e.evalExpression(ctx, nil, expr)
	if err != nil {
		return false, err
	}

	return v.AsBool()
}

// executeFor runs a C-style loop in a scope holding Init's loop variable for
// its whole lifetime, with a fresh per-iteration scope around Body. Post
// must be a statically-recognizable assignment expression, checked once up
// front rather than by inspecting its evaluated result: evalExpression
// always returns a concrete value.Value (there is no Option-style "no
// value"), so an assignment's conventional Null result can't be used to
// distinguish it from any other expression.
func (e *Evaluator) executeFor(ctx *Context, receiver *value.Value, s *ast.For) (value.Value, bool, error) {
	if s.Post != nil {
		post, ok := s.Post.(*ast.BinaryOp)
		if !ok || !post.Op.IsAssignment() {
			return value.Value{}, false, vmerrors.New(vmerrors.ExpectedAssignOperator)
		}
	}

	ctx.BeginScope()
	defer func() { _ = ctx.EndScope() }()

	if s.Init != nil {
		v, err := e.evalExpression(ctx, nil, s.Init.Value)
		if err != nil {
			return value.Value{}, false, err
		}

		if err := ctx.RegisterVariable(s.Init.Name, value.NewOwnedPath(v)); err != nil {
			return value.Value{}, false, err
		}
	}

	for {
		if s.Condition != nil {
			cond, err := e.evalCondition(ctx, s.Condition)
			if err != nil {
				return value.Value{}, false, err
			}

			if !cond {
				break
			}
		}

		result, returned, err := e.runBlock(ctx, receiver, s.Body)
		if err != nil {
			return value.Value{}, false, err
		}

		if returned {
			return result, true, nil
		}

		if ctx.LoopBreak() {
			ctx.SetLoopBreak(false)
			break
		}

		ctx.SetLoopContinue(false)

		if s.Post != nil {
			if _, err := e.evalExpression(ctx, nil, s.Post); err != nil {
				return value.Value{}, false, err
			}
		}
	}

	return value.Null(), false, nil
}

// executeWhile runs Body in a fresh per-iteration scope while Condition
// holds, both evaluated in a scope wrapping the whole loop.
func (e *Evaluator) executeWhile(ctx *Context, receiver *value.Value, s *ast.While) (value.Value, bool, error) {
	ctx.BeginScope()
	defer func() { _ = ctx.EndScope() }()

	for {
		cond, err := e.evalCondition(ctx, s.Condition)
		if err != nil {
			return value.Value{}, false, err
		}

		if !cond {
			break
		}

		result, returned, err := e.runBlock(ctx, receiver, s.Body)
		if err != nil {
			return value.Value{}, false, err
		}

		if returned {
			return result, true, nil
		}

		if ctx.LoopBreak() {
			ctx.SetLoopBreak(false)
			break
		}

		ctx.SetLoopContinue(false)
	}

	return value.Null(), false, nil
}

// executeForEach iterates Iterable's elements, rebinding Name via
// Context.SetVariable each pass rather than re-registering it, so the
// binding lives in the one scope wrapping the whole loop.
func (e *Evaluator) executeForEach(ctx *Context, receiver *value.Value, s *ast.ForEach) (value.Value, bool, error) {
	iterVal, err := e.evalExpression(ctx, nil, s.Iterable)
	if err != nil {
		return value.Value{}, false, err
	}

	ctx.BeginScope()
	defer func() { _ = ctx.EndScope() }()

	if err := ctx.RegisterVariable(s.Name, value.NewOwnedPath(value.Null())); err != nil {
		return value.Value{}, false, err
	}

	if iterVal.Kind() == value.KindRange {
		return e.executeForEachRange(ctx, receiver, s, iterVal)
	}

	cells, err := iterVal.AsArray()
	if err != nil {
		return value.Value{}, false, err
	}

	for _, cell := range cells {
		if err := ctx.SetVariable(s.Name, cell.Handle().Value().Clone()); err != nil {
			return value.Value{}, false, err
		}

		result, returned, err := e.runBlock(ctx, receiver, s.Body)
		if err != nil {
			return value.Value{}, false, err
		}

		if returned {
			return result, true, nil
		}

		if ctx.LoopBreak() {
			ctx.SetLoopBreak(false)
			break
		}

		ctx.SetLoopContinue(false)
	}

	return value.Null(), false, nil
}

// executeForEachRange walks a Range's [Start, End) bound values one step at
// a time via Increment, mirroring the Array branch's per-iteration
// runBlock/break/continue handling. The loop's own scope (and var
// registration) is set up by the caller.
func (e *Evaluator) executeForEachRange(
	ctx *Context, receiver *value.Value, s *ast.ForEach, iterVal value.Value,
) (value.Value, bool, error) {
	rng, err := iterVal.AsRange()
	if err != nil {
		return value.Value{}, false, err
	}

	for cur := rng.Start; ; {
		cmp, err := cur.Cmp(rng.End)
		if err != nil {
			return value.Value{}, false, err
		}

		if cmp >= 0 {
			break
		}

		if err := ctx.SetVariable(s.Name, cur.Clone()); err != nil {
			return value.Value{}, false, err
		}

		result, returned, err := e.runBlock(ctx, receiver, s.Body)
		if err != nil {
			return value.Value{}, false, err
		}

		if returned {
			return result, true, nil
		}

		if ctx.LoopBreak() {
			ctx.SetLoopBreak(false)
			break
		}

		ctx.SetLoopContinue(false)

		cur, err = cur.Increment()
		if err != nil {
			return value.Value{}, false, err
		}
	}

	return value.Null(), false, nil
}
