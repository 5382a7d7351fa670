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

// Package interpreter is the tree-walking evaluator: it executes an
// ast.Program directly against a value.Path-backed scope stack, without
// lowering to pkg/bytecode first.
package interpreter

import (
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// Context is one function invocation's scope stack plus its loop control
// flags. For a function invocation, scope 0 is seeded with the program's
// constants (see Evaluator.newRootContext; NewContext itself seeds
// nothing); every Begin/EndScope pair brackets a block (function body,
// if/for/while body, bare `{ }`). Break/continue are a single pair of flags,
// not a per-loop stack: executeStatements stops a statement list while one
// is pending, and each loop (executeFor, executeWhile, executeForEach)
// resets them to false after observing them once per iteration,
// exactly mirroring the reference evaluator's single State-held flags.
type Context struct {
	scopes       []map[string]*value.Path
	loopBreak    bool
	loopContinue bool
}

// NewContext constructs a Context with one empty scope.
func NewContext() *Context {
	return &Context{scopes: []map[string]*value.Path{make(map[string]*value.Path)}}
}

// BeginScope pushes a fresh, empty scope.
func (c *Context) BeginScope() {
	c.scopes = append(c.scopes, make(map[string]*value.Path))
}

// EndScope pops the innermost scope. NoScopeFound if only the root scope
// remains (callers must keep Begin/EndScope balanced; this guards a
// programming error, not a reachable script condition).
func (c *Context) EndScope() error {
	if len(c.scopes) <= 1 {
		return vmerrors.New(vmerrors.NoScopeFound)
	}

	c.scopes = c.scopes[:len(c.scopes)-1]
	return nil
}

// RegisterVariable binds name to p in the innermost scope. Fails with
// VariableAlreadyExists if name is already bound in THIS scope (shadowing a
// binding from an outer scope is allowed; redeclaring within the same block
// is not).
func (c *Context) RegisterVariable(name string, p value.Path) error {
	top := c.scopes[len(c.scopes)-1]
	if _, ok := top[name]; ok {
		return vmerrors.NewVariableAlreadyExists(name)
	}

	top[name] = &p
	return nil
}

// GetVariable resolves name from the innermost scope outward.
func (c *Context) GetVariable(name string) (*value.Path, error) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if p, ok := c.scopes[i][name]; ok {
			return p, nil
		}
	}

	return nil, vmerrors.NewVariableNotFound(name)
}

// SetVariable overwrites the value bound to an existing variable, wherever
// in the scope stack it lives (used by ForEach to rebind its loop variable
// each iteration without re-registering it).
func (c *Context) SetVariable(name string, v value.Value) error {
	p, err := c.GetVariable(name)
	if err != nil {
		return err
	}

	h := p.AsMut()
	h.Set(v)
	h.Release()

	return nil
}

// LoopBreak reports whether a break is pending in the nearest enclosing loop.
func (c *Context) LoopBreak() bool { return c.loopBreak }

// SetLoopBreak sets the pending-break flag.
func (c *Context) SetLoopBreak(b bool) { c.loopBreak = b }

// LoopContinue reports whether a continue is pending in the nearest
// enclosing loop.
func (c *Context) LoopContinue() bool { return c.loopContinue }

// SetLoopContinue sets the pending-continue flag.
func (c *Context) SetLoopContinue(b bool) { c.loopContinue = b }
