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
package scriptfile

import (
	"encoding/json"
	"fmt"

	"github.com/consensys/cscript/pkg/ast"
)

// wireStatement is the JSON shape of one ast.Statement node, following the
// same kind-tagged union approach as wireExpression. If/ElseIf/Else/For/
// ForEach/While/Scope all carry a nested Body; the flat If-ElseIf-Else
// sibling layout documented on ast.Statement is preserved automatically
// since Body is just another []wireStatement list.
type wireStatement struct {
	Kind string `json:"kind"`

	// VariableDecl
	Name  string     `json:"name,omitempty"`
	Type  *wireType  `json:"type,omitempty"`
	Value *wireExpr  `json:"value,omitempty"`

	// If / ElseIf / While
	Condition *wireExpr `json:"condition,omitempty"`

	// For
	Init *wireStatement `json:"init,omitempty"`
	Post *wireExpr      `json:"post,omitempty"`

	// ForEach
	Iterable *wireExpr `json:"iterable,omitempty"`

	// Return / ExpressionStatement
	Expr *wireExpr `json:"expr,omitempty"`

	// If / ElseIf / Else / For / ForEach / While / Scope
	Body []wireStatement `json:"body,omitempty"`
}

// wireExpr is a type alias kept local to this file purely for readability;
// the real type lives in expression.go.
type wireExpr = wireExpression

func encodeStatement(s ast.Statement) (wireStatement, error) {
	switch st := s.(type) {
	case *ast.VariableDecl:
		val, err := encodeExpression(st.Value)
		if err != nil {
			return wireStatement{}, err
		}

		typ := encodeType(st.Type)

		return wireStatement{Kind: "var_decl", Name: st.Name, Type: &typ, Value: &val}, nil

	case *ast.If:
		cond, err := encodeExpression(st.Condition)
		if err != nil {
			return wireStatement{}, err
		}

		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "if", Condition: &cond, Body: body}, nil

	case *ast.ElseIf:
		cond, err := encodeExpression(st.Condition)
		if err != nil {
			return wireStatement{}, err
		}

		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "else_if", Condition: &cond, Body: body}, nil

	case *ast.Else:
		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "else", Body: body}, nil

	case *ast.For:
		var init *wireStatement

		if st.Init != nil {
			w, err := encodeStatement(st.Init)
			if err != nil {
				return wireStatement{}, err
			}

			init = &w
		}

		cond, err := encodeExpression(st.Condition)
		if err != nil {
			return wireStatement{}, err
		}

		post, err := encodeExpression(st.Post)
		if err != nil {
			return wireStatement{}, err
		}

		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "for", Init: init, Condition: &cond, Post: &post, Body: body}, nil

	case *ast.ForEach:
		iterable, err := encodeExpression(st.Iterable)
		if err != nil {
			return wireStatement{}, err
		}

		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "for_each", Name: st.Name, Iterable: &iterable, Body: body}, nil

	case *ast.While:
		cond, err := encodeExpression(st.Condition)
		if err != nil {
			return wireStatement{}, err
		}

		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "while", Condition: &cond, Body: body}, nil

	case *ast.Return:
		if st.Value == nil {
			return wireStatement{Kind: "return"}, nil
		}

		val, err := encodeExpression(st.Value)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "return", Expr: &val}, nil

	case *ast.Break:
		return wireStatement{Kind: "break"}, nil

	case *ast.Continue:
		return wireStatement{Kind: "continue"}, nil

	case *ast.Scope:
		body, err := encodeStatements(st.Body)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "scope", Body: body}, nil

	case *ast.ExpressionStatement:
		expr, err := encodeExpression(st.Expr)
		if err != nil {
			return wireStatement{}, err
		}

		return wireStatement{Kind: "expr_stmt", Expr: &expr}, nil

	default:
		return wireStatement{}, fmt.Errorf("scriptfile: unhandled statement type %T", s)
	}
}

func encodeStatements(stmts []ast.Statement) ([]wireStatement, error) {
	out := make([]wireStatement, len(stmts))

	for i, s := range stmts {
		w, err := encodeStatement(s)
		if err != nil {
			return nil, err
		}

		out[i] = w
	}

	return out, nil
}

func decodeStatement(w wireStatement) (ast.Statement, error) {
	switch w.Kind {
	case "var_decl":
		if w.Type == nil {
			return nil, fmt.Errorf("scriptfile: var_decl missing type")
		}

		typ, err := decodeType(*w.Type)
		if err != nil {
			return nil, err
		}

		val, err := decodeRequired(w.Value, "var_decl.value")
		if err != nil {
			return nil, err
		}

		return &ast.VariableDecl{Name: w.Name, Type: typ, Value: val}, nil

	case "if":
		cond, err := decodeRequired(w.Condition, "if.condition")
		if err != nil {
			return nil, err
		}

		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.If{Condition: cond, Body: body}, nil

	case "else_if":
		cond, err := decodeRequired(w.Condition, "else_if.condition")
		if err != nil {
			return nil, err
		}

		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.ElseIf{Condition: cond, Body: body}, nil

	case "else":
		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.Else{Body: body}, nil

	case "for":
		var init *ast.VariableDecl

		if w.Init != nil {
			s, err := decodeStatement(*w.Init)
			if err != nil {
				return nil, err
			}

			vd, ok := s.(*ast.VariableDecl)
			if !ok {
				return nil, fmt.Errorf("scriptfile: for.init must be a var_decl")
			}

			init = vd
		}

		cond, err := decodeRequired(w.Condition, "for.condition")
		if err != nil {
			return nil, err
		}

		post, err := decodeRequired(w.Post, "for.post")
		if err != nil {
			return nil, err
		}

		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.For{Init: init, Condition: cond, Post: post, Body: body}, nil

	case "for_each":
		iterable, err := decodeRequired(w.Iterable, "for_each.iterable")
		if err != nil {
			return nil, err
		}

		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.ForEach{Name: w.Name, Iterable: iterable, Body: body}, nil

	case "while":
		cond, err := decodeRequired(w.Condition, "while.condition")
		if err != nil {
			return nil, err
		}

		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.While{Condition: cond, Body: body}, nil

	case "return":
		if w.Expr == nil {
			return &ast.Return{}, nil
		}

		val, err := decodeExpression(*w.Expr)
		if err != nil {
			return nil, err
		}

		return &ast.Return{Value: val}, nil

	case "break":
		return &ast.Break{}, nil

	case "continue":
		return &ast.Continue{}, nil

	case "scope":
		body, err := decodeStatements(w.Body)
		if err != nil {
			return nil, err
		}

		return &ast.Scope{Body: body}, nil

	case "expr_stmt":
		expr, err := decodeRequired(w.Expr, "expr_stmt.expr")
		if err != nil {
			return nil, err
		}

		return &ast.ExpressionStatement{Expr: expr}, nil

	default:
		return nil, fmt.Errorf("scriptfile: unknown statement kind %q", w.Kind)
	}
}

func decodeStatements(ws []wireStatement) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(ws))

	for i, w := range ws {
		s, err := decodeStatement(w)
		if err != nil {
			return nil, err
		}

		out[i] = s
	}

	return out, nil
}

func marshalStatement(s ast.Statement) ([]byte, error) {
	w, err := encodeStatement(s)
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}
