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

// wireExpression is the JSON shape of one ast.Expression node: Kind selects
// the variant, the rest of the fields are a union of every variant's
// payload (only the ones Kind needs are populated). Children are *wireExpression
// rather than ast.Expression directly so the encoding/decoding recursion
// stays inside this package.
type wireExpression struct {
	Kind string `json:"kind"`

	// Literal
	Value *wireValue `json:"value,omitempty"`

	// Variable / FunctionCall / StructConstructor
	Name string `json:"name,omitempty"`

	// ArrayCall
	Array *wireExpression `json:"array,omitempty"`
	Index *wireExpression `json:"index,omitempty"`

	// Path / Ternary / BinaryOp / IsNot share Left/Right/Operand/Condition
	Left      *wireExpression `json:"left,omitempty"`
	Right     *wireExpression `json:"right,omitempty"`
	Operand   *wireExpression `json:"operand,omitempty"`
	Condition *wireExpression `json:"condition,omitempty"`

	// FunctionCall / ArrayConstructor
	Args []wireExpression `json:"args,omitempty"`

	// StructConstructor
	FieldNames  []string         `json:"field_names,omitempty"`
	FieldValues []wireExpression `json:"field_values,omitempty"`

	// BinaryOp
	Op string `json:"op,omitempty"`

	// Cast
	Target *wireType `json:"target,omitempty"`
}

func encodeExpression(e ast.Expression) (wireExpression, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		v, err := encodeValue(ex.Value)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "literal", Value: &v}, nil

	case *ast.Variable:
		return wireExpression{Kind: "variable", Name: ex.Name}, nil

	case *ast.ArrayCall:
		arr, err := encodeExpression(ex.Array)
		if err != nil {
			return wireExpression{}, err
		}

		idx, err := encodeExpression(ex.Index)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "array_call", Array: &arr, Index: &idx}, nil

	case *ast.Path:
		left, err := encodeExpression(ex.Left)
		if err != nil {
			return wireExpression{}, err
		}

		right, err := encodeExpression(ex.Right)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "path", Left: &left, Right: &right}, nil

	case *ast.FunctionCall:
		args, err := encodeExpressions(ex.Args)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "function_call", Name: ex.Name, Args: args}, nil

	case *ast.ArrayConstructor:
		elems, err := encodeExpressions(ex.Elements)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "array_constructor", Args: elems}, nil

	case *ast.StructConstructor:
		values, err := encodeExpressions(ex.FieldValues)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{
			Kind:        "struct_constructor",
			Name:        ex.StructName,
			FieldNames:  ex.FieldNames,
			FieldValues: values,
		}, nil

	case *ast.IsNot:
		operand, err := encodeExpression(ex.Operand)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "is_not", Operand: &operand}, nil

	case *ast.Ternary:
		cond, err := encodeExpression(ex.Condition)
		if err != nil {
			return wireExpression{}, err
		}

		left, err := encodeExpression(ex.Left)
		if err != nil {
			return wireExpression{}, err
		}

		right, err := encodeExpression(ex.Right)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "ternary", Condition: &cond, Left: &left, Right: &right}, nil

	case *ast.BinaryOp:
		left, err := encodeExpression(ex.Left)
		if err != nil {
			return wireExpression{}, err
		}

		right, err := encodeExpression(ex.Right)
		if err != nil {
			return wireExpression{}, err
		}

		return wireExpression{Kind: "binary_op", Op: ex.Op.String(), Left: &left, Right: &right}, nil

	case *ast.Cast:
		operand, err := encodeExpression(ex.Operand)
		if err != nil {
			return wireExpression{}, err
		}

		target := encodeType(ex.Target)

		return wireExpression{Kind: "cast", Operand: &operand, Target: &target}, nil

	default:
		return wireExpression{}, fmt.Errorf("scriptfile: unhandled expression type %T", e)
	}
}

func encodeExpressions(exprs []ast.Expression) ([]wireExpression, error) {
	out := make([]wireExpression, len(exprs))

	for i, e := range exprs {
		w, err := encodeExpression(e)
		if err != nil {
			return nil, err
		}

		out[i] = w
	}

	return out, nil
}

func decodeExpression(w wireExpression) (ast.Expression, error) {
	switch w.Kind {
	case "literal":
		if w.Value == nil {
			return nil, fmt.Errorf("scriptfile: literal expression missing value")
		}

		v, err := decodeValue(*w.Value)
		if err != nil {
			return nil, err
		}

		return &ast.Literal{Value: v}, nil

	case "variable":
		return &ast.Variable{Name: w.Name}, nil

	case "array_call":
		arr, err := decodeRequired(w.Array, "array_call.array")
		if err != nil {
			return nil, err
		}

		idx, err := decodeRequired(w.Index, "array_call.index")
		if err != nil {
			return nil, err
		}

		return &ast.ArrayCall{Array: arr, Index: idx}, nil

	case "path":
		left, err := decodeRequired(w.Left, "path.left")
		if err != nil {
			return nil, err
		}

		right, err := decodeRequired(w.Right, "path.right")
		if err != nil {
			return nil, err
		}

		return &ast.Path{Left: left, Right: right}, nil

	case "function_call":
		args, err := decodeExpressions(w.Args)
		if err != nil {
			return nil, err
		}

		return &ast.FunctionCall{Name: w.Name, Args: args}, nil

	case "array_constructor":
		elems, err := decodeExpressions(w.Args)
		if err != nil {
			return nil, err
		}

		return &ast.ArrayConstructor{Elements: elems}, nil

	case "struct_constructor":
		values, err := decodeExpressions(w.FieldValues)
		if err != nil {
			return nil, err
		}

		return &ast.StructConstructor{StructName: w.Name, FieldNames: w.FieldNames, FieldValues: values}, nil

	case "is_not":
		operand, err := decodeRequired(w.Operand, "is_not.operand")
		if err != nil {
			return nil, err
		}

		return &ast.IsNot{Operand: operand}, nil

	case "ternary":
		cond, err := decodeRequired(w.Condition, "ternary.condition")
		if err != nil {
			return nil, err
		}

		left, err := decodeRequired(w.Left, "ternary.left")
		if err != nil {
			return nil, err
		}

		right, err := decodeRequired(w.Right, "ternary.right")
		if err != nil {
			return nil, err
		}

		return &ast.Ternary{Condition: cond, Left: left, Right: right}, nil

	case "binary_op":
		op, err := decodeOperator(w.Op)
		if err != nil {
			return nil, err
		}

		left, err := decodeRequired(w.Left, "binary_op.left")
		if err != nil {
			return nil, err
		}

		right, err := decodeRequired(w.Right, "binary_op.right")
		if err != nil {
			return nil, err
		}

		return &ast.BinaryOp{Op: op, Left: left, Right: right}, nil

	case "cast":
		operand, err := decodeRequired(w.Operand, "cast.operand")
		if err != nil {
			return nil, err
		}

		if w.Target == nil {
			return nil, fmt.Errorf("scriptfile: cast expression missing target")
		}

		target, err := decodeType(*w.Target)
		if err != nil {
			return nil, err
		}

		return &ast.Cast{Operand: operand, Target: target}, nil

	default:
		return nil, fmt.Errorf("scriptfile: unknown expression kind %q", w.Kind)
	}
}

func decodeRequired(w *wireExpression, field string) (ast.Expression, error) {
	if w == nil {
		return nil, fmt.Errorf("scriptfile: missing required expression field %s", field)
	}

	return decodeExpression(*w)
}

func decodeExpressions(ws []wireExpression) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(ws))

	for i, w := range ws {
		e, err := decodeExpression(w)
		if err != nil {
			return nil, err
		}

		out[i] = e
	}

	return out, nil
}

func marshalExpression(e ast.Expression) ([]byte, error) {
	w, err := encodeExpression(e)
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}
