// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ssaload

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ssa"
)

// A Function is the statement form of an SSA function: one statement per parameter binding followed by one
// statement per SSA instruction, in block order.
type Function struct {
	Func   *ssa.Function
	Method *ir.Method
	// Dominators is the dominator table derived from the dominator tree of the SSA blocks
	Dominators *ir.Dominators
	// Positions holds the source position of every statement; token.NoPos when unknown
	Positions []token.Pos
}

// Signature returns the signature of fn in the form the vocabulary uses: the qualified name of the function followed
// by its parameter types, e.g. "example.com/app.Get(example.com/app.Uri)". The receiver of a method is not part of
// the parameters.
func Signature(fn *ssa.Function) string {
	return fn.String() + paramsString(fn.Signature)
}

func paramsString(sig *types.Signature) string {
	params := make([]string, sig.Params().Len())
	for i := range params {
		params[i] = sig.Params().At(i).Type().String()
	}
	return "(" + strings.Join(params, ",") + ")"
}

// FromFunction converts fn. fn must have a body.
func FromFunction(fn *ssa.Function) (*Function, error) {
	if len(fn.Blocks) == 0 {
		return nil, fmt.Errorf("function %s has no body", fn.Name())
	}

	var stmts []*ir.Stmt
	var positions []token.Pos
	for i, p := range fn.Params {
		stmts = append(stmts, ir.NewIdentity(local(p), ir.NewOther(fmt.Sprintf("@parameter%d", i))))
		positions = append(positions, p.Pos())
	}
	for _, fv := range fn.FreeVars {
		stmts = append(stmts, ir.NewIdentity(local(fv), ir.NewOther("@free")))
		positions = append(positions, fv.Pos())
	}

	// statement index of the first instruction of every block
	start := make([]int, len(fn.Blocks))
	n := len(stmts)
	for _, b := range fn.Blocks {
		start[b.Index] = n
		n += len(b.Instrs)
	}

	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			stmts = append(stmts, convertInstruction(instr, start))
			positions = append(positions, instr.Pos())
		}
	}

	m := ir.NewMethod(Signature(fn), stmts...)
	dom, err := ir.NewExplicitDominators(m.Body, BlockDominators(fn, len(fn.Params)+len(fn.FreeVars)))
	if err != nil {
		return nil, fmt.Errorf("dominators of %s: %w", fn, err)
	}
	return &Function{Func: fn, Method: m, Dominators: dom, Positions: positions}, nil
}

// BlockDominators returns the immediate dominator table of the statements of fn, as laid out by FromFunction with
// the given number of binding statements. Inside a block, an instruction is dominated by the previous one; the first
// instruction of a block is dominated by the last instruction of the immediate dominator of the block. Blocks
// without a dominator (the entry and the recover block) start after the bindings, or have no dominator.
func BlockDominators(fn *ssa.Function, bindings int) []int {
	idom := make([]int, 0, bindings)
	for i := 0; i < bindings; i++ {
		idom = append(idom, i-1)
	}

	last := make([]int, len(fn.Blocks))
	n := bindings
	for _, b := range fn.Blocks {
		n += len(b.Instrs)
		last[b.Index] = n - 1
	}

	for _, b := range fn.Blocks {
		for i := range b.Instrs {
			switch {
			case i > 0:
				idom = append(idom, len(idom)-1)
			case b.Idom() != nil:
				idom = append(idom, last[b.Idom().Index])
			case b.Index == 0:
				idom = append(idom, bindings-1)
			default:
				idom = append(idom, -1)
			}
		}
	}
	return idom
}

//gocyclo:ignore
func convertInstruction(instr ssa.Instruction, start []int) *ir.Stmt {
	switch x := instr.(type) {
	case *ssa.Call:
		call := invoke(x.Common())
		if x.Call.Signature().Results().Len() == 0 {
			return ir.NewInvokeStmt(call)
		}
		return ir.NewAssign(local(x), call)
	case *ssa.Go:
		return ir.NewInvokeStmt(invoke(x.Common()))
	case *ssa.Defer:
		return ir.NewInvokeStmt(invoke(x.Common()))
	case *ssa.UnOp:
		if g, ok := x.X.(*ssa.Global); ok && x.Op == token.MUL {
			return ir.NewAssign(local(x), ir.NewField(g.String(), typeString(x.Type())))
		}
		return ir.NewAssign(local(x), ir.NewOther(x.String()))
	case *ssa.BinOp:
		if x.Op == token.ADD && isString(x.Type()) {
			return ir.NewAssign(local(x), ir.NewConcat(operand(x.X), operand(x.Y)))
		}
		return ir.NewAssign(local(x), ir.NewOther(x.String()))
	case *ssa.ChangeType:
		return ir.NewAssign(local(x), operand(x.X))
	case *ssa.Convert:
		return ir.NewAssign(local(x), operand(x.X))
	case *ssa.MakeInterface:
		return ir.NewAssign(local(x), operand(x.X))
	case *ssa.Store:
		if g, ok := x.Addr.(*ssa.Global); ok {
			return ir.NewAssign(ir.NewField(g.String(), typeString(x.Val.Type())), operand(x.Val))
		}
		return ir.NewNop()
	case *ssa.Return:
		if len(x.Results) == 0 {
			return ir.NewReturn(nil)
		}
		r := operand(x.Results[0])
		return ir.NewReturn(&r)
	case *ssa.If:
		// both successors are explicit targets: the next statement is not necessarily one of them
		succs := x.Block().Succs
		cond := operand(x.Cond)
		return &ir.Stmt{Kind: ir.If, Right: &cond, Targets: []int{start[succs[0].Index], start[succs[1].Index]}}
	case *ssa.Jump:
		return ir.NewGoto(start[x.Block().Succs[0].Index])
	case *ssa.Panic:
		v := operand(x.X)
		return &ir.Stmt{Kind: ir.Throw, Right: &v}
	case ssa.Value:
		return ir.NewAssign(local(x), ir.NewOther(x.String()))
	default:
		return ir.NewNop()
	}
}

// invoke converts a call. Arguments are ordered as in the callee's signature; the receiver of a method is the base of
// the invocation.
func invoke(c *ssa.CallCommon) ir.Value {
	if c.IsInvoke() {
		recv := operand(c.Value)
		sig := c.Method.Type().(*types.Signature)
		return ir.NewInvoke(c.Method.FullName()+paramsString(sig), &recv, operands(c.Args)...)
	}

	switch callee := c.Value.(type) {
	case *ssa.Builtin:
		return ir.NewInvoke(callee.Name(), nil, operands(c.Args)...)
	case *ssa.Function:
		if callee.Signature.Recv() != nil && len(c.Args) > 0 {
			recv := operand(c.Args[0])
			return ir.NewInvoke(Signature(callee), &recv, operands(c.Args[1:])...)
		}
		return ir.NewInvoke(Signature(callee), nil, operands(c.Args)...)
	default:
		// dynamic call of a function value
		return ir.NewInvoke(c.Value.Name()+paramsString(c.Signature()), nil, operands(c.Args)...)
	}
}

func operands(values []ssa.Value) []ir.Value {
	return funcutil.Map(values, operand)
}

func operand(v ssa.Value) ir.Value {
	switch x := v.(type) {
	case *ssa.Const:
		if x.Value == nil || x.Value.Kind() == constant.Unknown {
			return ir.NewConstant("nil")
		}
		return ir.Value{Kind: ir.KindConstant, Name: x.Value.ExactString(), Type: typeString(x.Type())}
	case *ssa.Global:
		return ir.NewField(x.String(), typeString(x.Type()))
	case *ssa.Function:
		return ir.NewOther(x.String())
	default:
		return local(v)
	}
}

func local(v ssa.Value) ir.Value {
	return ir.NewLocal(v.Name(), typeString(v.Type()))
}

func typeString(t types.Type) string {
	return t.String()
}

func isString(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// PackageFunctions returns the functions and methods with a body declared in pkg, and the anonymous functions they
// contain, sorted by name.
func PackageFunctions(pkg *ssa.Package) []*ssa.Function {
	var fns []*ssa.Function
	var add func(fn *ssa.Function)
	add = func(fn *ssa.Function) {
		if fn == nil || len(fn.Blocks) == 0 {
			return
		}
		fns = append(fns, fn)
		for _, anon := range fn.AnonFuncs {
			add(anon)
		}
	}
	for _, member := range pkg.Members {
		switch m := member.(type) {
		case *ssa.Function:
			add(m)
		case *ssa.Type:
			mset := pkg.Prog.MethodSets.MethodSet(types.NewPointer(m.Type()))
			for i := 0; i < mset.Len(); i++ {
				if fn := pkg.Prog.MethodValue(mset.At(i)); fn != nil && fn.Pkg == pkg && fn.Synthetic == "" {
					add(fn)
				}
			}
		}
	}
	slices.SortFunc(fns, func(a, b *ssa.Function) bool { return a.String() < b.String() })
	return fns
}
