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

package ir

import (
	"fmt"
	"strings"
)

// StmtKind is the tag of a Stmt
type StmtKind int

const (
	// Nop does nothing
	Nop StmtKind = iota
	// Assign is "Left = Right"
	Assign
	// InvokeStmt is a call whose result is discarded; Right is the invocation
	InvokeStmt
	// Identity binds a parameter or the receiver to a local: "Left := Right"
	Identity
	// If branches to Targets[0] when Right holds, and falls through otherwise
	If
	// Goto jumps to Targets[0]
	Goto
	// Return ends the method, returning Right if it is set
	Return
	// Throw ends the method by throwing Right
	Throw
)

var stmtKindNames = [...]string{
	Nop:        "nop",
	Assign:     "assign",
	InvokeStmt: "invoke",
	Identity:   "identity",
	If:         "if",
	Goto:       "goto",
	Return:     "return",
	Throw:      "throw",
}

func (k StmtKind) String() string {
	if k < 0 || int(k) >= len(stmtKindNames) {
		return fmt.Sprintf("StmtKind(%d)", int(k))
	}
	return stmtKindNames[k]
}

// ParseStmtKind returns the kind whose name is s
func ParseStmtKind(s string) (StmtKind, error) {
	for k, name := range stmtKindNames {
		if name == s {
			return StmtKind(k), nil
		}
	}
	return Nop, fmt.Errorf("unknown statement kind %q", s)
}

// A Stmt is one instruction of a method body. Statements are identified by their address: two structurally equal
// statements at different positions are distinct occurrences.
type Stmt struct {
	Kind StmtKind

	// Left is the target of an Assign or Identity
	Left *Value

	// Right is the right-hand side of an Assign or Identity, the invocation of an InvokeStmt, the condition of an If
	// and the operand of a Return or Throw
	Right *Value

	// Targets are the indices of the branch targets of an If or Goto
	Targets []int

	// Index is the position of the statement in its body. It is set when the body is built.
	Index int
}

// NewAssign returns the statement "left = right"
func NewAssign(left Value, right Value) *Stmt {
	return &Stmt{Kind: Assign, Left: &left, Right: &right}
}

// NewIdentity returns the statement "left := right"
func NewIdentity(left Value, right Value) *Stmt {
	return &Stmt{Kind: Identity, Left: &left, Right: &right}
}

// NewInvokeStmt returns a statement calling call, discarding the result
func NewInvokeStmt(call Value) *Stmt {
	return &Stmt{Kind: InvokeStmt, Right: &call}
}

// NewIf returns a conditional branch to target
func NewIf(cond Value, target int) *Stmt {
	return &Stmt{Kind: If, Right: &cond, Targets: []int{target}}
}

// NewGoto returns an unconditional branch to target
func NewGoto(target int) *Stmt {
	return &Stmt{Kind: Goto, Targets: []int{target}}
}

// NewReturn returns a return statement. result may be nil.
func NewReturn(result *Value) *Stmt {
	return &Stmt{Kind: Return, Right: result}
}

// NewNop returns a statement that does nothing
func NewNop() *Stmt {
	return &Stmt{Kind: Nop}
}

// IsAssign returns true for assignments "x = e"
func (s *Stmt) IsAssign() bool {
	return s.Kind == Assign && s.Left != nil && s.Right != nil
}

// ContainsInvoke returns true if the statement calls a method
func (s *Stmt) ContainsInvoke() bool {
	return s.InvokeExpr() != nil
}

// InvokeExpr returns the invocation of the statement, or nil if it does not call any method
func (s *Stmt) InvokeExpr() *Value {
	if s.Right == nil || s.Right.Kind != KindInvoke {
		return nil
	}
	if s.Kind == Assign || s.Kind == InvokeStmt {
		return s.Right
	}
	return nil
}

// FallsThrough returns true when control may continue to the next statement
func (s *Stmt) FallsThrough() bool {
	switch s.Kind {
	case Goto, Return, Throw:
		return false
	default:
		return true
	}
}

// Equal is structural equality; the index of the statements is not compared.
func (s *Stmt) Equal(t *Stmt) bool {
	if s == t {
		return true
	}
	if s == nil || t == nil || s.Kind != t.Kind {
		return false
	}
	if !optionalValueEqual(s.Left, t.Left) || !optionalValueEqual(s.Right, t.Right) {
		return false
	}
	if len(s.Targets) != len(t.Targets) {
		return false
	}
	for i := range s.Targets {
		if s.Targets[i] != t.Targets[i] {
			return false
		}
	}
	return true
}

func optionalValueEqual(a *Value, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *Stmt) String() string {
	switch s.Kind {
	case Assign:
		return fmt.Sprintf("%s = %s", valueString(s.Left), valueString(s.Right))
	case Identity:
		return fmt.Sprintf("%s := %s", valueString(s.Left), valueString(s.Right))
	case InvokeStmt:
		return valueString(s.Right)
	case If:
		return fmt.Sprintf("if %s goto %s", valueString(s.Right), targetsString(s.Targets))
	case Goto:
		return fmt.Sprintf("goto %s", targetsString(s.Targets))
	case Return:
		if s.Right == nil {
			return "return"
		}
		return "return " + s.Right.String()
	case Throw:
		return "throw " + valueString(s.Right)
	default:
		return "nop"
	}
}

func valueString(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}

func targetsString(targets []int) string {
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = fmt.Sprintf("label%d", t)
	}
	return strings.Join(labels, ", ")
}
