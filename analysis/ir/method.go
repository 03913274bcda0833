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

// A Method is a method of the subject program with its body.
type Method struct {
	// Signature is the canonical signature, e.g. "<com.example.Main: void onCreate(android.os.Bundle)>"
	Signature string
	Body      *Body
}

// A Body is the ordered sequence of statements of a method.
type Body struct {
	Method *Method
	Stmts  []*Stmt
}

// NewMethod returns a method with the given signature whose body contains stmts, in order. The index of every
// statement is set to its position.
func NewMethod(signature string, stmts ...*Stmt) *Method {
	m := &Method{Signature: signature}
	m.Body = &Body{Method: m, Stmts: stmts}
	for i, s := range stmts {
		s.Index = i
	}
	return m
}

// SubSignature returns the sub-signature of the method: its signature without the declaring type.
func (m *Method) SubSignature() string {
	return SubSignature(m.Signature)
}

func (m *Method) String() string {
	return m.Signature
}

// Successors returns the indices of the statements control may flow to after the i-th statement
func (b *Body) Successors(i int) []int {
	if i < 0 || i >= len(b.Stmts) {
		return nil
	}
	s := b.Stmts[i]
	var succs []int
	if s.FallsThrough() && i+1 < len(b.Stmts) {
		succs = append(succs, i+1)
	}
	for _, t := range s.Targets {
		if t >= 0 && t < len(b.Stmts) && !containsInt(succs, t) {
			succs = append(succs, t)
		}
	}
	return succs
}

// Contains returns true if s is one of the statements of the body (by identity)
func (b *Body) Contains(s *Stmt) bool {
	return s != nil && s.Index >= 0 && s.Index < len(b.Stmts) && b.Stmts[s.Index] == s
}

func containsInt(a []int, x int) bool {
	for _, y := range a {
		if x == y {
			return true
		}
	}
	return false
}

// SubSignature returns the part of a "<DeclaringType: ReturnType name(Params)>" signature after the colon, without
// the enclosing brackets. Signatures that are not in that form are returned unchanged.
func SubSignature(signature string) string {
	s := strings.TrimSuffix(strings.TrimPrefix(signature, "<"), ">")
	if _, after, found := strings.Cut(s, ": "); found {
		return after
	}
	return signature
}

// DeclaringType returns the part of a "<DeclaringType: ReturnType name(Params)>" signature before the colon, or
// the empty string if signature is not in that form.
func DeclaringType(signature string) string {
	s := strings.TrimPrefix(signature, "<")
	if before, _, found := strings.Cut(s, ": "); found {
		return before
	}
	return ""
}

// A Program holds the methods handed over by the upstream analysis, and answers the queries of the analyses about
// them: the method of a statement, and the dominators of a method.
type Program struct {
	methods    map[string]*Method
	order      []*Method
	owner      map[*Stmt]*Method
	dominators map[*Method]DominatorOracle
}

// NewProgram returns an empty program
func NewProgram() *Program {
	return &Program{
		methods:    map[string]*Method{},
		owner:      map[*Stmt]*Method{},
		dominators: map[*Method]DominatorOracle{},
	}
}

// AddMethod adds m to the program. Signatures must be unique.
func (p *Program) AddMethod(m *Method) error {
	if m == nil || m.Body == nil {
		return fmt.Errorf("method has no body")
	}
	if _, ok := p.methods[m.Signature]; ok {
		return fmt.Errorf("duplicate method %s", m.Signature)
	}
	p.methods[m.Signature] = m
	p.order = append(p.order, m)
	for _, s := range m.Body.Stmts {
		p.owner[s] = m
	}
	return nil
}

// Method returns the method with the given signature
func (p *Program) Method(signature string) (*Method, bool) {
	m, ok := p.methods[signature]
	return m, ok
}

// Methods returns the methods of the program in the order they were added
func (p *Program) Methods() []*Method {
	return p.order
}

// MethodOf returns the method containing s
func (p *Program) MethodOf(s *Stmt) (*Method, bool) {
	m, ok := p.owner[s]
	return m, ok
}

// SetDominators sets the dominator oracle of m, overriding the one computed from its control-flow graph
func (p *Program) SetDominators(m *Method, d DominatorOracle) {
	p.dominators[m] = d
}

// Dominators returns the dominator oracle of m. If none has been set, it is computed from the control-flow graph
// of the body of m and cached.
func (p *Program) Dominators(m *Method) (DominatorOracle, error) {
	if m == nil || m.Body == nil {
		return nil, fmt.Errorf("no body to compute dominators of")
	}
	if d, ok := p.dominators[m]; ok {
		return d, nil
	}
	d := ComputeDominators(m.Body)
	p.dominators[m] = d
	return d, nil
}
