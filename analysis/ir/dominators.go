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
	"errors"
	"fmt"

	"github.com/awslabs/ar-go-flows/internal/graphutil"
)

// A DominatorOracle gives the immediate dominator of the statements of one method body.
type DominatorOracle interface {
	// ImmediateDominator returns the immediate dominator of s, or nil if s is the entry, is unreachable, or is not
	// a statement of the body.
	ImmediateDominator(s *Stmt) *Stmt
}

// Dominators is a DominatorOracle backed by a table of statement indices
type Dominators struct {
	body *Body
	idom []int
}

// ImmediateDominator implements DominatorOracle
func (d *Dominators) ImmediateDominator(s *Stmt) *Stmt {
	if !d.body.Contains(s) {
		return nil
	}
	i := d.idom[s.Index]
	if i == graphutil.NoDominator {
		return nil
	}
	return d.body.Stmts[i]
}

// Table returns a copy of the immediate dominator table: entry i is the index of the immediate dominator of the
// i-th statement, or -1.
func (d *Dominators) Table() []int {
	t := make([]int, len(d.idom))
	copy(t, d.idom)
	return t
}

// IsForest returns true when every dominator chain of the table ends at a statement without dominator.
func (d *Dominators) IsForest() bool {
	return graphutil.IsDominatorForest(d.idom)
}

// ControlFlowGraph returns the control-flow graph of body over statement indices
func ControlFlowGraph(body *Body) graphutil.IndexGraph {
	return graphutil.NewIndexGraph(len(body.Stmts), body.Successors)
}

// ComputeDominators computes the dominator tree of the control-flow graph of body, rooted at its first statement.
func ComputeDominators(body *Body) *Dominators {
	return &Dominators{
		body: body,
		idom: graphutil.ImmediateDominators(ControlFlowGraph(body), 0),
	}
}

// NewExplicitDominators returns the oracle for body whose table is idom, as supplied by another tool. The table
// must have one entry per statement, each entry being a statement index or -1. The table is not required to be a
// forest; see IsForest.
func NewExplicitDominators(body *Body, idom []int) (*Dominators, error) {
	if len(idom) != len(body.Stmts) {
		return nil, fmt.Errorf("dominator table has %d entries for %d statements", len(idom), len(body.Stmts))
	}
	for i, d := range idom {
		if d != graphutil.NoDominator && (d < 0 || d >= len(body.Stmts)) {
			return nil, fmt.Errorf("statement %d: dominator %d out of range", i, d)
		}
	}
	t := make([]int, len(idom))
	copy(t, idom)
	return &Dominators{body: body, idom: t}, nil
}

// ErrWalkLimit is returned by WalkDominators when a walk exceeds its step bound
var ErrWalkLimit = errors.New("dominator walk exceeded its step bound")

// WalkDominators calls visit on the strict dominators of start, nearest first, until visit returns true or the
// chain ends. It returns true iff visit stopped the walk. At most maxSteps dominators are visited when maxSteps is
// positive; a walk that would visit one more stops with ErrWalkLimit.
func WalkDominators(dom DominatorOracle, start *Stmt, maxSteps int, visit func(*Stmt) bool) (bool, error) {
	cur := start
	for steps := 0; ; steps++ {
		cur = dom.ImmediateDominator(cur)
		if cur == nil {
			return false, nil
		}
		if maxSteps > 0 && steps >= maxSteps {
			return false, ErrWalkLimit
		}
		if visit(cur) {
			return true, nil
		}
	}
}
