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

// Package graphutil adapts the small index-based graphs used by the analyses (control-flow graphs over statement
// indices, dominator tables) to the gonum and yourbasic graph libraries.
package graphutil

import (
	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// IndexGraph is a directed graph over the nodes 0..Order()-1, stored as adjacency lists. It implements the
// graph.Iterator interface of github.com/yourbasic/graph.
type IndexGraph struct {
	// Succs[v] lists the successors of v, in insertion order
	Succs [][]int
}

// NewIndexGraph returns the graph with n nodes whose successors are given by succs. Successors outside of
// [0, n) are dropped.
func NewIndexGraph(n int, succs func(int) []int) IndexGraph {
	g := IndexGraph{Succs: make([][]int, n)}
	for v := 0; v < n; v++ {
		for _, w := range succs(v) {
			if w >= 0 && w < n {
				g.Succs[v] = append(g.Succs[v], w)
			}
		}
	}
	return g
}

// Order implements the order of the graph.Iterator interface
func (g IndexGraph) Order() int {
	return len(g.Succs)
}

// Visit implements the graph.Iterator interface
func (g IndexGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(g.Succs) {
		return false
	}
	for _, w := range g.Succs[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// Reachable returns the set of nodes reachable from root, root included
func (g IndexGraph) Reachable(root int) []bool {
	reached := make([]bool, g.Order())
	if root < 0 || root >= g.Order() {
		return reached
	}
	reached[root] = true
	graph.BFS(g, root, func(_, w int, _ int64) {
		reached[w] = true
	})
	return reached
}

// Directed returns the gonum representation of g. Self edges are dropped: they do not change dominance and the
// simple graphs of gonum do not accept them.
func (g IndexGraph) Directed() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for v := range g.Succs {
		dg.AddNode(simple.Node(v))
	}
	for v, ws := range g.Succs {
		for _, w := range ws {
			if v != w {
				dg.SetEdge(simple.Edge{F: simple.Node(v), T: simple.Node(w)})
			}
		}
	}
	return dg
}
