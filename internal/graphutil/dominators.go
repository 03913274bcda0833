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

package graphutil

import (
	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"
)

// NoDominator marks the entry node and the nodes unreachable from it in a dominator table
const NoDominator = -1

// ImmediateDominators computes the immediate dominator of every node of g with respect to root. The result idom
// satisfies idom[v] = NoDominator iff v == root or v is not reachable from root.
func ImmediateDominators(g IndexGraph, root int) []int {
	idom := make([]int, g.Order())
	for v := range idom {
		idom[v] = NoDominator
	}
	if root < 0 || root >= g.Order() {
		return idom
	}
	reached := g.Reachable(root)
	tree := flow.Dominators(simple.Node(root), g.Directed())
	for v := range idom {
		if v == root || !reached[v] {
			continue
		}
		if d := tree.DominatorOf(int64(v)); d != nil {
			idom[v] = int(d.ID())
		}
	}
	return idom
}

// IdomGraph returns the graph with an edge v -> idom[v] for every node v that has an immediate dominator in the
// table. Entries outside of the table are dropped.
func IdomGraph(idom []int) IndexGraph {
	return NewIndexGraph(len(idom), func(v int) []int {
		if idom[v] == NoDominator {
			return nil
		}
		return []int{idom[v]}
	})
}

// IsDominatorForest returns true when following immediate dominators from any node always terminates, i.e. the
// table describes a forest. A table computed by ImmediateDominators always is one, tables supplied by other tools
// may not be.
func IsDominatorForest(idom []int) bool {
	g := IdomGraph(idom)
	for v, ws := range g.Succs {
		for _, w := range ws {
			if v == w {
				return false
			}
		}
	}
	return graph.Acyclic(g)
}
