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

package flows

import (
	"github.com/awslabs/ar-go-flows/analysis/ir"
)

// RawResults are the flows found by the upstream taint analysis: a multimap from sink statements to the source
// statements flowing into them. Sinks and sources are kept in the order the analysis reported them.
type RawResults struct {
	Sinks []RawSink
}

// A RawSink is a sink statement with the sources that flow into it
type RawSink struct {
	Stmt    *ir.Stmt
	Sources []RawSource
}

// A RawSource is a source statement, with the statements the data goes through on its way to the sink (possibly
// none)
type RawSource struct {
	Stmt *ir.Stmt
	Path []*ir.Stmt
}

// Add adds a flow from source to sink, through path. A sink that was already added keeps its position.
func (r *RawResults) Add(sink *ir.Stmt, source *ir.Stmt, path []*ir.Stmt) {
	for i := range r.Sinks {
		if r.Sinks[i].Stmt == sink {
			r.Sinks[i].Sources = append(r.Sinks[i].Sources, RawSource{Stmt: source, Path: path})
			return
		}
	}
	r.Sinks = append(r.Sinks, RawSink{Stmt: sink, Sources: []RawSource{{Stmt: source, Path: path}}})
}

// NumPairs returns the number of (sink, source) pairs
func (r RawResults) NumPairs() int {
	n := 0
	for _, sink := range r.Sinks {
		n += len(sink.Sources)
	}
	return n
}

// Collected holds every statement the upstream analysis classified as a source or as a sink, whether or not it
// appears in a flow. The consolidation only reads it.
type Collected struct {
	Sources []*ir.Stmt
	Sinks   []*ir.Stmt
}

// An Oracle answers the queries of the consolidation about the subject program. *ir.Program implements Oracle.
type Oracle interface {
	// MethodOf returns the method containing the statement
	MethodOf(s *ir.Stmt) (*ir.Method, bool)

	// Dominators returns the dominator oracle of the body of the method
	Dominators(m *ir.Method) (ir.DominatorOracle, error)
}
