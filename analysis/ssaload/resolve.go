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
	"go/token"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ssa"
)

// A Resolution is the result of resolving one accessor call site
type Resolution struct {
	// Caller is the signature of the function containing the call
	Caller string
	// Position is the position of the call in the source
	Position token.Position
	// Call is the signature of the callee
	Call string
	// Resolved is Call with the handle replaced by its value, or Call when the handle is not resolved
	Resolved string
}

// IsResolved returns true when the handle of the call has been resolved
func (r Resolution) IsResolved() bool {
	return r.Call != r.Resolved
}

func (r Resolution) String() string {
	return fmt.Sprintf("%s: %s in %s", r.Position, r.Resolved, r.Caller)
}

// NewProgram converts the functions fns and returns the program containing them. The dominators of every method are
// those of the SSA blocks.
func NewProgram(fns []*ssa.Function) (*ir.Program, []*Function, error) {
	p := ir.NewProgram()
	converted := make([]*Function, 0, len(fns))
	for _, fn := range fns {
		f, err := FromFunction(fn)
		if err != nil {
			return nil, nil, err
		}
		if err := p.AddMethod(f.Method); err != nil {
			return nil, nil, err
		}
		p.SetDominators(f.Method, f.Dominators)
		converted = append(converted, f)
	}
	return p, converted, nil
}

// ResolveFunctions resolves the handles of every accessor call in fns. Calls on a line marked by an ignore directive
// are skipped. The resolutions are ordered by caller, then by position in the caller.
func ResolveFunctions(fset *token.FileSet, fns []*ssa.Function, directives Directives,
	resolver *resolve.Resolver, logger *config.LogGroup) ([]Resolution, error) {
	sorted := slices.Clone(fns)
	slices.SortFunc(sorted, func(a, b *ssa.Function) bool { return a.String() < b.String() })

	_, converted, err := NewProgram(sorted)
	if err != nil {
		return nil, err
	}

	classifier := resolver.Classifier()
	var res []Resolution
	for _, f := range converted {
		for i, s := range f.Method.Body.Stmts {
			call := s.InvokeExpr()
			if call == nil ||
				!(classifier.IsResourceIoAccessor(call.Signature) || classifier.IsResourceReadAccessor(call.Signature)) {
				continue
			}
			pos := fset.Position(f.Positions[i])
			if directives.Ignores(pos) {
				logger.Debugf("ignoring %s at %s", call.Signature, pos)
				continue
			}
			r := Resolution{
				Caller:   f.Method.Signature,
				Position: pos,
				Call:     call.Signature,
				Resolved: resolver.ResolveSource(f.Dominators, s),
			}
			logger.Tracef("%s", r)
			res = append(res, r)
		}
	}
	logger.Infof("Resolved %d of %d accessor calls", countResolved(res), len(res))
	return res, nil
}

func countResolved(res []Resolution) int {
	n := 0
	for _, r := range res {
		if r.IsResolved() {
			n++
		}
	}
	return n
}
