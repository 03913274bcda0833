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

package resolve

import (
	"github.com/awslabs/ar-go-flows/analysis/classify"
	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
)

// A Resolver resolves the resource handles of accessor calls to the values they were assigned earlier in the
// same method. Resolution never fails: when no value is found, the signature of the call is returned unchanged.
type Resolver struct {
	classifier *classify.Classifier
	logger     *config.LogGroup
	maxSteps   int
}

// New returns a resolver using classifier to recognize accessors and handle constructors. Every dominator walk is
// bounded by maxSteps; maxSteps <= 0 selects config.DefaultMaxDominatorWalk.
func New(classifier *classify.Classifier, logger *config.LogGroup, maxSteps int) *Resolver {
	if maxSteps <= 0 {
		maxSteps = config.DefaultMaxDominatorWalk
	}
	return &Resolver{classifier: classifier, logger: logger, maxSteps: maxSteps}
}

// NewFromConfig returns the resolver for the vocabulary and walk bound of cfg
func NewFromConfig(cfg *config.Config, logger *config.LogGroup) *Resolver {
	return New(classify.New(cfg.Vocabulary), logger, cfg.MaxDominatorWalk)
}

// Classifier returns the classifier of the resolver
func (r *Resolver) Classifier() *classify.Classifier {
	return r.classifier
}

// ResolveSource returns the signature of the call in stmt, specialized with the resolved handle when the callee is
// a resource accessor:
//   - a read accessor is resolved through the accessor call that produced the row it reads (ResolveViaUse)
//   - an IO accessor is resolved from its handle argument (ResolveHandle)
//
// Any other call has its signature returned unmodified. stmt must contain an invocation.
func (r *Resolver) ResolveSource(dom ir.DominatorOracle, stmt *ir.Stmt) string {
	call := stmt.InvokeExpr()
	if call == nil {
		return ""
	}
	switch {
	case r.classifier.IsResourceReadAccessor(call.Signature):
		return r.ResolveViaUse(dom, stmt, call.Signature)
	case r.classifier.IsResourceIoAccessor(call.Signature):
		return r.ResolveHandle(dom, stmt, call.Signature, call.Args)
	default:
		return call.Signature
	}
}

// ResolveViaUse resolves the handle of a read accessor call. use must be an assignment whose right-hand side reads
// from a local (its last operand, e.g. the receiver cursor). The walk goes up the dominators of use and stops at the
// first assignment of that local by an IO accessor call; the handle of that call is then resolved with
// ResolveHandle. If there is no such assignment, signature is returned unchanged.
func (r *Resolver) ResolveViaUse(dom ir.DominatorOracle, use *ir.Stmt, signature string) string {
	if !use.IsAssign() {
		return signature
	}
	target, ok := use.Right.LastOperand()
	if !ok || !target.IsLocal() {
		return signature
	}

	resolved := signature
	trace := r.logger.Level() >= config.TraceLevel
	_, err := ir.WalkDominators(dom, use, r.maxSteps, func(s *ir.Stmt) bool {
		if trace {
			r.logger.Tracef("resolve %s: visiting %s", target.Name, s)
		}
		if !s.IsAssign() || !s.Left.Equal(target) {
			return false
		}
		call := s.InvokeExpr()
		if call == nil || !r.classifier.IsResourceIoAccessor(call.Signature) {
			return false
		}
		resolved = r.ResolveHandle(dom, s, call.Signature, call.Args)
		return true
	})
	if err != nil {
		r.logger.Warnf("resolution of %s stopped: %v", use, err)
	}
	return resolved
}

// ResolveHandle resolves the handle passed as first argument of the accessor call at stmt, whose signature is
// signature. The handle must be a local of the handle type (or of unknown type); any other argument is not
// resolved. When a value is found, the returned signature has the handle type token replaced by the value.
func (r *Resolver) ResolveHandle(dom ir.DominatorOracle, at *ir.Stmt, signature string, args []ir.Value) string {
	if len(args) == 0 {
		return signature
	}
	seed := args[0]
	if !seed.IsLocal() || (seed.Type != "" && seed.Type != r.classifier.HandleType()) {
		return signature
	}
	value := r.ExtractHandleValue(dom, at, seed)
	if value.IsNone() {
		return signature
	}
	resolved := funcutil.MapOption(value, func(v string) string {
		return SubstituteHandle(signature, r.classifier.HandleType(), v)
	}).Value()
	r.logger.Debugf("resolved %s to %s", signature, resolved)
	return resolved
}

// ExtractHandleValue walks up the dominators of at, looking for the definition of local. It returns the normalized
// handle value if the nearest definition builds the handle from a constant token or reads it from a field, and none
// otherwise.
func (r *Resolver) ExtractHandleValue(dom ir.DominatorOracle, at *ir.Stmt, local ir.Value) funcutil.Optional[string] {
	f := r.search(dom, at, local)
	if f.result.IsNone() {
		r.logger.Debugf("handle %s at %s not resolved: %s", local.Name, at, f.reason)
	}
	return f.result
}

// search runs the finder from at and returns its final state
func (r *Resolver) search(dom ir.DominatorOracle, at *ir.Stmt, local ir.Value) *finder {
	f := &finder{classifier: r.classifier, tracked: local, result: funcutil.None[string]()}
	trace := r.logger.Level() >= config.TraceLevel
	_, err := ir.WalkDominators(dom, at, r.maxSteps, func(s *ir.Stmt) bool {
		if trace {
			r.logger.Tracef("find %s: visiting %s", f.tracked.Name, s)
		}
		return f.visit(s)
	})
	if err != nil {
		r.logger.Warnf("handle search from %s stopped: %v", at, err)
		f.result = funcutil.None[string]()
		f.reason = noDefinition
	}
	return f
}
