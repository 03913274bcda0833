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
	"strings"

	"github.com/awslabs/ar-go-flows/analysis/classify"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
)

// finder is the state of a backward search for the definition of a handle. It is driven by a dominator walk: visit
// is called on every dominator, nearest first, and returns true when the search is over.
type finder struct {
	classifier *classify.Classifier

	// tracked is the local whose definition is searched. It changes when the handle is copied from another local,
	// or built from a string local.
	tracked ir.Value

	result funcutil.Optional[string]

	// reason is why the search ended without a value
	reason unresolvedReason
}

// unresolvedReason tells why the definition of a handle gives no value
type unresolvedReason int

const (
	// noDefinition: the walk ended, or reached its bound, before any definition
	noDefinition unresolvedReason = iota
	// fromParameter: the handle is a parameter or the receiver of the method
	fromParameter
	// nullHandle: the handle is null
	nullHandle
	// builtTextually: the handle or its token is built by a concatenation or a concat builder
	builtTextually
	// fromCall: the handle is returned by a call outside of the vocabulary
	fromCall
	// opaqueValue: the handle is computed by any other expression
	opaqueValue
)

var unresolvedReasonNames = [...]string{
	noDefinition:   "no definition",
	fromParameter:  "parameter",
	nullHandle:     "null",
	builtTextually: "built textually",
	fromCall:       "returned by a call",
	opaqueValue:    "opaque value",
}

func (r unresolvedReason) String() string {
	return unresolvedReasonNames[r]
}

// visit inspects one statement. Only assignments and identities of the tracked local are relevant; the nearest one
// decides the result.
//
//gocyclo:ignore
func (f *finder) visit(s *ir.Stmt) bool {
	switch s.Kind {
	case ir.Assign:
		if s.Left == nil || s.Right == nil || !s.Left.Equal(f.tracked) {
			return false
		}
	case ir.Identity:
		// the handle is a parameter or the receiver: it is defined in another method
		if s.Left != nil && s.Left.Equal(f.tracked) {
			f.reason = fromParameter
			return true
		}
		return false
	default:
		return false
	}

	rhs := *s.Right
	switch rhs.Kind {
	case ir.KindInvoke:
		if f.classifier.IsHandleConstructor(rhs.Signature) {
			return f.constructedFrom(rhs.Args)
		}
		if f.classifier.IsConcatBuilder(rhs.Signature) {
			f.reason = builtTextually
		} else {
			f.reason = fromCall
		}
		return true
	case ir.KindField:
		f.result = funcutil.Some(Normalize(rhs.Name))
		return true
	case ir.KindConstant:
		f.constant(rhs.Name)
		return true
	case ir.KindLocal:
		f.tracked = rhs
		return false
	case ir.KindConcat:
		f.reason = builtTextually
		return true
	default:
		f.reason = opaqueValue
		return true
	}
}

// constructedFrom handles a handle constructor call: a constant token is the value of the handle, a local token
// becomes the tracked local.
func (f *finder) constructedFrom(args []ir.Value) bool {
	if len(args) == 0 {
		f.reason = opaqueValue
		return true
	}
	token := args[0]
	switch token.Kind {
	case ir.KindConstant:
		f.constant(token.Name)
		return true
	case ir.KindField:
		f.result = funcutil.Some(Normalize(token.Name))
		return true
	case ir.KindLocal:
		f.tracked = token
		return false
	case ir.KindConcat:
		f.reason = builtTextually
		return true
	default:
		f.reason = opaqueValue
		return true
	}
}

func (f *finder) constant(lit string) {
	if IsNull(lit) {
		f.reason = nullHandle
		return
	}
	f.result = funcutil.Some(Normalize(lit))
}

// IsNull returns true for the null constant, written null or nil
func IsNull(constant string) bool {
	return constant == "null" || constant == "nil"
}

// Normalize returns the bare form of a handle token: quotes around constants and the angle brackets around
// references are removed, and a field reference "<C: T NAME>" becomes "C.NAME".
func Normalize(token string) string {
	s := strings.TrimSpace(token)
	if len(s) >= 2 && strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		if owner := ir.DeclaringType(s); owner != "" {
			sub := ir.SubSignature(s)
			if i := strings.LastIndex(sub, " "); i >= 0 && !strings.Contains(sub, "(") {
				return owner + "." + sub[i+1:]
			}
		}
	}
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

// SubstituteHandle replaces the handle type token of the first parameter of signature with value. If the first
// parameter of signature does not have the handle type, signature is returned unchanged.
func SubstituteHandle(signature string, handleType string, value string) string {
	if handleType == "" {
		return signature
	}
	value = strings.NewReplacer("<", "", ">", "").Replace(value)
	for _, closing := range []string{",", ")"} {
		token := "(" + handleType + closing
		if strings.Contains(signature, token) {
			return strings.Replace(signature, token, "("+value+closing, 1)
		}
	}
	return signature
}
