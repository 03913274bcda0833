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

// ValueKind is the tag of a Value
type ValueKind int

const (
	// KindOther is any value the analyses do not inspect (casts, arithmetic, allocations, ...)
	KindOther ValueKind = iota
	// KindLocal is a local variable of the method
	KindLocal
	// KindConstant is a literal constant, in its display form (e.g. "content://sms" with the quotes)
	KindConstant
	// KindField is a static or instance field reference, in its display form (e.g. <C: T NAME>)
	KindField
	// KindInvoke is a method invocation
	KindInvoke
	// KindConcat is a string concatenation of its arguments
	KindConcat
)

var valueKindNames = [...]string{
	KindOther:    "other",
	KindLocal:    "local",
	KindConstant: "const",
	KindField:    "field",
	KindInvoke:   "invoke",
	KindConcat:   "concat",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindNames) {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return valueKindNames[k]
}

// ParseValueKind returns the kind whose name is s
func ParseValueKind(s string) (ValueKind, error) {
	for k, name := range valueKindNames {
		if name == s {
			return ValueKind(k), nil
		}
	}
	return KindOther, fmt.Errorf("unknown value kind %q", s)
}

// A Value is an operand or right-hand side expression of a statement. The fields that are meaningful depend on the
// Kind:
//   - KindLocal: Name is the local's name, Type its declared type (optional)
//   - KindConstant, KindField, KindOther: Name is the display form, Type the type (optional)
//   - KindInvoke: Signature is the callee, Base the receiver (nil for static calls) and Args the arguments
//   - KindConcat: Args are the concatenated parts
type Value struct {
	Kind      ValueKind
	Name      string
	Type      string
	Signature string
	Base      *Value
	Args      []Value
}

// NewLocal returns a local variable value
func NewLocal(name string, typ string) Value {
	return Value{Kind: KindLocal, Name: name, Type: typ}
}

// NewConstant returns a constant value. lit is the display form of the constant.
func NewConstant(lit string) Value {
	return Value{Kind: KindConstant, Name: lit}
}

// NewStringConstant returns a string constant value displayed with quotes
func NewStringConstant(s string) Value {
	return Value{Kind: KindConstant, Name: fmt.Sprintf("%q", s), Type: "java.lang.String"}
}

// NewField returns a field reference value
func NewField(ref string, typ string) Value {
	return Value{Kind: KindField, Name: ref, Type: typ}
}

// NewInvoke returns an invocation of the method with the given signature. base is nil for static invocations.
func NewInvoke(signature string, base *Value, args ...Value) Value {
	return Value{Kind: KindInvoke, Signature: signature, Base: base, Args: args}
}

// NewConcat returns the concatenation of parts
func NewConcat(parts ...Value) Value {
	return Value{Kind: KindConcat, Args: parts}
}

// NewOther returns an opaque value with the given display form
func NewOther(text string) Value {
	return Value{Kind: KindOther, Name: text}
}

// IsLocal returns true when v is a local variable
func (v Value) IsLocal() bool {
	return v.Kind == KindLocal
}

// Operands returns the values used by v, in the order the upstream analysis reports them: the arguments first,
// and the receiver of an instance invocation last.
func (v Value) Operands() []Value {
	switch v.Kind {
	case KindInvoke:
		ops := make([]Value, 0, len(v.Args)+1)
		ops = append(ops, v.Args...)
		if v.Base != nil {
			ops = append(ops, *v.Base)
		}
		return ops
	case KindConcat:
		return v.Args
	default:
		return nil
	}
}

// LastOperand returns the last operand of v, if v has any
func (v Value) LastOperand() (Value, bool) {
	ops := v.Operands()
	if len(ops) == 0 {
		return Value{}, false
	}
	return ops[len(ops)-1], true
}

// Equal is structural equality. Locals are equal when their names are equal.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}
	switch v.Kind {
	case KindLocal:
		return v.Name == w.Name
	case KindInvoke:
		if v.Signature != w.Signature || (v.Base == nil) != (w.Base == nil) {
			return false
		}
		if v.Base != nil && !v.Base.Equal(*w.Base) {
			return false
		}
		return valuesEqual(v.Args, w.Args)
	case KindConcat:
		return valuesEqual(v.Args, w.Args)
	default:
		return v.Name == w.Name && v.Type == w.Type
	}
}

func valuesEqual(a []Value, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	switch v.Kind {
	case KindInvoke:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = a.String()
		}
		if v.Base != nil {
			return fmt.Sprintf("virtualinvoke %s.%s(%s)", v.Base.String(), v.Signature, strings.Join(args, ", "))
		}
		return fmt.Sprintf("staticinvoke %s(%s)", v.Signature, strings.Join(args, ", "))
	case KindConcat:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = a.String()
		}
		return strings.Join(parts, " + ")
	default:
		return v.Name
	}
}
