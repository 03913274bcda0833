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

// Package intents collects the context of the launch sinks (startActivity and its variants): the action, target
// component, data and extras of the intent passed to the launch operation, when they are set from constants in the
// method of the call.
package intents

import (
	"fmt"
	"strings"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
)

// Analyzer implements flows.SinkEnricher
type Analyzer struct {
	resolver *resolve.Resolver
	logger   *config.LogGroup
	maxSteps int
}

// New returns an intent analyzer. The data handles of intents are resolved with resolver.
func New(resolver *resolve.Resolver, logger *config.LogGroup, maxSteps int) *Analyzer {
	if maxSteps <= 0 {
		maxSteps = config.DefaultMaxDominatorWalk
	}
	return &Analyzer{resolver: resolver, logger: logger, maxSteps: maxSteps}
}

// Enrich returns what is known of the intent argument of the launch call in sink. The dominators of sink are
// visited backward until the construction of the intent. Only the nearest call of each setter is considered, since
// it determines the value at the launch.
func (a *Analyzer) Enrich(dom ir.DominatorOracle, sink *ir.Stmt, caller *ir.Method) (*flows.IntentInfo, error) {
	call := sink.InvokeExpr()
	if call == nil {
		return nil, fmt.Errorf("%s is not a call", sink)
	}
	arg, found := intentArgument(call)
	if !found {
		return nil, fmt.Errorf("no intent argument in %s", call.Signature)
	}
	if !arg.IsLocal() {
		return nil, fmt.Errorf("intent argument %s is not a local", arg)
	}

	c := &collector{analyzer: a, dom: dom, tracked: arg, info: &flows.IntentInfo{}}
	_, err := ir.WalkDominators(dom, sink, a.maxSteps, c.visit)
	if err != nil {
		a.logger.Warnf("intent search in %s stopped: %v", caller, err)
	}
	// keys were collected backward
	for i, j := 0, len(c.info.ExtraKeys)-1; i < j; i, j = i+1, j-1 {
		c.info.ExtraKeys[i], c.info.ExtraKeys[j] = c.info.ExtraKeys[j], c.info.ExtraKeys[i]
	}
	a.logger.Debugf("intent of %s in %s: %s", call.Signature, caller, c.info)
	return c.info, nil
}

func intentArgument(call *ir.Value) (ir.Value, bool) {
	for _, arg := range call.Args {
		if arg.Type == config.IntentType {
			return arg, true
		}
	}
	// all launch operations take the intent first
	if len(call.Args) > 0 && call.Args[0].Type == "" {
		return call.Args[0], true
	}
	return ir.Value{}, false
}

type collector struct {
	analyzer *Analyzer
	dom      ir.DominatorOracle
	tracked  ir.Value
	info     *flows.IntentInfo
}

func (c *collector) visit(s *ir.Stmt) bool {
	if s.IsAssign() && s.Left.Equal(c.tracked) {
		if s.Right.IsLocal() {
			c.tracked = *s.Right
			return false
		}
		// the allocation, whose constructor call has been visited already, or an intent obtained from a call
		return true
	}
	call := s.InvokeExpr()
	if call == nil || call.Base == nil || !call.Base.Equal(c.tracked) {
		return false
	}
	if ir.DeclaringType(call.Signature) != config.IntentType {
		return false
	}
	args := call.Args
	switch MethodName(call.Signature) {
	case "<init>":
		c.constructor(s, args)
		return true
	case "setAction":
		c.set(&c.info.Action, stringArg(args, 0))
	case "setClassName", "setClass":
		c.set(&c.info.Target, classArg(args, 1))
	case "setComponent":
		c.set(&c.info.Target, stringArg(args, 0))
	case "setData":
		c.set(&c.info.Data, c.dataArg(s, args, 0))
	case "setType":
		c.set(&c.info.MimeType, stringArg(args, 0))
	case "setDataAndType":
		c.set(&c.info.Data, c.dataArg(s, args, 0))
		c.set(&c.info.MimeType, stringArg(args, 1))
	case "putExtra":
		if key := stringArg(args, 0); key.IsSome() && !funcutil.Contains(c.info.ExtraKeys, key.Value()) {
			c.info.ExtraKeys = append(c.info.ExtraKeys, key.Value())
		}
	}
	return false
}

// constructor reads the arguments of the Intent constructors:
// Intent(String action), Intent(String action, Uri data), Intent(Context, Class) and
// Intent(String action, Uri data, Context, Class)
func (c *collector) constructor(s *ir.Stmt, args []ir.Value) {
	switch len(args) {
	case 1:
		c.set(&c.info.Action, stringArg(args, 0))
	case 2:
		if args[1].Type == "java.lang.Class" || strings.HasPrefix(args[1].Name, "class ") {
			c.set(&c.info.Target, classArg(args, 1))
		} else {
			c.set(&c.info.Action, stringArg(args, 0))
			c.set(&c.info.Data, c.dataArg(s, args, 1))
		}
	case 4:
		c.set(&c.info.Action, stringArg(args, 0))
		c.set(&c.info.Data, c.dataArg(s, args, 1))
		c.set(&c.info.Target, classArg(args, 3))
	}
}

// set sets the field if it is not set yet: the setter nearest to the launch wins
func (c *collector) set(field *string, value funcutil.Optional[string]) {
	if *field == "" && value.IsSome() {
		*field = value.Value()
	}
}

func (c *collector) dataArg(s *ir.Stmt, args []ir.Value, i int) funcutil.Optional[string] {
	if i >= len(args) {
		return funcutil.None[string]()
	}
	if args[i].IsLocal() {
		return c.analyzer.resolver.ExtractHandleValue(c.dom, s, args[i])
	}
	return stringArg(args, i)
}

func stringArg(args []ir.Value, i int) funcutil.Optional[string] {
	if i >= len(args) {
		return funcutil.None[string]()
	}
	switch args[i].Kind {
	case ir.KindConstant:
		if resolve.IsNull(args[i].Name) {
			return funcutil.None[string]()
		}
		return funcutil.Some(resolve.Normalize(args[i].Name))
	case ir.KindField:
		return funcutil.Some(resolve.Normalize(args[i].Name))
	default:
		return funcutil.None[string]()
	}
}

// classArg reads a class constant, written class "Lcom/example/Target;", or a class name
func classArg(args []ir.Value, i int) funcutil.Optional[string] {
	if i >= len(args) || args[i].Kind != ir.KindConstant {
		return stringArg(args, i)
	}
	name := args[i].Name
	if !strings.HasPrefix(name, "class ") {
		return stringArg(args, i)
	}
	name = strings.Trim(strings.TrimPrefix(name, "class "), "\"")
	name = strings.TrimSuffix(strings.TrimPrefix(name, "L"), ";")
	return funcutil.Some(strings.ReplaceAll(name, "/", "."))
}

// MethodName returns the name of the method of a "<C: R name(P)>" signature
func MethodName(signature string) string {
	sub := ir.SubSignature(signature)
	if i := strings.Index(sub, "("); i >= 0 {
		sub = sub[:i]
	}
	return sub[strings.LastIndex(sub, " ")+1:]
}
