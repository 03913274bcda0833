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

package report

import (
	"fmt"
	"io"

	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

const (
	toolName = "argot-flows"
	toolURI  = "https://github.com/awslabs/ar-go-flows"
)

// WriteSARIF writes records as a SARIF 2.1.0 log with one run. Every sink signature is a rule; every record is a
// result of the rule of its sink, located at the caller of its source, with its path as a code flow. Placeholder
// records are notes, flows are warnings.
func WriteSARIF(w io.Writer, subject string, records []flows.Record) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	rules := map[string]bool{}
	for _, r := range records {
		rules[r.Sink.Signature] = true
	}
	for _, ruleID := range funcutil.SetToOrderedSlice(rules) {
		run.AddRule(ruleID).WithDescription(fmt.Sprintf("data flowing to %s", ruleID))
	}
	for _, r := range records {
		result := sarif.NewRuleResult(r.Sink.Signature).
			WithMessage(sarif.NewTextMessage(r.String())).
			WithLevel(sarifLevel(r)).
			WithLocations([]*sarif.Location{methodLocation(callerOf(r), "")})
		if len(r.Path) > 0 {
			result.CodeFlows = []*sarif.CodeFlow{codeFlow(r.Path)}
		}
		result.PropertyBag = *sarif.NewPropertyBag()
		result.Add("subject", subject)
		result.Add("source", r.Source.Signature)
		result.Add("sourceCaller", r.Source.Caller)
		result.Add("sink", r.Sink.Signature)
		result.Add("sinkCaller", r.Sink.Caller)
		if !r.Sink.Intent.IsEmpty() {
			result.Add("intent", r.Sink.Intent.String())
		}
		run.AddResult(result)
	}
	rep.AddRun(run)
	return rep.PrettyWrite(w)
}

func sarifLevel(r flows.Record) string {
	if r.Source.IsPlaceholder() || r.Sink.IsPlaceholder() {
		return "note"
	}
	return "warning"
}

// callerOf returns the method a result is reported in: the caller of the source, or the caller of the sink for sinks
// without source
func callerOf(r flows.Record) string {
	if r.IsUnmatchedSink() {
		return r.Sink.Caller
	}
	return r.Source.Caller
}

func methodLocation(method string, text string) *sarif.Location {
	kind := "function"
	loc := sarif.NewLocation()
	loc.LogicalLocations = []*sarif.LogicalLocation{{FullyQualifiedName: &method, Kind: &kind}}
	if text != "" {
		loc.Message = sarif.NewTextMessage(text)
	}
	return loc
}

func codeFlow(path []flows.PathItem) *sarif.CodeFlow {
	locations := funcutil.Map(path, func(item flows.PathItem) *sarif.ThreadFlowLocation {
		return &sarif.ThreadFlowLocation{
			Location: methodLocation(item.CallerMethod, fmt.Sprintf("%d: %s", item.Index, item.Stmt)),
		}
	})
	return &sarif.CodeFlow{ThreadFlows: []*sarif.ThreadFlow{{Locations: locations}}}
}
