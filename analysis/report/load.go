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
	"os"
	"strconv"
	"strings"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"gopkg.in/yaml.v3"
)

// Results is what the upstream taint analysis hands over for one subject program
type Results struct {
	Subject   string
	Program   *ir.Program
	Raw       flows.RawResults
	Collected flows.Collected
}

// The hand-off document. Statements are referenced as "<method signature>#<index>".
type resultsDoc struct {
	Subject   string       `yaml:"subject"`
	Methods   []methodDoc  `yaml:"methods"`
	Flows     []sinkDoc    `yaml:"flows"`
	Collected collectedDoc `yaml:"collected"`
}

type methodDoc struct {
	Signature string    `yaml:"signature"`
	Stmts     []stmtDoc `yaml:"stmts"`
	// Dominators is the optional immediate dominator table of the body
	Dominators []int `yaml:"dominators,omitempty"`
}

type stmtDoc struct {
	Kind    string    `yaml:"kind"`
	Left    *valueDoc `yaml:"left,omitempty"`
	Right   *valueDoc `yaml:"right,omitempty"`
	Targets []int     `yaml:"targets,omitempty"`
}

type valueDoc struct {
	Kind      string     `yaml:"kind"`
	Name      string     `yaml:"name,omitempty"`
	Type      string     `yaml:"type,omitempty"`
	Signature string     `yaml:"signature,omitempty"`
	Base      *valueDoc  `yaml:"base,omitempty"`
	Args      []valueDoc `yaml:"args,omitempty"`
}

type sinkDoc struct {
	Sink    string      `yaml:"sink"`
	Sources []sourceDoc `yaml:"sources"`
}

type sourceDoc struct {
	Stmt string   `yaml:"stmt"`
	Path []string `yaml:"path,omitempty"`
}

type collectedDoc struct {
	Sources []string `yaml:"sources"`
	Sinks   []string `yaml:"sinks"`
}

// LoadResults reads the hand-off document at path. Explicit dominator tables that are not forests are accepted with
// a warning: the walks on them are bounded.
func LoadResults(path string, logger *config.LogGroup) (*Results, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	res, err := ParseResults(b, logger)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	return res, nil
}

// ParseResults parses a hand-off document
func ParseResults(b []byte, logger *config.LogGroup) (*Results, error) {
	var doc resultsDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal results: %w", err)
	}
	res := &Results{Subject: doc.Subject, Program: ir.NewProgram()}
	for _, md := range doc.Methods {
		m, err := md.method()
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", md.Signature, err)
		}
		if err := res.Program.AddMethod(m); err != nil {
			return nil, err
		}
		if md.Dominators != nil {
			dom, err := ir.NewExplicitDominators(m.Body, md.Dominators)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", md.Signature, err)
			}
			if !dom.IsForest() {
				logger.Warnf("dominator table of %s has a cycle: %v", md.Signature, dom.Table())
			}
			res.Program.SetDominators(m, dom)
		}
	}

	for _, sd := range doc.Flows {
		sink, err := res.stmt(sd.Sink)
		if err != nil {
			return nil, err
		}
		for _, src := range sd.Sources {
			source, err := res.stmt(src.Stmt)
			if err != nil {
				return nil, err
			}
			var path []*ir.Stmt
			for _, ref := range src.Path {
				s, err := res.stmt(ref)
				if err != nil {
					return nil, err
				}
				path = append(path, s)
			}
			res.Raw.Add(sink, source, path)
		}
	}

	var err error
	if res.Collected.Sources, err = res.stmts(doc.Collected.Sources); err != nil {
		return nil, err
	}
	if res.Collected.Sinks, err = res.stmts(doc.Collected.Sinks); err != nil {
		return nil, err
	}
	logger.Debugf("loaded %d methods, %d flows", len(doc.Methods), res.Raw.NumPairs())
	return res, nil
}

// stmt returns the statement referenced by ref
func (r *Results) stmt(ref string) (*ir.Stmt, error) {
	i := strings.LastIndex(ref, "#")
	if i < 0 {
		return nil, fmt.Errorf("statement reference %q: expected method#index", ref)
	}
	m, ok := r.Program.Method(ref[:i])
	if !ok {
		return nil, fmt.Errorf("statement reference %q: unknown method", ref)
	}
	index, err := strconv.Atoi(ref[i+1:])
	if err != nil || index < 0 || index >= len(m.Body.Stmts) {
		return nil, fmt.Errorf("statement reference %q: bad index", ref)
	}
	return m.Body.Stmts[index], nil
}

func (r *Results) stmts(refs []string) ([]*ir.Stmt, error) {
	var stmts []*ir.Stmt
	for _, ref := range refs {
		s, err := r.stmt(ref)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (md methodDoc) method() (*ir.Method, error) {
	stmts := make([]*ir.Stmt, len(md.Stmts))
	for i, sd := range md.Stmts {
		s, err := sd.stmt()
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		stmts[i] = s
	}
	return ir.NewMethod(md.Signature, stmts...), nil
}

func (sd stmtDoc) stmt() (*ir.Stmt, error) {
	kind, err := ir.ParseStmtKind(sd.Kind)
	if err != nil {
		return nil, err
	}
	s := &ir.Stmt{Kind: kind, Targets: sd.Targets}
	if s.Left, err = sd.Left.value(); err != nil {
		return nil, err
	}
	if s.Right, err = sd.Right.value(); err != nil {
		return nil, err
	}
	switch kind {
	case ir.Assign, ir.Identity:
		if s.Left == nil || s.Right == nil {
			return nil, fmt.Errorf("%s without left or right value", kind)
		}
	case ir.InvokeStmt:
		if s.Right == nil || s.Right.Kind != ir.KindInvoke {
			return nil, fmt.Errorf("invoke statement without invocation")
		}
	case ir.If, ir.Goto:
		if len(s.Targets) == 0 {
			return nil, fmt.Errorf("%s without target", kind)
		}
	}
	return s, nil
}

func (vd *valueDoc) value() (*ir.Value, error) {
	if vd == nil {
		return nil, nil
	}
	kind, err := ir.ParseValueKind(vd.Kind)
	if err != nil {
		return nil, err
	}
	v := &ir.Value{Kind: kind, Name: vd.Name, Type: vd.Type, Signature: vd.Signature}
	if v.Base, err = vd.Base.value(); err != nil {
		return nil, err
	}
	for i := range vd.Args {
		arg, err := vd.Args[i].value()
		if err != nil {
			return nil, err
		}
		v.Args = append(v.Args, *arg)
	}
	return v, nil
}
