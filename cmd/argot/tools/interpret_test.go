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

package tools

import (
	"strings"
	"testing"
)

func validateHint(t *testing.T, errorMsg string, containedHint string) {
	hint := HintForErrorMessage(errorMsg)
	if !strings.Contains(hint, containedHint) {
		t.Fatalf("incorrect hint; check and update error message if necessary")
	}
}

func TestHintForFlagAfterFiles(t *testing.T) {
	errorMsg := "error: could not load program:\n -: named files must be .go files: -v"
	containedHint := "all command line flags should be before the path"
	validateHint(t, errorMsg, containedHint)
}

func TestHintForFailedLoadProgram(t *testing.T) {
	errorMsg := "error: could not load program:\n errors found, exiting\n"
	containedHint := "you have provided the right arguments for an analyzer to load a Go program"
	validateHint(t, errorMsg, containedHint)
}

func TestHintForBadStatementReference(t *testing.T) {
	errorMsg := "error: could not read results: could not load results.yaml: " +
		"statement reference \"<com.example.Main: void onCreate(android.os.Bundle)>\": expected method#index"
	containedHint := "statements are referenced as <method signature>#<index>"
	validateHint(t, errorMsg, containedHint)
}

func TestHintForUnreadableResults(t *testing.T) {
	errorMsg := "error: could not read results: could not unmarshal results: yaml: line 3"
	containedHint := "the yaml document written by the taint analysis"
	validateHint(t, errorMsg, containedHint)
}

func TestNoHint(t *testing.T) {
	if hint := HintForErrorMessage("error: something else"); hint != "" {
		t.Errorf("expected no hint, got %q", hint)
	}
}

func TestParseCommonFlags(t *testing.T) {
	flags, err := NewUnparsedCommonFlags("test").Parse([]string{"-config", "c.yaml", "-verbose", "results.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.ConfigPath != "c.yaml" || !flags.Verbose {
		t.Errorf("unexpected flags %+v", flags)
	}
	if args := flags.FlagSet.Args(); len(args) != 1 || args[0] != "results.yaml" {
		t.Errorf("unexpected arguments %v", args)
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig(CommonFlags{Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Verbose() {
		t.Errorf("expected -verbose to raise the log level")
	}
	if len(cfg.Vocabulary.ResourceAccessors) == 0 {
		t.Errorf("expected the default vocabulary")
	}
}
