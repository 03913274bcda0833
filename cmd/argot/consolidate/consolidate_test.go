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

package consolidate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/analysis/report"
)

var resultsFile = filepath.Join("..", "..", "..", "analysis", "report", "testdata", "results.yaml")

func TestRun(t *testing.T) {
	dir := t.TempDir()
	flags, err := NewFlags([]string{"-o", dir, "-format", "YAML", resultsFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Run(flags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "com.example.notes_results.yaml"))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	defer f.Close()
	subject, records, err := report.ReadYAML(f)
	if err != nil {
		t.Fatalf("could not read artifact: %v", err)
	}
	if subject != "com.example.notes" {
		t.Errorf("unexpected subject %q", subject)
	}
	stats := flows.Summary(records)
	if stats.Joined != 1 || stats.UnmatchedSources != 1 || stats.UnmatchedSinks != 1 {
		t.Errorf("unexpected records: %s", stats)
	}
	if !strings.Contains(records[0].Source.Signature, "content://sms") {
		t.Errorf("expected the handle of the query to be resolved, got %s", records[0].Source.Signature)
	}
}

func TestRunSubjectOverride(t *testing.T) {
	dir := t.TempDir()
	flags, err := NewFlags([]string{"-o", dir, "-subject", "notes", resultsFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Run(flags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes_results.xml")); err != nil {
		t.Errorf("expected an xml artifact named after the subject: %v", err)
	}
}

func TestRunContinuesAfterWriteFailure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "reports")
	if err := os.WriteFile(output, []byte("not a directory"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(resultsFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(second, b, 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags, err := NewFlags([]string{"-o", output, resultsFile, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Run(flags); err != nil {
		t.Fatalf("a write failure should not fail the run: %v", err)
	}
	outcomes, err := run(flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected both results files to be consolidated, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.writeErr == nil {
			t.Errorf("file %d: expected a write error in %s", i, output)
		}
		if o.stats.Joined != 1 || o.stats.UnmatchedSources != 1 || o.stats.UnmatchedSinks != 1 {
			t.Errorf("file %d: unexpected records: %s", i, o.stats)
		}
	}
}

func TestRunMissingResults(t *testing.T) {
	flags, err := NewFlags([]string{"-o", t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = Run(flags)
	if err == nil || !strings.Contains(err.Error(), "could not read results") {
		t.Errorf("expected a read error, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected the read error to wrap fs.ErrNotExist, got %v", err)
	}
}

func TestNewFlagsErrors(t *testing.T) {
	if _, err := NewFlags([]string{"-format", "json", resultsFile}); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
	if _, err := NewFlags(nil); err == nil {
		t.Errorf("expected an error without results file")
	}
}

func TestSubjectName(t *testing.T) {
	tests := []struct {
		override, fromResults, path, expected string
	}{
		{"a", "b", "c.yaml", "a"},
		{"", "b", "c.yaml", "b"},
		{"", "", "dir/c.yaml", "c"},
	}
	for _, test := range tests {
		if got := SubjectName(test.override, test.fromResults, test.path); got != test.expected {
			t.Errorf("SubjectName(%q, %q, %q) = %q, expected %q",
				test.override, test.fromResults, test.path, got, test.expected)
		}
	}
}
