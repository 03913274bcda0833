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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/ar-go-flows/analysis/classify"
	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"github.com/google/go-cmp/cmp"
)

const (
	onCreate = "<com.example.Main: void onCreate(android.os.Bundle)>"
	upload   = "<com.example.Sync: void upload()>"
	logInfo  = "<android.util.Log: int i(java.lang.String,java.lang.String)>"
)

func testLogger() *config.LogGroup {
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(io.Discard)
	return logger
}

func sampleRecords() []flows.Record {
	return []flows.Record{
		{
			Source: flows.Endpoint{
				Signature: "<android.content.ContentResolver: android.database.Cursor query(content://sms,java.lang.String[],java.lang.String,java.lang.String[],java.lang.String)>",
				Caller:    onCreate,
			},
			Sink: flows.Endpoint{Signature: logInfo, Caller: onCreate},
			Path: []flows.PathItem{
				{CallerMethod: onCreate, Stmt: "$r4 = virtualinvoke $r3.<android.database.Cursor: java.lang.String getString(int)>(0)", Index: 4},
				{CallerMethod: onCreate, Stmt: `staticinvoke <android.util.Log: int i(java.lang.String,java.lang.String)>("notes", $r4)`, Index: 5},
			},
		},
		{
			Source: flows.Endpoint{Signature: "<android.telephony.TelephonyManager: java.lang.String getDeviceId()>", Caller: upload},
			Sink: flows.Endpoint{
				Signature: "<android.app.Activity: void startActivity(android.content.Intent)>",
				Caller:    upload,
				Intent: &flows.IntentInfo{
					Action:    "android.intent.action.SEND",
					Target:    "com.example.Share",
					MimeType:  "text/plain",
					ExtraKeys: []string{"android.intent.extra.TEXT", "id"},
				},
			},
			Path: []flows.PathItem{{CallerMethod: upload, Stmt: "nop", Index: -1}},
		},
		{
			Source: flows.Endpoint{Signature: "<android.telephony.TelephonyManager: java.lang.String getDeviceId()>", Caller: upload},
			Sink:   flows.PlaceholderSink(),
		},
		{
			Source: flows.PlaceholderSource(),
			Sink:   flows.Endpoint{Signature: "<java.net.HttpURLConnection: void connect()>", Caller: upload},
		},
	}
}

func TestLoadAndConsolidate(t *testing.T) {
	logger := testLogger()
	res, err := LoadResults(filepath.Join("testdata", "results.yaml"), logger)
	if err != nil {
		t.Fatalf("could not load results: %v", err)
	}
	if res.Subject != "com.example.notes" || len(res.Program.Methods()) != 2 {
		t.Fatalf("unexpected results %v", res)
	}
	if res.Raw.NumPairs() != 1 || len(res.Collected.Sources) != 3 || len(res.Collected.Sinks) != 2 {
		t.Errorf("unexpected raw results %d pairs, %d sources, %d sinks",
			res.Raw.NumPairs(), len(res.Collected.Sources), len(res.Collected.Sinks))
	}

	m, _ := res.Program.Method(upload)
	dom, err := res.Program.Dominators(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d, ok := dom.(*ir.Dominators); !ok || d.IsForest() {
		t.Errorf("expected the explicit, cyclic dominator table of %s", upload)
	}
}

func TestLoadWarnsOnCyclicTable(t *testing.T) {
	var buf bytes.Buffer
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(&buf)
	if _, err := LoadResults(filepath.Join("testdata", "results.yaml"), logger); err != nil {
		t.Fatalf("could not load results: %v", err)
	}
	if !strings.Contains(buf.String(), "dominator table of "+upload+" has a cycle: [-1 2 1 2]") {
		t.Errorf("expected a warning with the table, got:\n%s", buf.String())
	}
}

func TestConsolidateLoaded(t *testing.T) {
	logger := testLogger()
	res, err := LoadResults(filepath.Join("testdata", "results.yaml"), logger)
	if err != nil {
		t.Fatalf("could not load results: %v", err)
	}

	cfg := config.NewDefault()
	c := flows.NewConsolidator(cfg, logger, resolve.New(classify.NewDefault(), logger, 0), nil)
	got := c.Consolidate(res.Program, res.Raw, res.Collected)
	expected := []flows.Record{sampleRecords()[0], sampleRecords()[2], sampleRecords()[3]}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected records (-expected +got):\n%s", diff)
	}
}

func TestParseResultsErrors(t *testing.T) {
	method := `
methods:
  - signature: "<a.B: void f()>"
    stmts:
      - kind: nop
      - kind: return
`
	for name, doc := range map[string]string{
		"bad yaml":            "methods: [",
		"unknown stmt kind":   "methods:\n  - signature: m\n    stmts:\n      - kind: jump\n",
		"unknown value kind":  "methods:\n  - signature: m\n    stmts:\n      - kind: return\n        right: {kind: lambda}\n",
		"assign without rhs":  "methods:\n  - signature: m\n    stmts:\n      - kind: assign\n        left: {kind: local, name: x}\n",
		"goto without target": "methods:\n  - signature: m\n    stmts:\n      - kind: goto\n",
		"duplicate method":    method + "  - signature: \"<a.B: void f()>\"\n    stmts: []\n",
		"short dominators":    "methods:\n  - signature: m\n    dominators: [-1]\n    stmts:\n      - kind: nop\n      - kind: nop\n",
		"bad reference":       method + "collected:\n  sources: [\"<a.B: void f()>\"]\n",
		"unknown method":      method + "collected:\n  sinks: [\"<a.B: void g()>#0\"]\n",
		"index out of range":  method + "flows:\n  - sink: \"<a.B: void f()>#2\"\n",
		"bad path":            method + "flows:\n  - sink: \"<a.B: void f()>#0\"\n    sources:\n      - stmt: \"<a.B: void f()>#1\"\n        path: [\"x#0\"]\n",
	} {
		if _, err := ParseResults([]byte(doc), testLogger()); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if _, err := LoadResults(filepath.Join("testdata", "missing.yaml"), testLogger()); err == nil {
		t.Errorf("expected an error on a missing file")
	}
}

func TestEmitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	for _, format := range []string{config.FormatXML, config.FormatYAML, config.FormatSARIF} {
		name, err := NewEmitter(dir, format).Emit("com.example.notes", sampleRecords())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		if expected := filepath.Join(dir, "com.example.notes_results."+format); name != expected {
			t.Errorf("expected artifact %s, got %s", expected, name)
		}
		if _, err := os.Stat(name); err != nil {
			t.Errorf("artifact not written: %v", err)
		}
	}
	if _, err := NewEmitter(dir, "html").Emit("app", nil); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
	if _, err := NewEmitter(dir, config.FormatXML).Emit("", nil); err == nil {
		t.Errorf("expected an error without subject")
	}
}

func TestEmitUnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewEmitter(filepath.Join(file, "dir"), config.FormatXML).Emit("app", sampleRecords()); err == nil {
		t.Errorf("expected an error when the directory cannot be created")
	}
}

func TestXMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, "com.example.notes", sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "<flows subject=\"com.example.notes\">") {
		t.Errorf("unexpected document:\n%s", buf.String())
	}
	subject, records, err := ReadXML(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "com.example.notes" {
		t.Errorf("expected subject com.example.notes, got %q", subject)
	}
	if diff := cmp.Diff(sampleRecords(), records); diff != "" {
		t.Errorf("records changed by the round-trip (-expected +got):\n%s", diff)
	}
	if _, _, err := ReadXML(strings.NewReader("<records/>")); err == nil {
		t.Errorf("expected an error on a document without flows")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, "com.example.notes", sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subject, records, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "com.example.notes" {
		t.Errorf("expected subject com.example.notes, got %q", subject)
	}
	if diff := cmp.Diff(sampleRecords(), records); diff != "" {
		t.Errorf("records changed by the round-trip (-expected +got):\n%s", diff)
	}
}

func TestSARIF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, "com.example.notes", sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				CodeFlows []struct {
					ThreadFlows []struct {
						Locations []json.RawMessage `json:"locations"`
					} `json:"threadFlows"`
				} `json:"codeFlows"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("expected one SARIF 2.1.0 run, got %q with %d runs", log.Version, len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != toolName || len(run.Tool.Driver.Rules) != 4 {
		t.Errorf("expected one rule per sink signature, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 4 {
		t.Fatalf("expected one result per record, got %d", len(run.Results))
	}
	levels := []string{"warning", "warning", "note", "note"}
	for i, r := range run.Results {
		if r.Level != levels[i] {
			t.Errorf("result %d: expected level %s, got %s", i, levels[i], r.Level)
		}
	}
	if len(run.Results[0].CodeFlows) != 1 || len(run.Results[0].CodeFlows[0].ThreadFlows[0].Locations) != 2 {
		t.Errorf("expected the path of the first record as a code flow")
	}
	if len(run.Results[2].CodeFlows) != 0 {
		t.Errorf("records without path have no code flow")
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("app", config.FormatXML); got != "app_results.xml" {
		t.Errorf("expected app_results.xml, got %s", got)
	}
}

func TestEmitDefaultFormat(t *testing.T) {
	dir := t.TempDir()
	name, err := NewEmitter(dir, "").Emit("app", sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := filepath.Join(dir, "app_results.xml"); name != expected {
		t.Errorf("expected artifact %s, got %s", expected, name)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()
	if _, _, err := ReadXML(f); err != nil {
		t.Errorf("expected an xml artifact: %v", err)
	}
}

func TestXMLOmitsEmptyIntent(t *testing.T) {
	records := []flows.Record{{
		Source: flows.PlaceholderSource(),
		Sink: flows.Endpoint{
			Signature: "<android.app.Activity: void startActivity(android.content.Intent)>",
			Caller:    upload,
			Intent:    &flows.IntentInfo{},
		},
	}}
	var buf bytes.Buffer
	if err := WriteXML(&buf, "app", records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "<intent") {
		t.Errorf("an empty intent should not be written:\n%s", buf.String())
	}
	_, got, err := ReadXML(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Sink.Intent != nil {
		t.Errorf("expected one record without intent, got %v", got)
	}
}
