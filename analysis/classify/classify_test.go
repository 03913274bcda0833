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

package classify

import (
	"testing"

	"github.com/awslabs/ar-go-flows/analysis/config"
)

func TestDefaultVocabularyIsDisjoint(t *testing.T) {
	c := NewDefault()
	v := config.DefaultVocabulary()
	for _, sig := range v.ResourceReaders {
		if !c.IsResourceReadAccessor(sig) || c.IsResourceIoAccessor(sig) {
			t.Errorf("%s should only be a read accessor", sig)
		}
	}
	for _, sig := range v.ResourceAccessors {
		if !c.IsResourceIoAccessor(sig) || c.IsResourceReadAccessor(sig) {
			t.Errorf("%s should only be an IO accessor", sig)
		}
	}
}

func TestUnknownSignature(t *testing.T) {
	c := NewDefault()
	sig := "<java.io.PrintStream: void println(java.lang.String)>"
	if c.IsResourceReadAccessor(sig) || c.IsResourceIoAccessor(sig) || c.IsHandleConstructor(sig) ||
		c.IsConcatBuilder(sig) || c.IsLaunchSink(sig) || c.IsSuppressedUnmatchedSource(sig) {
		t.Errorf("%s should not be classified", sig)
	}
	if c.IsResourceIoAccessor("") {
		t.Errorf("the empty signature should not be classified")
	}
}

func TestLaunchSinkMatchesSubSignature(t *testing.T) {
	c := NewDefault()
	for _, sig := range []string{
		"<android.app.Activity: void startActivity(android.content.Intent)>",
		"<com.example.MainActivity: void startActivityForResult(android.content.Intent,int)>",
	} {
		if !c.IsLaunchSink(sig) {
			t.Errorf("%s should be a launch sink", sig)
		}
	}
	if c.IsLaunchSink("<android.app.Activity: void startService(android.content.Intent)>") {
		t.Errorf("startService is not a launch sink in the default vocabulary")
	}
}

func TestCustomVocabulary(t *testing.T) {
	c := New(config.Vocabulary{
		ResourceAccessors: []string{"example.com/store.Fetch(string,int)"},
		HandleType:        "string",
	})
	if !c.IsResourceIoAccessor("example.com/store.Fetch(string,int)") {
		t.Errorf("expected custom accessor")
	}
	if c.IsResourceIoAccessor(config.ResolverQuery) {
		t.Errorf("custom vocabulary should not include the defaults")
	}
	if c.HandleType() != "string" {
		t.Errorf("unexpected handle type %q", c.HandleType())
	}
	if !NewDefault().IsSuppressedUnmatchedSource(config.ResolverQuery) {
		t.Errorf("query should be suppressed by default")
	}
}
