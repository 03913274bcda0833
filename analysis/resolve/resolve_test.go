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
	"io"
	"testing"

	"github.com/awslabs/ar-go-flows/analysis/classify"
	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/ir"
)

const (
	getContentResolver = "<android.content.Context: android.content.ContentResolver getContentResolver()>"
	resolvedSms        = "<android.content.ContentResolver: android.database.Cursor query(content://sms,java.lang.String[],java.lang.String,java.lang.String[],java.lang.String)>"
	contactsField      = "<android.provider.ContactsContract$Contacts: android.net.Uri CONTENT_URI>"
)

var (
	this     = ir.NewLocal("r0", "com.example.Main")
	resolver = ir.NewLocal("$r2", "android.content.ContentResolver")
	uri      = ir.NewLocal("$r1", config.UriType)
	cursor   = ir.NewLocal("$r3", "android.database.Cursor")
	null     = ir.NewConstant("null")
)

func newTestResolver(maxSteps int) *Resolver {
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(io.Discard)
	return New(classify.NewDefault(), logger, maxSteps)
}

func parse(token ir.Value) ir.Value {
	return ir.NewInvoke(config.UriParse, nil, token)
}

func query(handle ir.Value) ir.Value {
	return ir.NewInvoke(config.ResolverQuery, &resolver, handle, null, null, null, null)
}

// withQuery returns a method whose body is defs, followed by the lookup of the content resolver, a query on $r1
// and a read of the resulting cursor. The indices of the last two statements are returned.
func withQuery(defs ...*ir.Stmt) (m *ir.Method, queryAt int, readAt int) {
	stmts := []*ir.Stmt{ir.NewIdentity(this, ir.NewOther("@this: com.example.Main"))}
	stmts = append(stmts, defs...)
	stmts = append(stmts,
		ir.NewAssign(resolver, ir.NewInvoke(getContentResolver, &this)),
		ir.NewAssign(cursor, query(uri)),
		ir.NewAssign(ir.NewLocal("$r4", "java.lang.String"),
			ir.NewInvoke(config.CursorGetString, &cursor, ir.NewConstant("0"))),
		ir.NewReturn(nil))
	m = ir.NewMethod("<com.example.Main: void onCreate(android.os.Bundle)>", stmts...)
	return m, len(stmts) - 3, len(stmts) - 2
}

func TestResolveDirectHandle(t *testing.T) {
	m, queryAt, _ := withQuery(ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))))
	dom := ir.ComputeDominators(m.Body)
	got := newTestResolver(0).ResolveSource(dom, m.Body.Stmts[queryAt])
	if got != resolvedSms {
		t.Errorf("expected %q, got %q", resolvedSms, got)
	}
}

func TestResolveViaCursorUse(t *testing.T) {
	m, _, readAt := withQuery(ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))))
	dom := ir.ComputeDominators(m.Body)
	r := newTestResolver(0)
	if got := r.ResolveSource(dom, m.Body.Stmts[readAt]); got != resolvedSms {
		t.Errorf("expected the read to resolve to %q, got %q", resolvedSms, got)
	}
}

func TestResolveViaUseNotAssignment(t *testing.T) {
	m, _, _ := withQuery(ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))))
	use := ir.NewInvokeStmt(ir.NewInvoke(config.CursorGetString, &cursor, ir.NewConstant("0")))
	got := newTestResolver(0).ResolveViaUse(ir.ComputeDominators(m.Body), use, config.CursorGetString)
	if got != config.CursorGetString {
		t.Errorf("expected the signature unchanged, got %q", got)
	}
}

func TestResolveHandleCases(t *testing.T) {
	str := ir.NewLocal("$r5", "java.lang.String")
	alias := ir.NewLocal("$r6", config.UriType)
	for _, test := range []struct {
		name     string
		defs     []*ir.Stmt
		expected string
	}{
		{
			name: "nearest definition wins",
			defs: []*ir.Stmt{
				ir.NewAssign(uri, parse(ir.NewStringConstant("content://calls"))),
				ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))),
			},
			expected: resolvedSms,
		},
		{
			name:     "field",
			defs:     []*ir.Stmt{ir.NewAssign(uri, ir.NewField(contactsField, config.UriType))},
			expected: "<android.content.ContentResolver: android.database.Cursor query(android.provider.ContactsContract$Contacts.CONTENT_URI,java.lang.String[],java.lang.String,java.lang.String[],java.lang.String)>",
		},
		{
			name: "copy",
			defs: []*ir.Stmt{
				ir.NewAssign(alias, parse(ir.NewStringConstant("content://sms"))),
				ir.NewAssign(uri, alias),
			},
			expected: resolvedSms,
		},
		{
			name: "constant string local",
			defs: []*ir.Stmt{
				ir.NewAssign(str, ir.NewStringConstant("content://sms")),
				ir.NewAssign(uri, parse(str)),
			},
			expected: resolvedSms,
		},
		{
			name: "concatenation",
			defs: []*ir.Stmt{
				ir.NewAssign(str, ir.NewConcat(ir.NewStringConstant("content://"), ir.NewLocal("$r7", "java.lang.String"))),
				ir.NewAssign(uri, parse(str)),
			},
			expected: config.ResolverQuery,
		},
		{
			name: "concatenation shadows an earlier definition",
			defs: []*ir.Stmt{
				ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))),
				ir.NewAssign(uri, ir.NewInvoke(config.UriWithAppendedPath, nil, alias, ir.NewStringConstant("1"))),
			},
			expected: config.ResolverQuery,
		},
		{
			name:     "null",
			defs:     []*ir.Stmt{ir.NewAssign(uri, null)},
			expected: config.ResolverQuery,
		},
		{
			name:     "parameter",
			defs:     []*ir.Stmt{ir.NewIdentity(uri, ir.NewOther("@parameter0: android.net.Uri"))},
			expected: config.ResolverQuery,
		},
		{
			name:     "missing definition",
			defs:     nil,
			expected: config.ResolverQuery,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			m, queryAt, readAt := withQuery(test.defs...)
			dom := ir.ComputeDominators(m.Body)
			r := newTestResolver(0)
			if got := r.ResolveSource(dom, m.Body.Stmts[queryAt]); got != test.expected {
				t.Errorf("query: expected %q, got %q", test.expected, got)
			}
			if got := r.ResolveSource(dom, m.Body.Stmts[readAt]); got != test.expected {
				t.Errorf("read: expected %q, got %q", test.expected, got)
			}
		})
	}
}

func TestSearchReason(t *testing.T) {
	const current = "<com.example.Store: android.net.Uri current()>"
	alias := ir.NewLocal("$r6", config.UriType)
	custom := config.DefaultVocabulary()
	custom.ConcatBuilders = []string{current}
	for _, test := range []struct {
		name       string
		vocabulary config.Vocabulary
		defs       []*ir.Stmt
		expected   unresolvedReason
	}{
		{"missing definition", config.DefaultVocabulary(), nil, noDefinition},
		{"parameter", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewIdentity(uri, ir.NewOther("@parameter0: android.net.Uri"))}, fromParameter},
		{"null", config.DefaultVocabulary(), []*ir.Stmt{ir.NewAssign(uri, null)}, nullHandle},
		{"nil token", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewAssign(uri, parse(ir.NewConstant("nil")))}, nullHandle},
		{"concat builder", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewAssign(uri, ir.NewInvoke(config.UriWithAppendedPath, nil, alias, ir.NewStringConstant("1")))},
			builtTextually},
		{"concatenation", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewAssign(uri, ir.NewConcat(ir.NewStringConstant("content://"), alias))}, builtTextually},
		{"other call", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewAssign(uri, ir.NewInvoke(current, nil))}, fromCall},
		{"call listed as concat builder", custom,
			[]*ir.Stmt{ir.NewAssign(uri, ir.NewInvoke(current, nil))}, builtTextually},
		{"opaque value", config.DefaultVocabulary(),
			[]*ir.Stmt{ir.NewAssign(uri, ir.NewOther("(android.net.Uri) $r8"))}, opaqueValue},
	} {
		t.Run(test.name, func(t *testing.T) {
			m, queryAt, _ := withQuery(test.defs...)
			logger := config.NewLogGroup(config.NewDefault())
			logger.SetAllOutput(io.Discard)
			r := New(classify.New(test.vocabulary), logger, 0)
			f := r.search(ir.ComputeDominators(m.Body), m.Body.Stmts[queryAt], uri)
			if f.result.IsSome() {
				t.Fatalf("expected no value, got %q", f.result.Value())
			}
			if f.reason != test.expected {
				t.Errorf("expected reason %q, got %q", test.expected, f.reason)
			}
		})
	}
}

func TestIsNull(t *testing.T) {
	for lit, expected := range map[string]bool{"null": true, "nil": true, `"null"`: false, "0": false} {
		if IsNull(lit) != expected {
			t.Errorf("IsNull(%q) should be %v", lit, expected)
		}
	}
}

func TestResolveOnlyDominatingDefinitions(t *testing.T) {
	m := ir.NewMethod("<com.example.Main: void run(boolean)>",
		ir.NewIdentity(this, ir.NewOther("@this: com.example.Main")),
		ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))),
		ir.NewIf(ir.NewOther("z0 == 0"), 4),
		ir.NewAssign(uri, parse(ir.NewStringConstant("content://calls"))),
		ir.NewAssign(cursor, query(uri)),
		ir.NewReturn(nil))
	got := newTestResolver(0).ResolveSource(ir.ComputeDominators(m.Body), m.Body.Stmts[4])
	if got != resolvedSms {
		t.Errorf("the definition on the branch does not dominate the query: expected %q, got %q", resolvedSms, got)
	}
}

func TestResolveHandleForeignArgument(t *testing.T) {
	m, queryAt, _ := withQuery(ir.NewAssign(uri, parse(ir.NewStringConstant("content://sms"))))
	dom := ir.ComputeDominators(m.Body)
	r := newTestResolver(0)
	for _, arg := range []ir.Value{
		ir.NewLocal("$r1", "java.lang.String"),
		ir.NewStringConstant("content://sms"),
	} {
		if got := r.ResolveHandle(dom, m.Body.Stmts[queryAt], config.ResolverQuery, []ir.Value{arg}); got != config.ResolverQuery {
			t.Errorf("argument %v should not be resolved, got %q", arg, got)
		}
	}
	if got := r.ResolveHandle(dom, m.Body.Stmts[queryAt], config.ResolverQuery, nil); got != config.ResolverQuery {
		t.Errorf("no argument: expected the signature unchanged, got %q", got)
	}
}

func TestResolveCyclicOracleTerminates(t *testing.T) {
	m := ir.NewMethod("<com.example.Main: void loop()>",
		ir.NewIdentity(this, ir.NewOther("@this: com.example.Main")),
		ir.NewNop(),
		ir.NewAssign(cursor, query(uri)),
		ir.NewAssign(ir.NewLocal("$r4", "java.lang.String"), ir.NewInvoke(config.CursorGetString, &cursor, ir.NewConstant("0"))))
	dom, err := ir.NewExplicitDominators(m.Body, []int{-1, 2, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := newTestResolver(16)
	if got := r.ResolveSource(dom, m.Body.Stmts[2]); got != config.ResolverQuery {
		t.Errorf("expected the signature unchanged, got %q", got)
	}
	if got := r.ResolveSource(dom, m.Body.Stmts[3]); got != config.ResolverQuery {
		t.Errorf("expected the signature unchanged, got %q", got)
	}
	if v := r.ExtractHandleValue(dom, m.Body.Stmts[2], uri); v.IsSome() {
		t.Errorf("expected no value, got %q", v.Value())
	}
}

func TestResolveOtherCall(t *testing.T) {
	call := ir.NewInvoke(getContentResolver, &this)
	s := ir.NewAssign(resolver, call)
	m := ir.NewMethod("<com.example.Main: void f()>", s)
	if got := newTestResolver(0).ResolveSource(ir.ComputeDominators(m.Body), s); got != getContentResolver {
		t.Errorf("expected %q, got %q", getContentResolver, got)
	}
	if got := newTestResolver(0).ResolveSource(ir.ComputeDominators(m.Body), ir.NewNop()); got != "" {
		t.Errorf("a statement without call has no signature, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	for _, test := range []struct {
		token    string
		expected string
	}{
		{`"content://sms"`, "content://sms"},
		{contactsField, "android.provider.ContactsContract$Contacts.CONTENT_URI"},
		{"<content://sms>", "content://sms"},
		{"CallLog.CONTENT_URI", "CallLog.CONTENT_URI"},
		{`""`, ""},
	} {
		if got := Normalize(test.token); got != test.expected {
			t.Errorf("Normalize(%q): expected %q, got %q", test.token, test.expected, got)
		}
	}
}

func TestSubstituteHandle(t *testing.T) {
	for _, test := range []struct {
		signature string
		expected  string
	}{
		{config.ResolverDelete, "<android.content.ContentResolver: int delete(content://sms,java.lang.String,java.lang.String[])>"},
		{"<a.B: int count(android.net.Uri)>", "<a.B: int count(content://sms)>"},
		{"<a.B: int count(java.lang.String,android.net.Uri)>", "<a.B: int count(java.lang.String,android.net.Uri)>"},
	} {
		if got := SubstituteHandle(test.signature, config.UriType, "<content://sms>"); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}
	if got := SubstituteHandle(config.ResolverDelete, "", "x"); got != config.ResolverDelete {
		t.Errorf("an empty handle type should leave the signature unchanged, got %q", got)
	}
}
