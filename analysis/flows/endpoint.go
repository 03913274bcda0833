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

package flows

import (
	"fmt"
	"strings"
)

const (
	// NoSensitiveSink is the signature and caller of the sink endpoint of the records of sources that do not flow
	// to any sink
	NoSensitiveSink = "NO_SENSITIVE_SINK"

	// NoSensitiveSource is the signature and caller of the source endpoint of the records of sinks that no source
	// flows to
	NoSensitiveSource = "NO_SENSITIVE_SOURCE"
)

// An Endpoint marks where a flow begins or ends: the (possibly resolved) signature of the call, and the signature of
// the method containing the call.
type Endpoint struct {
	Signature string `yaml:"signature"`
	Caller    string `yaml:"caller"`

	// Intent is the context of launch sinks. It is not part of the identity of the endpoint.
	Intent *IntentInfo `yaml:"intent,omitempty"`
}

// EndpointKey is the identity of an Endpoint
type EndpointKey struct {
	Signature string
	Caller    string
}

// Key returns the identity of the endpoint
func (e Endpoint) Key() EndpointKey {
	return EndpointKey{Signature: e.Signature, Caller: e.Caller}
}

// Equal returns true when the endpoints have the same identity
func (e Endpoint) Equal(f Endpoint) bool {
	return e.Key() == f.Key()
}

// IsPlaceholder returns true for the NoSensitiveSink and NoSensitiveSource endpoints
func (e Endpoint) IsPlaceholder() bool {
	return e == PlaceholderSink() || e == PlaceholderSource()
}

func (e Endpoint) String() string {
	if e.Intent != nil {
		return fmt.Sprintf("%s[%s]", e.Signature, e.Intent)
	}
	return e.Signature
}

// PlaceholderSink returns the endpoint paired with sources that do not reach any sink
func PlaceholderSink() Endpoint {
	return Endpoint{Signature: NoSensitiveSink, Caller: NoSensitiveSink}
}

// PlaceholderSource returns the endpoint paired with sinks that no source reaches
func PlaceholderSource() Endpoint {
	return Endpoint{Signature: NoSensitiveSource, Caller: NoSensitiveSource}
}

// IntentInfo is the context of a launch sink: what the intent passed to the launch operation was configured with
// before the call, as far as it could be determined from constants.
type IntentInfo struct {
	Action    string   `yaml:"action,omitempty"`
	Target    string   `yaml:"target,omitempty"`
	Data      string   `yaml:"data,omitempty"`
	MimeType  string   `yaml:"mime-type,omitempty"`
	ExtraKeys []string `yaml:"extra-keys,omitempty"`
}

// IsEmpty returns true when nothing is known about the intent
func (i *IntentInfo) IsEmpty() bool {
	return i == nil || (i.Action == "" && i.Target == "" && i.Data == "" && i.MimeType == "" && len(i.ExtraKeys) == 0)
}

func (i *IntentInfo) String() string {
	if i == nil {
		return ""
	}
	var parts []string
	for _, kv := range [][2]string{
		{"action", i.Action},
		{"target", i.Target},
		{"data", i.Data},
		{"type", i.MimeType},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if len(i.ExtraKeys) > 0 {
		parts = append(parts, "extras="+strings.Join(i.ExtraKeys, ","))
	}
	return strings.Join(parts, " ")
}
