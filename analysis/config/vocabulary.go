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

package config

// Vocabulary lists the call signatures the consolidation treats specially. Signatures are compared verbatim; they
// are not regexes.
type Vocabulary struct {
	// ResourceReaders are accessors extracting a field from a row previously fetched by a resource accessor
	// (e.g. Cursor.getString)
	ResourceReaders []string `yaml:"resource-readers"`

	// ResourceAccessors take a resource handle as first argument (e.g. ContentResolver.query)
	ResourceAccessors []string `yaml:"resource-accessors"`

	// HandleConstructors build a resource handle from a constant token (e.g. Uri.parse)
	HandleConstructors []string `yaml:"handle-constructors"`

	// ConcatBuilders build strings or handles textually. A handle built by one of them is not resolved.
	ConcatBuilders []string `yaml:"concat-builders"`

	// LaunchSinks are the sub-signatures of sinks for which the intent context is collected
	LaunchSinks []string `yaml:"launch-sinks"`

	// SuppressedSources are never reported as unmatched sources
	SuppressedSources []string `yaml:"suppressed-sources"`

	// HandleType is the type token of the handle parameter in accessor signatures
	HandleType string `yaml:"handle-type"`
}

// DefaultVocabulary returns the Android content provider vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ResourceReaders: []string{
			CursorGetBlob,
			CursorGetColumnName,
			CursorGetColumnNames,
			CursorGetInt,
			CursorGetLong,
			CursorGetString,
			CursorGetType,
		},
		ResourceAccessors: []string{
			ResolverQuery,
			ResolverInsert,
			ResolverBulkInsert,
			ResolverUpdate,
			ResolverDelete,
		},
		HandleConstructors: []string{UriParse},
		ConcatBuilders:     []string{StringBuilderToStr, StringConcat, UriWithAppendedPath},
		LaunchSinks: []string{
			StartActivity,
			StartActivityWithOptions,
			StartActivityForResult,
			StartActivityForResultOptions,
		},
		SuppressedSources: []string{ResolverQuery},
		HandleType:        UriType,
	}
}

// withDefaults returns v where every empty field is replaced by the corresponding field of d
func (v Vocabulary) withDefaults(d Vocabulary) Vocabulary {
	if len(v.ResourceReaders) == 0 {
		v.ResourceReaders = d.ResourceReaders
	}
	if len(v.ResourceAccessors) == 0 {
		v.ResourceAccessors = d.ResourceAccessors
	}
	if len(v.HandleConstructors) == 0 {
		v.HandleConstructors = d.HandleConstructors
	}
	if len(v.ConcatBuilders) == 0 {
		v.ConcatBuilders = d.ConcatBuilders
	}
	if len(v.LaunchSinks) == 0 {
		v.LaunchSinks = d.LaunchSinks
	}
	if len(v.SuppressedSources) == 0 {
		v.SuppressedSources = d.SuppressedSources
	}
	if v.HandleType == "" {
		v.HandleType = d.HandleType
	}
	return v
}
