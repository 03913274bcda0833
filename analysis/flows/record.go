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
)

// A PathItem is one statement of the path of a flow
type PathItem struct {
	// CallerMethod is the signature of the method containing the statement
	CallerMethod string `yaml:"caller-method"`

	// Stmt is the text of the statement
	Stmt string `yaml:"stmt"`

	// Index is the position of the statement in its method, or -1 if it could not be found
	Index int `yaml:"index"`
}

// A Record is one flow from a source to a sink, or a placeholder record for a source or sink that does not appear in
// any flow. Records are identified by their endpoints; the path is descriptive.
type Record struct {
	Source Endpoint   `yaml:"source"`
	Sink   Endpoint   `yaml:"sink"`
	Path   []PathItem `yaml:"path,omitempty"`
}

// RecordKey is the identity of a Record
type RecordKey struct {
	Source EndpointKey
	Sink   EndpointKey
}

// Key returns the identity of the record. Use it to key any container deduplicating records.
func (r Record) Key() RecordKey {
	return RecordKey{Source: r.Source.Key(), Sink: r.Sink.Key()}
}

// Equal returns true when the records have the same endpoints, regardless of their paths.
func (r Record) Equal(s Record) bool {
	return r.Key() == s.Key()
}

// IsUnmatchedSource returns true for records of sources that do not reach any sink
func (r Record) IsUnmatchedSource() bool {
	return r.Sink == PlaceholderSink()
}

// IsUnmatchedSink returns true for records of sinks that no source reaches
func (r Record) IsUnmatchedSink() bool {
	return r.Source == PlaceholderSource()
}

func (r Record) String() string {
	return fmt.Sprintf("%s -> %s", r.Source, r.Sink)
}

// Dedup returns the records with distinct identities, in order. When several records have the same identity, the
// first one is kept.
func Dedup(records []Record) []Record {
	seen := make(map[RecordKey]bool, len(records))
	var unique []Record
	for _, r := range records {
		k := r.Key()
		if !seen[k] {
			seen[k] = true
			unique = append(unique, r)
		}
	}
	return unique
}

// Stats counts the records by category
type Stats struct {
	Joined           int
	UnmatchedSources int
	UnmatchedSinks   int
	Distinct         int
}

// Summary returns the statistics of records
func Summary(records []Record) Stats {
	s := Stats{Distinct: len(Dedup(records))}
	for _, r := range records {
		switch {
		case r.IsUnmatchedSource():
			s.UnmatchedSources++
		case r.IsUnmatchedSink():
			s.UnmatchedSinks++
		default:
			s.Joined++
		}
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d flows, %d sources without sink, %d sinks without source (%d distinct records)",
		s.Joined, s.UnmatchedSources, s.UnmatchedSinks, s.Distinct)
}
