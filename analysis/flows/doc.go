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

/*
Package flows consolidates the raw results of a taint analysis into flow records.

The upstream analysis reports, for every sink statement, the source statements whose data reaches it, and the sets
of all the statements it considered as sources and sinks. A [Consolidator] turns those into [Record] values:

  - every (source, sink) pair becomes a record whose source endpoint is resolved (see package resolve) and whose
    path is projected onto the statements of the methods (see [Project])
  - sources that reach no sink are paired with the [NoSensitiveSink] placeholder
  - sinks that no source reaches are paired with the [NoSensitiveSource] placeholder

Records are identified by their endpoints ([Record.Key]). The list returned by [Consolidator.Consolidate] may
contain several records with the same identity when the raw results do; [Dedup] returns the distinct records.
*/
package flows
