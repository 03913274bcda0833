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
Package ir defines the representation of the subject program handed over by the upstream taint analysis: methods,
their bodies as ordered sequences of three-address statements, and the values those statements operate on.

Values and statements are tagged unions ([ValueKind], [StmtKind]). Analyses inspect them with a switch on the kind
rather than through an interface hierarchy.

The package also provides the dominator oracle of a method body. [ComputeDominators] computes the dominator tree of
the control-flow graph of a body (see [Body.Successors]); [NewExplicitDominators] wraps a table computed by another
tool.
*/
package ir
