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

// Package ssaload builds the statement form of Go programs, so that the handle resolution of the resolve package
// can run on Go code. Packages are loaded with golang.org/x/tools/go/packages and built in SSA form; every SSA
// instruction becomes one statement, and the dominator tree of the SSA blocks gives the immediate dominators.
//
// A call site can be excluded from the resolution with an ignore directive:
//
//	row := app.Get(handle) //argot:ignore
package ssaload
