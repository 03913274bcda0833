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
	"github.com/awslabs/ar-go-flows/analysis/ir"
)

// Project returns the path items of path: for each statement, the method that contains it and its position in that
// method. A statement that is not found in its method, or whose method is unknown, has index -1.
func Project(path []*ir.Stmt, oracle Oracle) []PathItem {
	var items []PathItem
	for _, s := range path {
		if s == nil {
			continue
		}
		item := PathItem{Stmt: s.String(), Index: -1}
		if m, ok := oracle.MethodOf(s); ok {
			item.CallerMethod = m.Signature
			item.Index = IndexInMethod(s, m)
		}
		items = append(items, item)
	}
	return items
}

// IndexInMethod returns the position of the first statement of m structurally equal to s, or -1
func IndexInMethod(s *ir.Stmt, m *ir.Method) int {
	if m == nil || m.Body == nil {
		return -1
	}
	for i, t := range m.Body.Stmts {
		if t.Equal(s) {
			return i
		}
	}
	return -1
}
