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

package funcutil

import "fmt"

// An Optional holds a value or none. Resolution results use it to distinguish "no value found" from an empty
// string value.
type Optional[T any] interface {
	// ValueOr returns the value of the optional if it is some value, otherwise defaultVal
	ValueOr(defaultVal T) T

	// Value returns the value or panics if it is none
	Value() T

	// IsSome returns true if the optional holds a value
	IsSome() bool

	// IsNone returns true if the optional holds no value
	IsNone() bool
}

type some[T any] struct {
	value T
}

func (s some[T]) ValueOr(_ T) T  { return s.value }
func (s some[T]) Value() T       { return s.value }
func (s some[T]) IsSome() bool   { return true }
func (s some[T]) IsNone() bool   { return false }
func (s some[T]) String() string { return fmt.Sprintf("%v", s.value) }

// Some creates an optional holding x.
func Some[T any](x T) Optional[T] {
	return some[T]{x}
}

type none[T any] struct{}

func (n none[T]) ValueOr(defaultVal T) T { return defaultVal }
func (n none[T]) Value() T               { panic("funcutil: Value called on none") }
func (n none[T]) IsSome() bool           { return false }
func (n none[T]) IsNone() bool           { return true }
func (n none[T]) String() string         { return "none" }

// None creates an optional with no value in it
func None[T any]() Optional[T] {
	return none[T]{}
}

// MapOption applies f to the value of x, if any.
func MapOption[T any, S any](x Optional[T], f func(T) S) Optional[S] {
	if v, ok := x.(some[T]); ok {
		return some[S]{f(v.value)}
	}
	return none[S]{}
}
