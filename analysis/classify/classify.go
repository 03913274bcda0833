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

// Package classify decides which call signatures belong to the resource-accessor vocabulary: the accessors that
// take a resource handle, the readers of rows fetched by those accessors, the constructors of handles and the
// launch sinks. The vocabulary is fixed by the configuration; membership tests never fail.
package classify

import (
	"sync"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/ir"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
)

// A Classifier answers membership queries on a vocabulary. The membership sets are built on first use and never
// modified afterwards.
type Classifier struct {
	vocabulary config.Vocabulary

	once         sync.Once
	readers      map[string]bool
	accessors    map[string]bool
	constructors map[string]bool
	builders     map[string]bool
	launchSinks  map[string]bool
	suppressed   map[string]bool
}

// New returns a classifier for the vocabulary v
func New(v config.Vocabulary) *Classifier {
	return &Classifier{vocabulary: v}
}

// NewDefault returns a classifier for the default Android vocabulary
func NewDefault() *Classifier {
	return New(config.DefaultVocabulary())
}

func (c *Classifier) init() {
	c.once.Do(func() {
		c.readers = funcutil.Set(c.vocabulary.ResourceReaders)
		c.accessors = funcutil.Set(c.vocabulary.ResourceAccessors)
		c.constructors = funcutil.Set(c.vocabulary.HandleConstructors)
		c.builders = funcutil.Set(c.vocabulary.ConcatBuilders)
		c.launchSinks = funcutil.Set(c.vocabulary.LaunchSinks)
		c.suppressed = funcutil.Set(c.vocabulary.SuppressedSources)
	})
}

// IsResourceReadAccessor returns true when signature reads a field of a row fetched by a resource accessor
func (c *Classifier) IsResourceReadAccessor(signature string) bool {
	c.init()
	return c.readers[signature]
}

// IsResourceIoAccessor returns true when signature takes a resource handle as its first argument
func (c *Classifier) IsResourceIoAccessor(signature string) bool {
	c.init()
	return c.accessors[signature]
}

// IsHandleConstructor returns true when signature builds a resource handle from a constant token
func (c *Classifier) IsHandleConstructor(signature string) bool {
	c.init()
	return c.constructors[signature]
}

// IsConcatBuilder returns true when signature builds a string or handle textually
func (c *Classifier) IsConcatBuilder(signature string) bool {
	c.init()
	return c.builders[signature]
}

// IsLaunchSink returns true when the sub-signature of signature is a launch operation (e.g. startActivity)
func (c *Classifier) IsLaunchSink(signature string) bool {
	c.init()
	return c.launchSinks[ir.SubSignature(signature)]
}

// IsSuppressedUnmatchedSource returns true when a source with that signature is never reported alone
func (c *Classifier) IsSuppressedUnmatchedSource(signature string) bool {
	c.init()
	return c.suppressed[signature]
}

// HandleType returns the type token of the handle parameter in accessor signatures
func (c *Classifier) HandleType() string {
	return c.vocabulary.HandleType
}
