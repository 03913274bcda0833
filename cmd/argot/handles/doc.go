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
Package handles implements the front-end to the Argot handle resolution tool, which loads Go packages and reports,
for every call to a resource accessor of the vocabulary, the value of the resource handle it is given.

Usage:

	argot handles [flags] -config config.yaml ./...

The flags are:

	-config path      a path to the configuration file containing the vocabulary of accessors and handle constructors

	-goos os          the platform the packages are loaded for

	-unresolved       only print the calls whose handle could not be resolved

	-verbose=false    setting verbose mode, overrides config file options if set

A call is skipped when its line, or the line above, carries the comment //argot:ignore.
*/
package handles
