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
Package consolidate implements the front-end to the Argot consolidation tool, which turns the raw results of a taint
analysis into source/sink records, resolving the resource handles of the sources and describing the intents sent to
launch sinks. One artifact is written per results file, named after the subject program.

Usage:

	argot consolidate [flags] results.yaml...

The flags are:

	-config path      a path to the configuration file containing the vocabulary of accessors and sinks

	-o dir            the directory where the artifacts are written, overrides the config file

	-format f         the format of the artifacts: xml, yaml or sarif

	-subject name     the name of the subject program, overrides the one of the results file

	-verbose=false    setting verbose mode, overrides config file options if set
*/
package consolidate
