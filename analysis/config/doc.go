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
Package config provides a simple way to manage configuration files.

Use [Load](filename) to load a configuration from a specific filename.

Use [SetGlobalConfig](filename) to set filename as the global config, and then [LoadGlobal]() to load the global
config.

A config file is a yaml document. The top-level fields are "options" and "vocabulary". Any field that is not set takes
its default value, see [NewDefault] and [DefaultVocabulary]. For example, a valid config file is as follows:

	options:
	  reports-dir: out
	  report-format: sarif
	  log-level: 4
	vocabulary:
	  handle-type: android.net.Uri
	  resource-accessors:
	    - "<android.content.ContentResolver: int delete(android.net.Uri,java.lang.String,java.lang.String[])>"

# Vocabulary

The vocabulary lists call signatures in the canonical form produced by the upstream analysis, e.g.
"<android.database.Cursor: java.lang.String getString(int)>". Launch sinks are matched on sub-signatures, e.g.
"void startActivity(android.content.Intent)".
*/
package config
