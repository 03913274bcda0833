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

package config

const (
	// DefaultReportsDir is the directory result artifacts are written to when the config does not specify one
	DefaultReportsDir = "results"

	// DefaultMaxDominatorWalk bounds the number of immediate-dominator steps of any backward walk. Dominator chains
	// are acyclic, the bound only matters for malformed dominator tables supplied by the upstream engine.
	DefaultMaxDominatorWalk = 4096

	// FormatXML is the default artifact format
	FormatXML = "xml"
	// FormatYAML writes the records as a yaml document
	FormatYAML = "yaml"
	// FormatSARIF writes the records as a SARIF 2.1.0 log
	FormatSARIF = "sarif"
)

// Default vocabulary: the Android content resolver and cursor accessors, and the activity launch methods.
const (
	CursorGetBlob        = "<android.database.Cursor: byte[] getBlob(int)>"
	CursorGetColumnName  = "<android.database.Cursor: java.lang.String getColumnName(int)>"
	CursorGetColumnNames = "<android.database.Cursor: java.lang.String[] getColumnNames()>"
	CursorGetInt         = "<android.database.Cursor: int getInt(int)>"
	CursorGetLong        = "<android.database.Cursor: long getLong(int)>"
	CursorGetString      = "<android.database.Cursor: java.lang.String getString(int)>"
	CursorGetType        = "<android.database.Cursor: int getType(int)>"

	ResolverQuery      = "<android.content.ContentResolver: android.database.Cursor query(android.net.Uri,java.lang.String[],java.lang.String,java.lang.String[],java.lang.String)>"
	ResolverInsert     = "<android.content.ContentResolver: android.net.Uri insert(android.net.Uri,android.content.ContentValues)>"
	ResolverBulkInsert = "<android.content.ContentResolver: int bulkInsert(android.net.Uri,android.content.ContentValues[])>"
	ResolverUpdate     = "<android.content.ContentResolver: int update(android.net.Uri,android.content.ContentValues,java.lang.String,java.lang.String[])>"
	ResolverDelete     = "<android.content.ContentResolver: int delete(android.net.Uri,java.lang.String,java.lang.String[])>"

	UriParse            = "<android.net.Uri: android.net.Uri parse(java.lang.String)>"
	UriWithAppendedPath = "<android.net.Uri: android.net.Uri withAppendedPath(android.net.Uri,java.lang.String)>"
	StringBuilderToStr  = "<java.lang.StringBuilder: java.lang.String toString()>"
	StringConcat        = "<java.lang.String: java.lang.String concat(java.lang.String)>"

	StartActivity                 = "void startActivity(android.content.Intent)"
	StartActivityWithOptions      = "void startActivity(android.content.Intent,android.os.Bundle)"
	StartActivityForResult        = "void startActivityForResult(android.content.Intent,int)"
	StartActivityForResultOptions = "void startActivityForResult(android.content.Intent,int,android.os.Bundle)"

	UriType    = "android.net.Uri"
	IntentType = "android.content.Intent"
)
