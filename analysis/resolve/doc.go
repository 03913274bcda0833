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
Package resolve resolves the resource handles passed to resource accessors (e.g. the URI of a ContentResolver query)
to the constant they were built from, within the method of the accessor call.

The resolution is a backward walk on the dominator tree of the method: starting from the call, the immediate
dominators are visited one at a time until the definition of the handle is found. Only dominating definitions are
considered, and the nearest one wins. Definitions that cannot be resolved statically (concatenations, calls, method
parameters) stop the walk without a value.

Resolution never fails: an accessor whose handle is not resolved keeps its declared signature. A resolved accessor
gets the handle's type in its signature replaced by the value, for example

	<android.content.ContentResolver: android.database.Cursor query(content://sms,java.lang.String[],...)>
*/
package resolve
