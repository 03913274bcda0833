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

// Package formatutil manipulates string colors and other formatting operations for terminal output.
package formatutil

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	Bold   = Color("\033[1m%s\033[0m")
	Faint  = Color("\033[2m%s\033[0m")
	Red    = Color("\033[1;31m%s\033[0m")
	Green  = Color("\033[1;32m%s\033[0m")
	Yellow = Color("\033[1;33m%s\033[0m")
	Cyan   = Color("\033[1;36m%s\033[0m")
)

var (
	isTerminal     bool
	isTerminalOnce sync.Once
)

// stdoutIsTerminal reports whether standard output is a terminal. The answer is computed once.
func stdoutIsTerminal() bool {
	isTerminalOnce.Do(func() {
		isTerminal = term.IsTerminal(int(os.Stdout.Fd()))
	})
	return isTerminal
}

// Color returns a function that formats its arguments with the escape sequence colorString when standard output
// is a terminal, and without any escape sequence otherwise.
func Color(colorString string) func(...interface{}) string {
	return func(args ...interface{}) string {
		if stdoutIsTerminal() {
			return fmt.Sprintf(colorString, fmt.Sprint(args...))
		}
		return fmt.Sprint(args...)
	}
}

// Sanitize removes all escape sequences from s
func Sanitize(s string) string {
	r := fmt.Sprintf("%q", s)
	if len(r) >= 2 {
		return r[1 : len(r)-1]
	}
	return r
}

// Flow renders a "source -> sink" pair, coloring the source green and the sink red.
func Flow(source string, sink string) string {
	return fmt.Sprintf("%s -> %s", Green(Sanitize(source)), Red(Sanitize(sink)))
}
