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

package main

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/cmd/argot/consolidate"
	"github.com/awslabs/ar-go-flows/cmd/argot/handles"
	"github.com/awslabs/ar-go-flows/cmd/argot/tools"
)

const usage = `Argot: consolidation of taint flows
Usage:
  argot [tool] [options] <file or package path(s)>
Tools:
  - consolidate: turns the raw results of a taint analysis into source/sink records with resolved resource handles
  - handles: resolves the resource handles of the accessor calls of Go packages
Examples:
  Consolidate the flows of a subject: argot consolidate -config config.yaml -o reports results.yaml
  Resolve the handles of a Go module: argot handles -config config.yaml ./...`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(config.Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "consolidate":
		flags, err := consolidate.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := consolidate.Run(flags); err != nil {
			errExit(err)
		}
	case "handles":
		flags, err := handles.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := handles.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := tools.HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}
