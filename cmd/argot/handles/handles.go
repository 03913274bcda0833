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

package handles

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"github.com/awslabs/ar-go-flows/analysis/ssaload"
	"github.com/awslabs/ar-go-flows/cmd/argot/tools"
	"github.com/awslabs/ar-go-flows/internal/formatutil"
	"github.com/awslabs/ar-go-flows/internal/funcutil"
)

// Usage of the handles command
const Usage = ` Resolve the resource handles of the accessor calls of Go packages.
Usage:
  argot handles [options] <package path(s)>
Examples:
  % argot handles -config config.yaml ./...
`

// Flags represents the parsed flags of the handles command.
type Flags struct {
	tools.CommonFlags
	platform       string
	unresolvedOnly bool
}

// NewFlags returns the parsed flags for the handles command with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("handles")
	platform := flags.FlagSet.String("goos", "", "platform the packages are loaded for (GOOS)")
	unresolved := flags.FlagSet.Bool("unresolved", false, "only print the calls whose handle is not resolved")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, platform: *platform, unresolvedOnly: *unresolved}, nil
}

// Run loads the packages of flags and prints the resolution of every accessor call on standard output.
func Run(flags Flags) error {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(cfg)
	logger.Infof(formatutil.Faint("Argot handles tool - " + config.Version))
	logger.Infof(formatutil.Faint("Reading sources"))

	loaded, err := ssaload.LoadProgram(nil, flags.platform, flags.FlagSet.Args())
	if err != nil {
		return fmt.Errorf("could not load program: %w", err)
	}

	start := time.Now()
	res, err := ssaload.ResolveFunctions(loaded.Program.Fset, loaded.Functions(), loaded.Directives,
		resolve.NewFromConfig(cfg, logger), logger)
	if err != nil {
		return fmt.Errorf("handle resolution failed: %w", err)
	}
	logger.Infof("Resolution took %3.4f s", time.Since(start).Seconds())

	Print(os.Stdout, res, flags.unresolvedOnly, cfg.Verbose())
	return nil
}

// Print writes one line per resolution to w. In verbose mode, each line ends with the function containing the call.
func Print(w io.Writer, res []ssaload.Resolution, unresolvedOnly bool, verbose bool) {
	if unresolvedOnly {
		res = funcutil.Filter(res, func(r ssaload.Resolution) bool { return !r.IsResolved() })
	}
	for _, r := range res {
		var line string
		if r.IsResolved() {
			line = fmt.Sprintf("%s: %s", r.Position, formatutil.Green(formatutil.Sanitize(r.Resolved)))
		} else {
			line = fmt.Sprintf("%s: %s %s", r.Position, formatutil.Yellow(formatutil.Sanitize(r.Call)),
				formatutil.Faint("(unresolved)"))
		}
		if verbose {
			line += " " + formatutil.Faint("in "+formatutil.Sanitize(r.Caller))
		}
		fmt.Fprintln(w, line)
	}
}
