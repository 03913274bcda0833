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

package consolidate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/awslabs/ar-go-flows/analysis/intents"
	"github.com/awslabs/ar-go-flows/analysis/report"
	"github.com/awslabs/ar-go-flows/analysis/resolve"
	"github.com/awslabs/ar-go-flows/cmd/argot/tools"
	"github.com/awslabs/ar-go-flows/internal/formatutil"
)

// Usage of the consolidate command
const Usage = ` Consolidate the results of a taint analysis into source/sink records.
Usage:
  argot consolidate [options] <results file(s)>
Examples:
  % argot consolidate -config config.yaml -o reports results.yaml
`

// Flags represents the parsed flags of the consolidate command.
type Flags struct {
	tools.CommonFlags
	subject   string
	outputDir string
	format    string
}

// NewFlags returns the parsed flags for the consolidate command with args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("consolidate")
	subject := flags.FlagSet.String("subject", "", "name of the subject program, overrides the one of the results file")
	outputDir := flags.FlagSet.String("o", "", "output directory, overrides reports-dir in config")
	format := flags.FlagSet.String("format", "",
		fmt.Sprintf("report format (%s, %s or %s), overrides report-format in config",
			config.FormatXML, config.FormatYAML, config.FormatSARIF))
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	switch f := strings.ToLower(*format); f {
	case "", config.FormatXML, config.FormatYAML, config.FormatSARIF:
	default:
		return Flags{}, fmt.Errorf("unsupported report format %q", f)
	}
	if len(common.FlagSet.Args()) == 0 {
		return Flags{}, fmt.Errorf("expected at least one results file")
	}
	return Flags{
		CommonFlags: common,
		subject:     *subject,
		outputDir:   *outputDir,
		format:      strings.ToLower(*format),
	}, nil
}

// Run consolidates every results file of flags and writes one artifact per file. A failure to write an artifact is
// reported and does not stop the other files from being consolidated; a results file that cannot be read does.
func Run(flags Flags) error {
	_, err := run(flags)
	return err
}

// outcome is what the consolidation of one results file produced
type outcome struct {
	subject  string
	stats    flows.Stats
	artifact string
	writeErr error
}

func run(flags Flags) ([]outcome, error) {
	cfg, err := tools.LoadConfig(flags.CommonFlags)
	if err != nil {
		return nil, err
	}
	if flags.outputDir != "" {
		cfg.ReportsDir = flags.outputDir
	}
	if flags.format != "" {
		cfg.ReportFormat = flags.format
	}

	logger := config.NewLogGroup(cfg)
	logger.Infof(formatutil.Faint("Argot consolidate tool - " + config.Version))

	resolver := resolve.NewFromConfig(cfg, logger)
	consolidator := flows.NewConsolidator(cfg, logger, resolver, intents.New(resolver, logger, cfg.MaxDominatorWalk))
	emitter := report.NewEmitterFromConfig(cfg)

	var outcomes []outcome
	for _, path := range flags.FlagSet.Args() {
		results, err := report.LoadResults(path, logger)
		if err != nil {
			return outcomes, fmt.Errorf("could not read results: %w", err)
		}
		subject := SubjectName(flags.subject, results.Subject, path)

		start := time.Now()
		records := consolidator.Consolidate(results.Program, results.Raw, results.Collected)
		logger.Infof("Consolidation of %s took %3.4f s", subject, time.Since(start).Seconds())

		o := outcome{subject: subject, stats: flows.Summary(records)}
		o.artifact, o.writeErr = emitter.Emit(subject, records)
		outcomes = append(outcomes, o)
		if o.writeErr != nil {
			logger.Errorf("could not write the results of %s: %v", subject, o.writeErr)
			continue
		}
		logger.Infof("%s written to %s", formatutil.Bold(o.stats.String()), formatutil.Cyan(o.artifact))
	}
	return outcomes, nil
}

// SubjectName returns the name of the subject of the results in path: the name given on the command line, else the
// one of the results file, else the base name of path without extension.
func SubjectName(override string, fromResults string, path string) string {
	if override != "" {
		return override
	}
	if fromResults != "" {
		return fromResults
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
