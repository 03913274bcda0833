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

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/awslabs/ar-go-flows/analysis/config"
	"github.com/awslabs/ar-go-flows/analysis/flows"
)

// An Emitter writes the records of a subject program to an artifact in a directory
type Emitter struct {
	dir    string
	format string
}

// NewEmitter returns an emitter writing in dir, in format (one of config.FormatXML, config.FormatYAML or
// config.FormatSARIF). An empty format is xml.
func NewEmitter(dir string, format string) *Emitter {
	if format == "" {
		format = config.FormatXML
	}
	return &Emitter{dir: dir, format: format}
}

// NewEmitterFromConfig returns the emitter for the reports directory and format of cfg
func NewEmitterFromConfig(cfg *config.Config) *Emitter {
	return NewEmitter(cfg.ReportsDir, cfg.ReportFormat)
}

// ArtifactName returns the name of the artifact of subject in format
func ArtifactName(subject string, format string) string {
	return fmt.Sprintf("%s_results.%s", subject, format)
}

// Emit writes records to the artifact of subject, creating the directory of the emitter if it does not exist. It
// returns the path of the artifact.
func (e *Emitter) Emit(subject string, records []flows.Record) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("no subject name")
	}
	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return "", fmt.Errorf("could not create directory %s: %w", e.dir, err)
	}
	name := filepath.Join(e.dir, ArtifactName(subject, e.format))
	f, err := os.Create(name)
	if err != nil {
		return name, fmt.Errorf("could not create %s: %w", name, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, e.format, subject, records); err != nil {
		return name, fmt.Errorf("error while writing %s: %w", name, err)
	}
	if err := w.Flush(); err != nil {
		return name, fmt.Errorf("error while writing %s: %w", name, err)
	}
	return name, nil
}

// Write encodes records in format to w
func Write(w io.Writer, format string, subject string, records []flows.Record) error {
	switch format {
	case config.FormatXML, "":
		return WriteXML(w, subject, records)
	case config.FormatYAML:
		return WriteYAML(w, subject, records)
	case config.FormatSARIF:
		return WriteSARIF(w, subject, records)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
