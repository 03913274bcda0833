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
	"fmt"
	"io"

	"github.com/awslabs/ar-go-flows/analysis/flows"
	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Subject string         `yaml:"subject"`
	Records []flows.Record `yaml:"records"`
}

// WriteYAML writes records as a yaml document with a subject and a list of records
func WriteYAML(w io.Writer, subject string, records []flows.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{Subject: subject, Records: records}); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML reads a document written by WriteYAML
func ReadYAML(r io.Reader) (string, []flows.Record, error) {
	var rep yamlReport
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return "", nil, fmt.Errorf("could not parse yaml report: %w", err)
	}
	return rep.Subject, rep.Records, nil
}
