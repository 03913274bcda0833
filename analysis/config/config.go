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

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig. If no file has been set, the default
// configuration is returned.
func LoadGlobal() (*Config, error) {
	if configFile == "" {
		return NewDefault(), nil
	}
	return Load(configFile)
}

// Config contains the options of the consolidation and the vocabulary of call signatures it classifies.
// If some field is not defined in the config file, it takes its default value.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options

	sourceFile string

	// Vocabulary lists the resource accessors, handle constructors and launch sinks
	Vocabulary Vocabulary `yaml:"vocabulary"`
}

// Options groups the scalar settings of a Config
type Options struct {
	// ReportsDir is the directory where the result artifacts are stored. It is created if it does not exist.
	ReportsDir string `yaml:"reports-dir"`

	// ReportFormat is one of "xml", "yaml" or "sarif"
	ReportFormat string `yaml:"report-format"`

	// MaxDominatorWalk bounds the number of steps of a backward dominator walk
	MaxDominatorWalk int `yaml:"max-dominator-walk"`

	// PrintFlows prints every record as it is consolidated
	PrintFlows bool `yaml:"print-flows"`

	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// Suppress warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// NewDefault returns the default config.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Vocabulary: DefaultVocabulary(),
		Options: Options{
			ReportsDir:       DefaultReportsDir,
			ReportFormat:     FormatXML,
			MaxDominatorWalk: DefaultMaxDominatorWalk,
			PrintFlows:       false,
			LogLevel:         int(InfoLevel),
			SilenceWarn:      false,
		},
	}
}

// Load reads a configuration from a yaml file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := parse(b, filename)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse reads a configuration from the yaml contents b and fills in defaults for all unset fields.
func Parse(b []byte) (*Config, error) {
	return parse(b, "")
}

// parse reads the configuration of source. A relative reports directory set in a config file is relative to the
// directory of that file.
func parse(b []byte, source string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	cfg.sourceFile = source

	if cfg.ReportsDir == "" {
		cfg.ReportsDir = DefaultReportsDir
	} else if source != "" && !filepath.IsAbs(cfg.ReportsDir) {
		cfg.ReportsDir = cfg.RelPath(cfg.ReportsDir)
	}

	cfg.ReportFormat = strings.ToLower(cfg.ReportFormat)
	switch cfg.ReportFormat {
	case "":
		cfg.ReportFormat = FormatXML
	case FormatXML, FormatYAML, FormatSARIF:
	default:
		return nil, fmt.Errorf("unsupported report format %q (expected %s, %s or %s)",
			cfg.ReportFormat, FormatXML, FormatYAML, FormatSARIF)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	if cfg.MaxDominatorWalk <= 0 {
		cfg.MaxDominatorWalk = DefaultMaxDominatorWalk
	}

	cfg.Vocabulary = cfg.Vocabulary.withDefaults(DefaultVocabulary())
	return cfg, nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return filepath.Join(filepath.Dir(c.sourceFile), filename)
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
