// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/intest/internal/diff"
	"github.com/matt-FFFFFF/intest/internal/runner"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrReadConfigFile is returned when the configuration file cannot be read.
	ErrReadConfigFile = errors.New("failed to read config file")
	// ErrParseConfigFile is returned when the configuration file cannot be decoded.
	ErrParseConfigFile = errors.New("failed to parse config file")
	// ErrUnsupportedFormat is returned for a configuration file that is neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	// ErrInvalidConfig is returned when a configuration value is not allowed.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DefaultFiles are looked for, in order, in the current directory when no file is given.
var DefaultFiles = []string{"intest.yaml", "intest.yml", "intest.hcl"}

const (
	// DefaultExtension is the extension of script files.
	DefaultExtension = ".in"
	// DefaultEchoPrefix is written before each command as it runs.
	DefaultEchoPrefix = "Execute: "

	hclExt  = ".hcl"
	yamlExt = ".yaml"
	ymlExt  = ".yml"
)

// Config is the intest configuration.
type Config struct {
	// Extension selects the script files among the arguments.
	Extension string `yaml:"extension" hcl:"extension,optional"`
	// Shell runs commands: a path, "builtin", or empty for the default shell.
	Shell string `yaml:"shell" hcl:"shell,optional"`
	// Program is the program under test, copied into every work directory.
	Program string `yaml:"program" hcl:"program,optional"`
	// Fixtures are files, directories or go-getter sources copied into every work directory.
	Fixtures []string `yaml:"fixtures" hcl:"fixtures,optional"`
	// Diff is the diff renderer used in failure reports.
	Diff string `yaml:"diff" hcl:"diff,optional"`
	// DiffTool is the external diff tool.
	DiffTool string `yaml:"diff_tool" hcl:"diff_tool,optional"`
	// EchoPrefix is written before each command.
	EchoPrefix string `yaml:"echo_prefix" hcl:"echo_prefix,optional"`
	// Clear removes work directories after their script ran.
	Clear bool `yaml:"clear" hcl:"clear,optional"`
	// OnSetupError is "abort" or "continue".
	OnSetupError string `yaml:"on_setup_error" hcl:"on_setup_error,optional"`
	// WorkRoot is the directory work directories are created in.
	WorkRoot string `yaml:"work_root" hcl:"work_root,optional"`

	// Source is the file the configuration was loaded from, empty for defaults.
	Source string `yaml:"-"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	c := &Config{}
	c.setDefaults()

	return c
}

// Load reads the configuration from path. An empty path looks for DefaultFiles
// in the current directory and falls back to Default.
func Load(path string) (*Config, error) {
	fs := FsFactory()

	if path == "" {
		path = discover(fs)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadConfigFile, err)
	}

	c, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	c.Source = path
	c.setDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func discover(fs afero.Fs) string {
	for _, name := range DefaultFiles {
		if ok, _ := afero.Exists(fs, name); ok {
			return name
		}
	}

	return ""
}

func decode(path string, data []byte) (*Config, error) {
	c := &Config{}

	switch strings.ToLower(filepath.Ext(path)) {
	case yamlExt, ymlExt:
		if err := yaml.UnmarshalWithOptions(data, c, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseConfigFile, path, err)
		}
	case hclExt:
		if err := hclsimple.Decode(path, data, evalContext(), c); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseConfigFile, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return c, nil
}

// evalContext exposes the process environment to HCL files as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}

	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

func (c *Config) setDefaults() {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}

	if c.Diff == "" {
		c.Diff = string(diff.ModeAuto)
	}

	if c.DiffTool == "" {
		c.DiffTool = diff.DefaultTool
	}

	if c.EchoPrefix == "" {
		c.EchoPrefix = DefaultEchoPrefix
	}

	if c.OnSetupError == "" {
		c.OnSetupError = string(runner.SetupAbort)
	}

	if c.WorkRoot == "" {
		c.WorkRoot = "."
	}
}

// Validate checks the values that are limited to a set of choices.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidConfig, c.Extension))
	}

	if !slices.Contains(diff.Modes(), c.Diff) {
		errs = append(errs, fmt.Errorf("%w: diff %q, want one of %s",
			ErrInvalidConfig, c.Diff, strings.Join(diff.Modes(), ", ")))
	}

	switch runner.SetupPolicy(c.OnSetupError) {
	case runner.SetupAbort, runner.SetupContinue:
	default:
		errs = append(errs, fmt.Errorf("%w: on_setup_error %q, want %s or %s",
			ErrInvalidConfig, c.OnSetupError, runner.SetupAbort, runner.SetupContinue))
	}

	return errors.Join(errs...)
}
