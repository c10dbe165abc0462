package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultExtensions are the file extensions collected when a directory is validated.
var DefaultExtensions = []string{".html", ".htm"}

// ProjectConfig holds project-level configuration loaded from .vnupipe.yaml.
type ProjectConfig struct {
	// Options is the validator configuration map handed to NormalizeOptions.
	Options      map[string]any `yaml:"options"       json:"options,omitempty"`
	Jar          string         `yaml:"jar"           json:"jar,omitempty"`
	Java         string         `yaml:"java"          json:"java,omitempty"`
	JVMArgs      []string       `yaml:"jvm_args"      json:"jvm_args,omitempty"`
	Timeout      time.Duration  `yaml:"timeout"       json:"timeout,omitempty"`
	FailOn       string         `yaml:"fail_on"       json:"fail_on,omitempty"`
	Extensions   []string       `yaml:"extensions"    json:"extensions,omitempty"`
	ExcludePaths []string       `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	Cache        bool           `yaml:"cache"         json:"cache,omitempty"`
	Bail         bool           `yaml:"bail"          json:"bail,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
// Unrecognized option values are not errors: NormalizeOptions drops them.
func (c ProjectConfig) Validate() error {
	if _, err := ParseFailPolicy(c.FailOn); err != nil {
		return err
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}

	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions[%d] = %q (must start with a dot)", i, ext)
		}
	}

	for i, arg := range c.JVMArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("jvm_args[%d] must not be empty", i)
		}
	}

	return nil
}

// ResolvedOptions normalizes the configured validator options.
func (c ProjectConfig) ResolvedOptions() Options {
	return NormalizeOptions(c.Options)
}

// FailPolicy returns the configured policy, FailOnError when unset.
func (c ProjectConfig) FailPolicy() FailPolicy {
	p, err := ParseFailPolicy(c.FailOn)
	if err != nil {
		return FailOnError
	}
	return p
}

// ApplySettings overlays the project's validator location on base.
// Explicit (non-zero) values always win.
func (c ProjectConfig) ApplySettings(base ValidatorSettings) ValidatorSettings {
	result := base
	if c.Java != "" {
		result.Java = c.Java
	}
	if c.Jar != "" {
		result.Jar = c.Jar
	}
	if len(c.JVMArgs) > 0 {
		result.JVMArgs = c.JVMArgs
	}
	if c.Timeout > 0 {
		result.Timeout = c.Timeout
	}
	return result
}

// FileExtensions returns the configured extensions or DefaultExtensions.
func (c ProjectConfig) FileExtensions() []string {
	if len(c.Extensions) > 0 {
		return c.Extensions
	}
	return DefaultExtensions
}
