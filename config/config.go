// Package config reads root finding problems from TOML or YAML files.
//
// A file holds optional defaults and a list of problems:
//
//	[defaults]
//	tolerance = 1e-8
//	max_iterations = 200
//
//	[[problem]]
//	name = "cos"
//	method = "false-position"
//	expression = "x^2 + 5*x + cos(x)"
//	bracket = [-1, 0]
//
// The YAML form uses the key "problems" for the list.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto detects the format from the file extension
	FormatAuto
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// DetectFormat returns the format matching the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("cannot detect config format of %s", path)
}

// Duration is a time.Duration written as a string such as "250ms"
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// File is the content of a problem file.
type File struct {
	Defaults Defaults  `toml:"defaults" yaml:"defaults"`
	Problems []Problem `toml:"problem" yaml:"problems"`
}

// Defaults apply to every problem that leaves the field unset.
type Defaults struct {
	Tolerance     float64  `toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	MaxIterations int      `toml:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	MaxRuntime    Duration `toml:"max_runtime,omitempty" yaml:"max_runtime,omitempty"`
	OnExhausted   string   `toml:"on_exhausted,omitempty" yaml:"on_exhausted,omitempty"`
	Criterion     string   `toml:"criterion,omitempty" yaml:"criterion,omitempty"`
	Derivative    string   `toml:"derivative,omitempty" yaml:"derivative,omitempty"`
}

// Load reads the problem file at path. The format follows the extension.
func Load(path string) (*File, error) {
	path = os.ExpandEnv(path)

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a problem file, applies the defaults and validates every
// problem.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %v", format)
	}

	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes f in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(f)
	}
	return nil, fmt.Errorf("unsupported config format %v", format)
}

func (f *File) applyDefaults() {
	d := f.Defaults
	for i := range f.Problems {
		p := &f.Problems[i]
		if p.Tolerance == 0 {
			p.Tolerance = d.Tolerance
		}
		if p.MaxIterations == 0 {
			p.MaxIterations = d.MaxIterations
		}
		if p.MaxRuntime.Duration == 0 {
			p.MaxRuntime = d.MaxRuntime
		}
		if p.OnExhausted == "" {
			p.OnExhausted = d.OnExhausted
		}
		if p.Criterion == "" {
			p.Criterion = d.Criterion
		}
		if p.Derivative == "" {
			p.Derivative = d.Derivative
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("problem-%d", i+1)
		}
	}
}

// Validate checks every problem of the file.
func (f *File) Validate() error {
	if len(f.Problems) == 0 {
		return fmt.Errorf("config contains no problems")
	}
	for i := range f.Problems {
		if err := f.Problems[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
