package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PropertiesFile = "smin.properties"
	YAMLFile       = "smin.yaml"

	DefaultSuffix = ".min"
)

// DefaultInclude selects every SQL source under the project directory.
var DefaultInclude = []string{"**/*.sql"}

// ErrNoProject is returned when a directory has no project file.
var ErrNoProject = errors.New("no " + PropertiesFile + " or " + YAMLFile + " found")

// Project describes a batch minification run
type Project struct {
	// Dir is the directory include and exclude patterns are relative to.
	Dir string

	// Files to minify (supports wildcards: *.sql, **/*.sql)
	Include []string

	// Files/directories to skip (supports wildcards)
	Exclude []string

	// Output directory. Empty writes next to each source file.
	Output string

	// Suffix is inserted before the extension of every output file.
	Suffix string

	// Append a trailing newline to each output file
	Newline bool
}

type yamlProject struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Output  string   `yaml:"output"`
	Suffix  *string  `yaml:"suffix"`
	Newline bool     `yaml:"newline"`
}

// Exists reports whether dir holds a project file
func Exists(dir string) bool {
	return FileExists(filepath.Join(dir, PropertiesFile)) || FileExists(filepath.Join(dir, YAMLFile))
}

// LoadProject loads the project file found in dir, preferring smin.properties
func LoadProject(dir string) (*Project, error) {
	for _, name := range []string{PropertiesFile, YAMLFile} {
		path := filepath.Join(dir, name)
		if FileExists(path) {
			return LoadProjectFile(path)
		}
	}
	return nil, fmt.Errorf("%s: %w", dir, ErrNoProject)
}

// LoadProjectFile loads a project file, choosing the format by extension
func LoadProjectFile(path string) (*Project, error) {
	var (
		p   *Project
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = loadYAML(path)
	default:
		p, err = loadProperties(path)
	}
	if err != nil {
		return nil, err
	}

	p.Dir = filepath.Dir(path)
	if len(p.Include) == 0 {
		p.Include = DefaultInclude
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func loadProperties(path string) (*Project, error) {
	props, err := ParseProperties(path)
	if err != nil {
		return nil, err
	}

	suffix := DefaultSuffix
	if _, ok := props["suffix"]; ok {
		suffix = props.Get("suffix")
	}

	return &Project{
		Include: props.GetList("include"),
		Exclude: props.GetList("exclude"),
		Output:  props.Get("output"),
		Suffix:  suffix,
		Newline: props.GetBool("newline"),
	}, nil
}

func loadYAML(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw yamlProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	suffix := DefaultSuffix
	if raw.Suffix != nil {
		suffix = *raw.Suffix
	}

	return &Project{
		Include: raw.Include,
		Exclude: raw.Exclude,
		Output:  raw.Output,
		Suffix:  suffix,
		Newline: raw.Newline,
	}, nil
}

// Validate rejects a project that would overwrite its own sources
func (p *Project) Validate() error {
	if p.Output == "" && p.Suffix == "" {
		return errors.New("suffix cannot be empty when no output directory is set")
	}
	return nil
}

// OutputDir returns the absolute output directory, or "" for in-place output
func (p *Project) OutputDir() string {
	if p.Output == "" {
		return ""
	}
	if filepath.IsAbs(p.Output) {
		return p.Output
	}
	return filepath.Join(p.Dir, p.Output)
}

// TargetPath maps a source path, relative to Dir, to where its minified
// form is written.
func (p *Project) TargetPath(rel string) string {
	ext := filepath.Ext(rel)
	name := strings.TrimSuffix(rel, ext) + p.Suffix + ext

	if dir := p.OutputDir(); dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(p.Dir, name)
}

// IsOutput reports whether rel already looks like a minified file
func (p *Project) IsOutput(rel string) bool {
	if p.Suffix == "" {
		return false
	}
	ext := filepath.Ext(rel)
	return strings.HasSuffix(strings.TrimSuffix(rel, ext), p.Suffix)
}
