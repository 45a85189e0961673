package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProjectProperties(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, PropertiesFile), `# batch settings
include: schema/*.sql, queries/**/*.sql
exclude: queries/legacy/**
output: dist
newline: true
`)

	p, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatalf("LoadProject error: %v", err)
	}

	if p.Dir != tmpDir {
		t.Errorf("Dir = %q, want %q", p.Dir, tmpDir)
	}
	if len(p.Include) != 2 {
		t.Errorf("Include count = %d, want 2", len(p.Include))
	}
	if len(p.Exclude) != 1 {
		t.Errorf("Exclude count = %d, want 1", len(p.Exclude))
	}
	if p.Suffix != DefaultSuffix {
		t.Errorf("Suffix = %q, want %q (default)", p.Suffix, DefaultSuffix)
	}
	if !p.Newline {
		t.Error("Newline should be true")
	}
	if p.OutputDir() != filepath.Join(tmpDir, "dist") {
		t.Errorf("OutputDir = %q", p.OutputDir())
	}
}

func TestLoadProjectYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, YAMLFile), `include:
  - "*.sql"
output: out
suffix: ""
`)

	p, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatalf("LoadProject error: %v", err)
	}

	if len(p.Include) != 1 || p.Include[0] != "*.sql" {
		t.Errorf("Include = %v", p.Include)
	}
	if p.Suffix != "" {
		t.Errorf("Suffix = %q, want empty", p.Suffix)
	}
	if p.Newline {
		t.Error("Newline should default to false")
	}
	if got := p.TargetPath("a.sql"); got != filepath.Join(tmpDir, "out", "a.sql") {
		t.Errorf("TargetPath = %q", got)
	}
}

func TestLoadProjectPrefersProperties(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, PropertiesFile), "output=from-properties\n")
	writeFile(t, filepath.Join(tmpDir, YAMLFile), "output: from-yaml\n")

	p, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if p.Output != "from-properties" {
		t.Errorf("Output = %q, want %q", p.Output, "from-properties")
	}
}

func TestLoadProjectDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, PropertiesFile), "")

	p, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Include) != 1 || p.Include[0] != DefaultInclude[0] {
		t.Errorf("Include = %v, want default", p.Include)
	}
	if got := p.TargetPath(filepath.Join("q", "a.sql")); got != filepath.Join(tmpDir, "q", "a.min.sql") {
		t.Errorf("TargetPath = %q", got)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject(t.TempDir())
	if !errors.Is(err, ErrNoProject) {
		t.Errorf("err = %v, want ErrNoProject", err)
	}
}

func TestLoadProjectRejectsInPlaceOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, PropertiesFile), "suffix=\n")

	if _, err := LoadProject(tmpDir); err == nil {
		t.Error("expected error when suffix and output are both empty")
	}
}

func TestLoadProjectBadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, path, "include: [unclosed\n")

	if _, err := LoadProjectFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestIsOutput(t *testing.T) {
	p := &Project{Suffix: ".min"}
	if !p.IsOutput("a.min.sql") {
		t.Error("a.min.sql should be an output file")
	}
	if p.IsOutput("a.sql") {
		t.Error("a.sql should not be an output file")
	}
	if (&Project{}).IsOutput("a.min.sql") {
		t.Error("no suffix means nothing is an output file")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("empty dir should have no project")
	}
	writeFile(t, filepath.Join(tmpDir, YAMLFile), "")
	if !Exists(tmpDir) {
		t.Error("dir with smin.yaml should have a project")
	}
}
