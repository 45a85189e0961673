package builder

import (
	"os"
	"path/filepath"
	"testing"
)

func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("select 1;"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return tmpDir
}

func TestExpandGlob(t *testing.T) {
	tmpDir := makeTree(t,
		"schema.sql",
		"seed.sql",
		"notes.txt",
		"queries/report.sql",
		"queries/daily.sql",
		"queries/legacy/old.sql",
		"migrations/001_init.sql",
		"migrations/README.md",
	)

	tests := []struct {
		name     string
		pattern  string
		expected int
	}{
		{"single wildcard", "*.sql", 2},
		{"text files", "*.txt", 1},
		{"directory", "queries", 3},
		{"recursive sql", "**/*.sql", 6},
		{"recursive under prefix", "queries/**/*.sql", 3},
		{"everything under prefix", "migrations/**", 2},
		{"specific file", "seed.sql", 1},
		{"subdirectory wildcard", "queries/*.sql", 2},
		{"missing prefix", "nope/**/*.sql", 0},
		{"no match", "*.md", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExpandGlob(tmpDir, tt.pattern)
			if err != nil {
				t.Errorf("ExpandGlob(%q) error = %v", tt.pattern, err)
				return
			}
			if len(results) != tt.expected {
				t.Errorf("ExpandGlob(%q) = %d files, want %d. Got: %v", tt.pattern, len(results), tt.expected, results)
			}
		})
	}
}

func TestContainsGlobChars(t *testing.T) {
	tests := []struct {
		pattern  string
		expected bool
	}{
		{"*.sql", true},
		{"file?.sql", true},
		{"[abc].sql", true},
		{"file.sql", false},
		{"queries/report.sql", false},
		{"**/*.sql", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := containsGlobChars(tt.pattern); got != tt.expected {
				t.Errorf("containsGlobChars(%q) = %v, want %v", tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		path     string
		excludes []string
		expected bool
	}{
		{"queries/legacy/old.sql", []string{"queries/legacy"}, true},
		{"queries/legacy/old.sql", []string{"queries/legacy/**"}, true},
		{"queries/legacy/old.sql", []string{"**/old.sql"}, true},
		{"queries/legacy/old.sql", []string{"old.sql"}, true},
		{"queries/report.sql", []string{"*.min.sql"}, false},
		{"queries/report.min.sql", []string{"*.min.sql"}, true},
		{"queries/report.sql", []string{"queries/*.sql"}, true},
		{"queries/legacy/old.sql", []string{"queries/*.sql"}, false},
		{"schema.sql", []string{"test", "dist/**"}, false},
		{"dist/schema.sql", []string{"test", "dist/**"}, true},
		{"test/a.sql", []string{"test"}, true},
		{"latest/a.sql", []string{"test"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsExcluded(tt.path, tt.excludes); got != tt.expected {
				t.Errorf("IsExcluded(%q, %v) = %v, want %v", tt.path, tt.excludes, got, tt.expected)
			}
		})
	}
}

func TestExpandIncludes(t *testing.T) {
	tmpDir := makeTree(t,
		"schema.sql",
		"queries/report.sql",
		"queries/legacy/old.sql",
	)

	results, err := ExpandIncludes(tmpDir, []string{"*.sql", "**/*.sql"}, []string{"queries/legacy"})
	if err != nil {
		t.Fatal(err)
	}

	// schema.sql matched twice but listed once, legacy excluded
	if len(results) != 2 {
		t.Errorf("ExpandIncludes = %v, want 2 files", results)
	}
}
