package builder

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ExpandGlob expands a pattern relative to baseDir and returns the matching
// regular files, relative to baseDir. ** matches any number of directories,
// and a matched directory contributes every file beneath it.
func ExpandGlob(baseDir, pattern string) ([]string, error) {
	if !containsGlobChars(pattern) {
		path := filepath.Join(baseDir, pattern)
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
		return walkFiles(baseDir, path, nil)
	}

	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(filepath.Join(baseDir, pattern))
		if err != nil {
			return nil, err
		}

		var results []string
		for _, match := range matches {
			files, err := walkFiles(baseDir, match, nil)
			if err != nil {
				return nil, err
			}
			results = append(results, files...)
		}
		return results, nil
	}

	prefix, suffix, _ := strings.Cut(filepath.ToSlash(pattern), "**")
	startDir := filepath.Join(baseDir, filepath.FromSlash(strings.TrimSuffix(prefix, "/")))
	suffix = strings.TrimPrefix(suffix, "/")

	if _, err := os.Stat(startDir); os.IsNotExist(err) {
		return nil, nil
	}

	return walkFiles(baseDir, startDir, func(path string, d fs.DirEntry) bool {
		if suffix == "" {
			return true
		}
		if matched, _ := filepath.Match(suffix, d.Name()); matched {
			return true
		}
		rel, err := filepath.Rel(startDir, path)
		if err != nil {
			return false
		}
		matched, _ := filepath.Match(suffix, filepath.ToSlash(rel))
		return matched
	})
}

// walkFiles lists the regular files at or below root that keep accepts,
// relative to baseDir. A nil keep accepts everything.
func walkFiles(baseDir, root string, keep func(string, fs.DirEntry) bool) ([]string, error) {
	var results []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if keep != nil && !keep(path, d) {
			return nil
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return nil
		}
		results = append(results, rel)
		return nil
	})
	return results, err
}

// containsGlobChars checks if a pattern contains glob special characters
func containsGlobChars(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// IsExcluded checks if a path matches any of the exclude patterns
func IsExcluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern reports whether path, or one of its parent directories,
// matches pattern. Patterns without a slash may also match the base name.
func matchPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")

	re, err := globRegexp(pattern)
	if err != nil {
		return false
	}

	if !strings.Contains(pattern, "/") && re.MatchString(filepath.Base(path)) {
		return true
	}
	for p := path; p != "." && p != "/" && p != ""; p = parentOf(p) {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

func parentOf(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// globRegexp compiles a slash-separated glob. * and ? stay inside one path
// segment; ** crosses segments.
func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// ExpandIncludes expands all include patterns and returns unique file paths
func ExpandIncludes(baseDir string, includes []string, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var results []string

	for _, pattern := range includes {
		expanded, err := ExpandGlob(baseDir, pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range expanded {
			if seen[path] || IsExcluded(path, excludes) {
				continue
			}
			seen[path] = true
			results = append(results, path)
		}
	}

	return results, nil
}
