package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Properties is a flat key/value view of a project file
type Properties map[string]string

// ParseProperties reads a properties file from disk
func ParseProperties(path string) (Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	props, err := ReadProperties(file)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return props, nil
}

// ReadProperties parses key=value and key: value lines. Blank lines and
// lines starting with # or ; are skipped. When a line holds both delimiters
// the = wins. Keys are case-insensitive.
func ReadProperties(r io.Reader) (Properties, error) {
	props := make(Properties)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}

		props[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

// Get returns the value for a key, or empty string if not found
func (p Properties) Get(key string) string {
	return p[key]
}

// GetWithDefault returns the value for a key, or the default if missing or empty
func (p Properties) GetWithDefault(key, defaultValue string) string {
	if val, ok := p[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

// GetBool is true for yes, true, on and 1
func (p Properties) GetBool(key string) bool {
	switch strings.ToLower(p[key]) {
	case "yes", "true", "on", "1":
		return true
	}
	return false
}

// GetList splits a comma-separated value, dropping empty items
func (p Properties) GetList(key string) []string {
	var result []string
	for _, item := range strings.Split(p[key], ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
