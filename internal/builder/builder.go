package builder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	"github.com/tdewolff/minify/v2"

	"smin/internal/config"
	"smin/internal/minifier"
	"smin/internal/ui"
)

var log = logging.MustGetLogger("builder")

// MediaType is the media type the minifier is registered under. A
// "newline=1" parameter asks for a trailing newline.
const MediaType = "text/x-sql"

// Minify adapts minifier.Run to a minify.MinifierFunc.
func Minify(_ *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	_, err := minifier.Run(r, w, params["newline"] == "1")
	return err
}

// NewMinifier returns a minify.M with the minifier registered for MediaType
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(MediaType, Minify)
	return m
}

// FileResult describes one minified file
type FileResult struct {
	Source  string
	Target  string
	Read    int64
	Written int64
}

// Summary totals a batch run
type Summary struct {
	Files   []FileResult
	Read    int64
	Written int64
}

// Saved returns the bytes removed across all files
func (s *Summary) Saved() int64 {
	return s.Read - s.Written
}

// Builder minifies every file selected by a project
type Builder struct {
	Project *config.Project
	Quiet   bool

	m *minify.M
}

// New creates a Builder for p
func New(p *config.Project) *Builder {
	return &Builder{
		Project: p,
		m:       NewMinifier(),
	}
}

// Files lists the sources the project selects, relative to its directory.
// Previous outputs are never picked up as sources.
func (b *Builder) Files() ([]string, error) {
	p := b.Project
	files, err := ExpandIncludes(p.Dir, p.Include, p.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to expand includes: %w", err)
	}

	outDir := p.OutputDir()
	var sources []string
	for _, rel := range files {
		if p.IsOutput(rel) {
			continue
		}
		if outDir != "" && isWithin(outDir, filepath.Join(p.Dir, rel)) {
			continue
		}
		sources = append(sources, rel)
	}
	return sources, nil
}

// Build minifies every selected file and returns the totals. The first
// failure stops the run.
func (b *Builder) Build() (*Summary, error) {
	files, err := b.Files()
	if err != nil {
		return nil, err
	}
	log.Debugf("%d file(s) selected in %s", len(files), b.Project.Dir)

	summary := &Summary{}
	for _, rel := range files {
		res, err := b.BuildFile(rel)
		if err != nil {
			return summary, err
		}
		summary.Files = append(summary.Files, res)
		summary.Read += res.Read
		summary.Written += res.Written

		if !b.Quiet {
			ui.PrintInfo("%s → %s (%s)", rel, relTo(b.Project.Dir, res.Target), ui.Percent(res.Read-res.Written, res.Read))
		}
	}
	return summary, nil
}

// BuildFile minifies one source, given relative to the project directory
func (b *Builder) BuildFile(rel string) (FileResult, error) {
	p := b.Project
	source := filepath.Join(p.Dir, rel)
	target := p.TargetPath(rel)

	data, err := os.ReadFile(source)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", source, err)
	}

	mediatype := MediaType
	if p.Newline {
		mediatype += ";newline=1"
	}
	out, err := b.m.Bytes(mediatype, data)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to minify %s: %w", source, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return FileResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(target, out, 0644); err != nil {
		return FileResult{}, fmt.Errorf("failed to write %s: %w", target, err)
	}

	log.Debugf("minified %s -> %s (%d -> %d bytes)", source, target, len(data), len(out))
	return FileResult{
		Source:  source,
		Target:  target,
		Read:    int64(len(data)),
		Written: int64(len(out)),
	}, nil
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
