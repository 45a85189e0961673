package builder

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smin/internal/config"
)

func TestMinifyThroughMediaType(t *testing.T) {
	m := NewMinifier()

	out, err := m.String(MediaType, "select  a -- x\nfrom t")
	require.NoError(t, err)
	assert.Equal(t, "select a from t", out)

	var buf bytes.Buffer
	err = m.Minify(MediaType+";newline=1", &buf, strings.NewReader("a  b"))
	require.NoError(t, err)
	assert.Equal(t, "a b\n", buf.String())
}

func TestBuild(t *testing.T) {
	tmpDir := makeTree(t, "queries/legacy/old.sql")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "schema.sql"), []byte("create table t (\n  id integer -- key\n);\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "schema.min.sql"), []byte("stale"), 0644))

	p := &config.Project{
		Dir:     tmpDir,
		Include: []string{"**/*.sql"},
		Exclude: []string{"queries/legacy"},
		Suffix:  config.DefaultSuffix,
		Newline: true,
	}
	b := New(p)
	b.Quiet = true

	summary, err := b.Build()
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)

	got, err := os.ReadFile(filepath.Join(tmpDir, "schema.min.sql"))
	require.NoError(t, err)
	assert.Equal(t, "create table t(id integer);\n", string(got))

	assert.Equal(t, summary.Files[0].Read, summary.Read)
	assert.Equal(t, int64(len(got)), summary.Written)
	assert.Positive(t, summary.Saved())
}

func TestBuildIntoOutputDir(t *testing.T) {
	tmpDir := makeTree(t, "a.sql", "sub/b.sql", "dist/old.sql")

	p := &config.Project{
		Dir:     tmpDir,
		Include: config.DefaultInclude,
		Output:  "dist",
	}
	b := New(p)
	b.Quiet = true

	files, err := b.Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.sql", filepath.Join("sub", "b.sql")}, files)

	_, err = b.Build()
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(tmpDir, "dist", "sub", "b.sql"))
	require.NoError(t, err)
	assert.Equal(t, "select 1;", string(got))
}

func TestBuildFileMissingSource(t *testing.T) {
	b := New(&config.Project{Dir: t.TempDir(), Suffix: ".min"})
	_, err := b.BuildFile("nope.sql")
	assert.Error(t, err)
}

func TestIsWithin(t *testing.T) {
	assert.True(t, isWithin("/a/dist", "/a/dist/x.sql"))
	assert.False(t, isWithin("/a/dist", "/a/x.sql"))
	assert.False(t, isWithin("/a/dist", "/a/distant/x.sql"))
}
