// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/pkg/types"
)

var pdfOnly = types.IngestConfig{Extensions: DefaultExtensions}

func TestCollectPlainFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "report3.pdf", "three")
	b := writeFile(t, dir, "notes.txt", "text")

	files, err := Collect([]string{a, b}, pdfOnly)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "report3.pdf", files[0].Name)
	assert.Equal(t, []byte("three"), files[0].Content)
	// Explicitly named files bypass the extension filter.
	assert.Equal(t, "notes.txt", files[1].Name)
}

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a1.pdf", "a")
	writeFile(t, dir, "B2.PDF", "b")
	writeFile(t, dir, "skip.txt", "x")
	writeFile(t, dir, ".hidden.pdf", "h")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "n3.pdf", "n")

	files, err := Collect([]string{dir}, pdfOnly)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1.pdf", "B2.PDF"}, names(files))
}

func TestCollectZip(t *testing.T) {
	a := archive.New()
	_, _ = a.Add("upload/report1.pdf", []byte("one"))
	_, _ = a.Add("upload/readme.md", []byte("md"))
	_, _ = a.Add("__MACOSX/upload/._report1.pdf", []byte("junk"))
	_, _ = a.Add("report2.pdf", []byte("two"))
	data, err := a.Bytes()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "upload.ZIP")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	files, err := Collect([]string{path}, pdfOnly)
	require.NoError(t, err)
	assert.Equal(t, []string{"report1.pdf", "report2.pdf"}, names(files))
	assert.Equal(t, []byte("one"), files[0].Content)
}

func TestCollectNoFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf", "a")
	writeFile(t, dir, "b.txt", "b")

	files, err := Collect([]string{dir}, types.IngestConfig{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.pdf", "b.txt"}, names(files))
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect([]string{filepath.Join(t.TempDir(), "missing.pdf")}, pdfOnly)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestCollectCorruptZip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.zip", "not a zip")
	_, err := Collect([]string{path}, pdfOnly)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.zip")
}

func TestAccept(t *testing.T) {
	assert.True(t, Accept("x.pdf", []string{".pdf"}))
	assert.True(t, Accept("x.PDF", []string{"pdf"}))
	assert.False(t, Accept("x.pdf.txt", []string{".pdf"}))
	assert.False(t, Accept("pdf", []string{".pdf"}))
	assert.True(t, Accept("anything", nil))
}

func names(files []types.InputFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
