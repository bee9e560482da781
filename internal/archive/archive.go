// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive holds the renamed files of a run and packs them into a ZIP.
//
// An Archive maps entry names to content. Adding a name that is already
// present replaces the earlier content (last write wins) while the entry keeps
// the position of its first occurrence, so output order stays deterministic.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// modTime is stamped on every entry so identical inputs give identical ZIPs.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one named file in the archive.
type Entry struct {
	Name    string
	Content []byte
}

// Archive is an ordered name-to-content container.
type Archive struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{index: make(map[string]int)}
}

// Add stores content under name. It reports whether an existing entry with
// the same name was replaced.
func (a *Archive) Add(name string, content []byte) (replaced bool, err error) {
	if name == "" {
		return false, fmt.Errorf("adding entry: empty name")
	}
	if i, ok := a.index[name]; ok {
		a.entries[i].Content = content
		return true, nil
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, Entry{Name: name, Content: content})
	return false, nil
}

// Len returns the number of distinct entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Entries returns the entries in insertion order. The slice is a copy; the
// content buffers are shared.
func (a *Archive) Entries() []Entry {
	return append([]Entry(nil), a.entries...)
}

// Get returns the content stored under name.
func (a *Archive) Get(name string) ([]byte, bool) {
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.entries[i].Content, true
}

// WriteZip writes the archive to w as a deflate-compressed ZIP.
func (a *Archive) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, e := range a.entries {
		hdr := &zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			zw.Close()
			return fmt.Errorf("creating zip entry %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Content); err != nil {
			zw.Close()
			return fmt.Errorf("writing zip entry %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing zip: %w", err)
	}
	return nil
}

// Bytes returns the ZIP encoding of the archive.
func (a *Archive) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.WriteZip(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadZip decodes a ZIP into an Archive. Directory entries are skipped.
func ReadZip(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	a := New()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		if _, err := a.Add(f.Name, data); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ReadZipBytes decodes an in-memory ZIP.
func ReadZipBytes(data []byte) (*Archive, error) {
	return ReadZip(bytes.NewReader(data), int64(len(data)))
}

// ReadZipFile decodes the ZIP at path.
func ReadZipFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	a, err := ReadZipBytes(data)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	return a, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading zip entry %s: %w", f.Name, err)
	}
	return data, nil
}
