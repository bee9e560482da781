// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns command-line paths into the in-memory files handed to
// the renamer. Plain files are taken as given; directories are listed one
// level deep and ZIP uploads are unpacked, both filtered by extension.
package ingest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/pkg/types"
)

// DefaultExtensions is the upload filter used when none is configured.
var DefaultExtensions = []string{".pdf"}

// Collect reads every path into memory. Any unreadable path fails the whole
// collection.
func Collect(paths []string, cfg types.IngestConfig) ([]types.InputFile, error) {
	var files []types.InputFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading input %s: %w", p, err)
		}

		var got []types.InputFile
		switch {
		case info.IsDir():
			got, err = fromDir(p, cfg.Extensions)
		case strings.EqualFold(filepath.Ext(p), ".zip"):
			got, err = fromZip(p, cfg.Extensions)
		default:
			got, err = fromFile(p)
		}
		if err != nil {
			return nil, err
		}
		files = append(files, got...)
	}
	return files, nil
}

func fromFile(p string) ([]types.InputFile, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", p, err)
	}
	return []types.InputFile{{Name: filepath.Base(p), Content: data}}, nil
}

func fromDir(dir string, exts []string) ([]types.InputFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var files []types.InputFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !Accept(name, exts) {
			continue
		}
		got, err := fromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, got...)
	}
	return files, nil
}

func fromZip(p string, exts []string) ([]types.InputFile, error) {
	a, err := archive.ReadZipFile(p)
	if err != nil {
		return nil, err
	}
	var files []types.InputFile
	for _, e := range a.Entries() {
		if strings.HasPrefix(e.Name, "__MACOSX/") {
			continue
		}
		name := path.Base(e.Name)
		if strings.HasPrefix(name, ".") || !Accept(name, exts) {
			continue
		}
		files = append(files, types.InputFile{Name: name, Content: e.Content})
	}
	return files, nil
}

// Accept reports whether name carries one of exts, ignoring case. An empty
// exts list accepts every name.
func Accept(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range exts {
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
