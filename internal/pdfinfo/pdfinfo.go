// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo reads descriptive facts from PDF bytes. It is informational
// only: a file that pdfcpu cannot parse is still renamed and archived.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/internal/ingest"
)

// EntryInfo summarizes one archive entry.
type EntryInfo struct {
	Name  string `json:"name" yaml:"name"`
	Size  int    `json:"size" yaml:"size"`
	Pages int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func config() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

// PageCount returns the number of pages in the PDF held in content.
func PageCount(content []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(content), config())
	if err != nil {
		return 0, fmt.Errorf("reading page count: %w", err)
	}
	return n, nil
}

// Inspect describes every entry of a. Page counts are filled in for entries
// with a .pdf extension; parse failures are recorded per entry.
func Inspect(a *archive.Archive) []EntryInfo {
	entries := a.Entries()
	out := make([]EntryInfo, 0, len(entries))
	for _, e := range entries {
		info := EntryInfo{Name: e.Name, Size: len(e.Content)}
		if ingest.Accept(e.Name, ingest.DefaultExtensions) {
			n, err := PageCount(e.Content)
			if err != nil {
				info.Error = err.Error()
			} else {
				info.Pages = n
			}
		}
		out = append(out, info)
	}
	return out
}
