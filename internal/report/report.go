// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders rename outcomes for people and for scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-namer/pkg/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Manifest describes a finished run.
type Manifest struct {
	Tag         string          `json:"tag" yaml:"tag"`
	Archive     string          `json:"archive" yaml:"archive"`
	Location    string          `json:"location,omitempty" yaml:"location,omitempty"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Renamed     int             `json:"renamed" yaml:"renamed"`
	Warnings    int             `json:"warnings" yaml:"warnings"`
	Collisions  []string        `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	Outcomes    []types.Outcome `json:"outcomes" yaml:"outcomes"`
}

// NewManifest counts outcomes and stamps the current time.
func NewManifest(tag, archiveName string, outcomes []types.Outcome, collisions []string) Manifest {
	m := Manifest{
		Tag:         tag,
		Archive:     archiveName,
		GeneratedAt: time.Now().UTC(),
		Collisions:  collisions,
		Outcomes:    outcomes,
	}
	for _, o := range outcomes {
		if o.Status == types.StatusSuccess {
			m.Renamed++
		} else {
			m.Warnings++
		}
	}
	return m
}

// Write renders m in the given format.
func Write(w io.Writer, f Format, m Manifest) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, m)
	case FormatYAML:
		return WriteYAML(w, m)
	default:
		return WriteText(w, m)
	}
}

// WriteText prints one line per outcome followed by a summary.
func WriteText(w io.Writer, m Manifest) error {
	for _, o := range m.Outcomes {
		if _, err := fmt.Fprintf(w, "%s %s\n", marker(o.Status), o.Message); err != nil {
			return err
		}
	}
	for _, c := range m.Collisions {
		if _, err := fmt.Fprintf(w, "⚠️ Overwritten duplicate entry: %s\n", c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nSummary: %d renamed, %d warnings (total: %d)\n",
		m.Renamed, m.Warnings, len(m.Outcomes))
	return err
}

// WriteJSON encodes m as indented JSON.
func WriteJSON(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding JSON manifest: %w", err)
	}
	return nil
}

// WriteYAML encodes m as YAML.
func WriteYAML(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding YAML manifest: %w", err)
	}
	return enc.Close()
}

func marker(s types.OutcomeStatus) string {
	if s == types.StatusSuccess {
		return "✅"
	}
	return "⚠️"
}
