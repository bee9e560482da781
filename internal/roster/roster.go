// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster holds the ordered client list that numeric filename indexes
// map onto. Index 1 is the first client. A Roster is immutable once built.
package roster

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// defaultClients is the built-in weekly update client list.
var defaultClients = []string{
	"1st Mississippi FCU", "Abbey CU", "Achieve CU", "Advantage CU", "Ashland CU",
	"Bayer Heritage FCU", "Best Reward FCU", "Buckeye State CU", "Christian Family CU",
	"Cincinnati Ohio Police FCU", "Coastline FCU", "DESCO FCU", "Education CU",
	"Emerald CU", "Expree CU", "Firefighters & Company FCU", "Gulf Coast Community FCU",
	"LCE FCU", "Medina County FCU", "Members Exchange FCU", "MyUSA CU", "Navigator FCU",
	"NuVista FCU", "Ohio Valley Community FCU", "Pathways Financial CU",
	"Perfect Circle CU", "PSE CU", "Quest FCU", "Sharefax CU", "Singing River FCU",
	"Sno Falls CU", "Sunbelt FCU", "Telhio CU", "The Ohio Education CU", "Towpath CU",
	"Triangle FCU", "UNO FCU", "Wayne County Community FCU", "Yolo FCU",
}

// Roster is an ordered, 1-based list of organization names.
type Roster struct {
	names []string
}

// File is the on-disk YAML layout of a roster.
type File struct {
	Clients []string `yaml:"clients"`
}

// Default returns the built-in client roster.
func Default() Roster {
	return Roster{names: append([]string(nil), defaultClients...)}
}

// New builds a roster from names. The slice is copied, so later changes by the
// caller do not leak in. An empty list or a blank name is rejected.
func New(names []string) (Roster, error) {
	if len(names) == 0 {
		return Roster{}, fmt.Errorf("roster is empty")
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return Roster{}, fmt.Errorf("roster entry %d is blank", i+1)
		}
	}
	return Roster{names: append([]string(nil), names...)}, nil
}

// Load reads a roster from a YAML file with a top-level clients list.
// An empty path returns Default.
func Load(path string) (Roster, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster file %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Roster{}, fmt.Errorf("parsing roster file %s: %w", path, err)
	}
	r, err := New(f.Clients)
	if err != nil {
		return Roster{}, fmt.Errorf("roster file %s: %w", path, err)
	}
	return r, nil
}

// Len returns the number of clients.
func (r Roster) Len() int {
	return len(r.names)
}

// Lookup returns the client for the 1-based index n. The boolean is false
// when n is outside 1..Len.
func (r Roster) Lookup(n int) (string, bool) {
	if n < 1 || n > len(r.names) {
		return "", false
	}
	return r.names[n-1], true
}

// Names returns a copy of the client list in index order.
func (r Roster) Names() []string {
	return append([]string(nil), r.names...)
}
