// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename maps numbered filenames onto client names and packages the
// results. Files are processed in name order; each produces exactly one
// Outcome and one archive entry. A file whose number is missing or outside
// the roster is passed through under its original name with a warning.
package rename

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/internal/roster"
	"github.com/pdiddy/pdf-namer/pkg/types"
)

// digitRun matches the leftmost maximal run of ASCII digits.
var digitRun = regexp.MustCompile(`[0-9]+`)

// maxIndexDigits bounds the digit runs parsed as integers. Longer runs cannot
// index any realistic roster and are reported as out of range.
const maxIndexDigits = 18

// Result holds the outcome of a rename run.
type Result struct {
	// Outcomes has one record per input file, in processing order.
	Outcomes []types.Outcome

	// Archive holds the renamed (or passed-through) files.
	Archive *archive.Archive

	// Collisions lists entry names that were written more than once. The
	// archive keeps the content of the last file written under each name.
	Collisions []string
}

// Counts returns the number of renamed files and the number of warnings.
func (r *Result) Counts() (renamed, warned int) {
	for _, o := range r.Outcomes {
		if o.Status == types.StatusSuccess {
			renamed++
		} else {
			warned++
		}
	}
	return renamed, warned
}

// HasWarnings reports whether any file was left unrenamed.
func (r *Result) HasWarnings() bool {
	_, warned := r.Counts()
	return warned > 0
}

// Renamer applies a roster and tag to a batch of files.
type Renamer struct {
	Roster roster.Roster
	Tag    string
	Logger *zap.Logger
}

// Rename is a convenience for a Renamer without logging.
func Rename(files []types.InputFile, r roster.Roster, tag string) (*Result, error) {
	return (&Renamer{Roster: r, Tag: tag}).Run(files)
}

// Run renames files and builds the archive. Per-file problems become warning
// outcomes; only archive failures are returned as errors.
func (rn *Renamer) Run(files []types.InputFile) (*Result, error) {
	log := rn.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sorted := append([]types.InputFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	res := &Result{
		Outcomes: make([]types.Outcome, 0, len(sorted)),
		Archive:  archive.New(),
	}
	for _, f := range sorted {
		o := rn.resolve(f.Name)
		res.Outcomes = append(res.Outcomes, o)

		entry := o.EntryName()
		replaced, err := res.Archive.Add(entry, f.Content)
		if err != nil {
			return nil, fmt.Errorf("archiving %s: %w", f.Name, err)
		}
		if replaced {
			res.Collisions = append(res.Collisions, entry)
			log.Warn("archive entry overwritten", zap.String("entry", entry), zap.String("source", f.Name))
		}
		log.Debug("processed file",
			zap.String("file", f.Name),
			zap.String("status", string(o.Status)),
			zap.String("entry", entry))
	}
	return res, nil
}

// resolve computes the outcome for a single filename.
func (rn *Renamer) resolve(name string) types.Outcome {
	digits := digitRun.FindString(name)
	if digits == "" {
		return warning(name, fmt.Sprintf("No number found in: %s", name))
	}

	n, display := parseIndex(digits)
	client, ok := rn.Roster.Lookup(n)
	if !ok {
		return warning(name, fmt.Sprintf("Number %s out of range: %s", display, name))
	}

	newName := client + rn.Tag + Extension(name)
	return types.Outcome{
		OriginalName: name,
		Status:       types.StatusSuccess,
		Message:      fmt.Sprintf("%s → %s", name, newName),
		NewName:      newName,
	}
}

// parseIndex converts a digit run to an int. It also returns the canonical
// decimal form (leading zeros dropped) for messages. Runs too long to parse
// yield -1, which no roster accepts.
func parseIndex(digits string) (int, string) {
	display := strings.TrimLeft(digits, "0")
	if display == "" {
		return 0, "0"
	}
	if len(display) > maxIndexDigits {
		return -1, display
	}
	n, err := strconv.Atoi(display)
	if err != nil {
		return -1, display
	}
	return n, display
}

// Extension returns the suffix of name starting at its last dot, or "" when
// name has no dot.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i:]
}

func warning(name, msg string) types.Outcome {
	return types.Outcome{
		OriginalName: name,
		Status:       types.StatusWarning,
		Message:      msg,
	}
}
