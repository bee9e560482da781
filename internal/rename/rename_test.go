// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/internal/roster"
	"github.com/pdiddy/pdf-namer/pkg/types"
)

func testRoster(t *testing.T) roster.Roster {
	t.Helper()
	r, err := roster.New([]string{"Alpha CU", "Beta CU", "Gamma CU"})
	require.NoError(t, err)
	return r
}

func file(name string) types.InputFile {
	return types.InputFile{Name: name, Content: []byte("content of " + name)}
}

func TestRenameSingleFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		tag        string
		wantStatus types.OutcomeStatus
		wantEntry  string
		wantMsg    string
	}{
		{"maps index to client", "report3.pdf", "_2025", types.StatusSuccess, "Gamma CU_2025.pdf", "report3.pdf → Gamma CU_2025.pdf"},
		{"empty tag", "1.pdf", "", types.StatusSuccess, "Alpha CU.pdf", "1.pdf → Alpha CU.pdf"},
		{"leading zeros", "file002.pdf", "", types.StatusSuccess, "Beta CU.pdf", "file002.pdf → Beta CU.pdf"},
		{"first run wins", "invoice_2_v3.pdf", "", types.StatusSuccess, "Beta CU.pdf", "invoice_2_v3.pdf → Beta CU.pdf"},
		{"no extension", "scan1", "_x", types.StatusSuccess, "Alpha CU_x", "scan1 → Alpha CU_x"},
		{"last dot only", "week.2.final.pdf", "", types.StatusSuccess, "Beta CU.pdf", "week.2.final.pdf → Beta CU.pdf"},
		{"no digits", "nofile.pdf", "_2025", types.StatusWarning, "nofile.pdf", "No number found in: nofile.pdf"},
		{"zero", "file0.pdf", "", types.StatusWarning, "file0.pdf", "Number 0 out of range: file0.pdf"},
		{"all zeros", "file000.pdf", "", types.StatusWarning, "file000.pdf", "Number 0 out of range: file000.pdf"},
		{"above roster", "file4.pdf", "", types.StatusWarning, "file4.pdf", "Number 4 out of range: file4.pdf"},
		{"huge number", "file99999999999999999999999.pdf", "", types.StatusWarning, "file99999999999999999999999.pdf", "Number 99999999999999999999999 out of range: file99999999999999999999999.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Rename([]types.InputFile{file(tt.file)}, testRoster(t), tt.tag)
			require.NoError(t, err)
			require.Len(t, res.Outcomes, 1)

			o := res.Outcomes[0]
			assert.Equal(t, tt.file, o.OriginalName)
			assert.Equal(t, tt.wantStatus, o.Status)
			assert.Equal(t, tt.wantMsg, o.Message)
			assert.Equal(t, tt.wantEntry, o.EntryName())

			require.Equal(t, 1, res.Archive.Len())
			got, ok := res.Archive.Get(tt.wantEntry)
			require.True(t, ok)
			assert.Equal(t, []byte("content of "+tt.file), got)
		})
	}
}

func TestRenameFirstDigitRunBinds(t *testing.T) {
	r, err := roster.New(makeNames(12))
	require.NoError(t, err)

	res, err := Rename([]types.InputFile{file("invoice_10_v2.pdf")}, r, "")
	require.NoError(t, err)
	assert.Equal(t, "Client 10.pdf", res.Outcomes[0].NewName)
}

func TestRenameOutOfRangeDefaultRoster(t *testing.T) {
	res, err := Rename([]types.InputFile{file("file99.pdf")}, roster.Default(), "")
	require.NoError(t, err)
	o := res.Outcomes[0]
	assert.Equal(t, types.StatusWarning, o.Status)
	assert.Contains(t, o.Message, "out of range")
	_, ok := res.Archive.Get("file99.pdf")
	assert.True(t, ok)
}

func TestRenameSortsByName(t *testing.T) {
	files := []types.InputFile{file("c3.pdf"), file("a1.pdf"), file("nofile.pdf"), file("b2.pdf")}
	res, err := Rename(files, testRoster(t), "")
	require.NoError(t, err)

	var order []string
	for _, o := range res.Outcomes {
		order = append(order, o.OriginalName)
	}
	assert.Equal(t, []string{"a1.pdf", "b2.pdf", "c3.pdf", "nofile.pdf"}, order)

	var entries []string
	for _, e := range res.Archive.Entries() {
		entries = append(entries, e.Name)
	}
	assert.Equal(t, []string{"Alpha CU.pdf", "Beta CU.pdf", "Gamma CU.pdf", "nofile.pdf"}, entries)

	// Input slice is left untouched.
	assert.Equal(t, "c3.pdf", files[0].Name)
}

func TestRenameOneOutcomePerFile(t *testing.T) {
	files := []types.InputFile{file("x1.pdf"), file("x9.pdf"), file("plain.pdf"), file("y2.pdf")}
	res, err := Rename(files, testRoster(t), "_t")
	require.NoError(t, err)
	assert.Len(t, res.Outcomes, len(files))

	renamed, warned := res.Counts()
	assert.Equal(t, 2, renamed)
	assert.Equal(t, 2, warned)
	assert.True(t, res.HasWarnings())
}

func TestRenameCollisionLastWriteWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rn := &Renamer{Roster: testRoster(t), Tag: "", Logger: zap.New(core)}

	files := []types.InputFile{
		{Name: "a_1.pdf", Content: []byte("first")},
		{Name: "b_1.pdf", Content: []byte("second")},
	}
	res, err := rn.Run(files)
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, "Alpha CU.pdf", res.Outcomes[0].NewName)
	assert.Equal(t, "Alpha CU.pdf", res.Outcomes[1].NewName)

	assert.Equal(t, 1, res.Archive.Len())
	got, _ := res.Archive.Get("Alpha CU.pdf")
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, []string{"Alpha CU.pdf"}, res.Collisions)
	assert.Equal(t, 1, logs.FilterMessage("archive entry overwritten").Len())
}

func TestRenameNotIdempotent(t *testing.T) {
	first, err := Rename([]types.InputFile{file("report1.pdf")}, testRoster(t), "_2")
	require.NoError(t, err)
	renamed := first.Outcomes[0].NewName
	require.Equal(t, "Alpha CU_2.pdf", renamed)

	second, err := Rename([]types.InputFile{{Name: renamed}}, testRoster(t), "_2")
	require.NoError(t, err)
	assert.Equal(t, "Beta CU_2.pdf", second.Outcomes[0].NewName)
}

func TestRenameArchiveRoundTrip(t *testing.T) {
	files := []types.InputFile{
		{Name: "report3.pdf", Content: []byte("%PDF gamma")},
		{Name: "nofile.pdf", Content: []byte("%PDF none")},
		{Name: "file9.pdf", Content: []byte("%PDF nine")},
		{Name: "a1.pdf", Content: []byte{0, 1, 2, 3}},
	}
	res, err := Rename(files, testRoster(t), "_2025")
	require.NoError(t, err)

	data, err := res.Archive.Bytes()
	require.NoError(t, err)
	back, err := archive.ReadZipBytes(data)
	require.NoError(t, err)

	byName := make(map[string][]byte)
	for _, f := range files {
		byName[f.Name] = f.Content
	}
	want := make(map[string][]byte)
	for _, o := range res.Outcomes {
		want[o.EntryName()] = byName[o.OriginalName]
	}

	got := make(map[string][]byte)
	for _, e := range back.Entries() {
		got[e.Name] = e.Content
	}
	assert.Equal(t, want, got)
	assert.Contains(t, got, "Gamma CU_2025.pdf")
	assert.Contains(t, got, "nofile.pdf")
}

func TestRenameEmptyInput(t *testing.T) {
	res, err := Rename(nil, testRoster(t), "")
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes)
	assert.Equal(t, 0, res.Archive.Len())
	assert.False(t, res.HasWarnings())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".pdf", Extension("report3.pdf"))
	assert.Equal(t, ".gz", Extension("a.tar.gz"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, ".hidden", Extension(".hidden"))
}

func makeNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Client %d", i+1)
	}
	return names
}
