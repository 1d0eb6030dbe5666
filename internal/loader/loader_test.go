package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirReadsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "donor_guide.md", "# Donor Eligibility Guide\n\nDonors must be 17 or older.")
	writeFile(t, dir, "screening-process.txt", "Screening includes a health questionnaire.")
	writeFile(t, dir, "notes.json", `{"ignored": true}`)

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "donor_guide", docs[0].DocID)
	assert.Equal(t, "Donor Eligibility Guide", docs[0].Title)
	assert.Contains(t, docs[0].Text, "Donors must be 17 or older.")

	assert.Equal(t, "screening-process", docs[1].DocID)
	assert.Equal(t, "Screening Process", docs[1].Title)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	docs, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadDirSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   \n\n  ")
	writeFile(t, dir, "real.txt", "Actual content worth indexing.")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "real", docs[0].DocID)
}

func TestLoadDirWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "protocols")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, dir, "top.txt", "Top level document content.")
	writeFile(t, sub, "nested.txt", "Nested document content.")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "nested", docs[0].DocID)
	assert.Equal(t, "top", docs[1].DocID)
}

func TestLoadDirSortsByDocID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.txt", "Last alphabetically.")
	writeFile(t, dir, "alpha.txt", "First alphabetically.")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "alpha", docs[0].DocID)
	assert.Equal(t, "zebra", docs[1].DocID)
}

func TestLoadFileTitleFromStem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blood_drive_setup.txt", "Steps for setting up a drive.")

	doc, err := LoadFile(filepath.Join(dir, "blood_drive_setup.txt"))
	require.NoError(t, err)
	assert.Equal(t, "blood_drive_setup", doc.DocID)
	assert.Equal(t, "Blood Drive Setup", doc.Title)
}

func TestLoadFileHeadingBeatsStem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "misc.md", "# Emergency Protocols\n\nCall the coordinator first.")

	doc, err := LoadFile(filepath.Join(dir, "misc.md"))
	require.NoError(t, err)
	assert.Equal(t, "Emergency Protocols", doc.Title)
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "a,b,c")

	_, err := LoadFile(filepath.Join(dir, "data.csv"))
	assert.Error(t, err)
}
