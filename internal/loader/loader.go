// Package loader reads source documents from disk and turns them into the
// documents the ingestion pipeline chunks and indexes.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lifebloodops/assistant/pkg/chunker"
	"github.com/lifebloodops/assistant/pkg/textextract"
)

// LoadDir walks dir recursively and returns one document per supported
// file, sorted by doc ID. A missing or empty directory is not an error: it
// loads zero documents. Files that fail to parse are logged and skipped so
// one bad file cannot block an ingestion run.
func LoadDir(dir string) ([]chunker.Document, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("docs directory does not exist", "dir", dir)
		return nil, nil
	}

	var docs []chunker.Document
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supported(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		doc, err := LoadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable document", "path", path, "error", err)
			return nil
		}
		if strings.TrimSpace(doc.Text) == "" {
			slog.Warn("skipping empty document", "path", path)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs dir %s: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].DocID < docs[j].DocID })

	slog.Info("loaded documents", "dir", dir, "count", len(docs))
	return docs, nil
}

// LoadFile reads a single document. The doc ID is the file name without its
// extension; the title comes from the first markdown heading when present,
// otherwise from the title-cased file stem.
func LoadFile(path string) (chunker.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return chunker.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return chunker.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	res, err := textextract.Extract(f, info.Size(), ext)
	if err != nil {
		return chunker.Document{}, fmt.Errorf("extract %s: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return chunker.Document{
		DocID: stem,
		Title: titleFor(stem, res.Content),
		Text:  res.Content,
	}, nil
}

func supported(ext string) bool {
	for _, s := range textextract.SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// titleFor prefers the first "# " heading in the content; otherwise it
// title-cases the file stem, treating underscores and hyphens as spaces.
func titleFor(stem, content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			if title := strings.TrimSpace(strings.TrimPrefix(line, "# ")); title != "" {
				return title
			}
		}
		if line != "" && !strings.HasPrefix(line, "#") {
			break
		}
	}
	return titleCase(stem)
}

func titleCase(stem string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	words := strings.Fields(cleaned)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
