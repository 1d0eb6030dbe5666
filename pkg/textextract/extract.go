// Package textextract pulls plain text out of the document formats the
// ingestion pipeline accepts.
package textextract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result holds the extracted text plus light metadata about the source.
type Result struct {
	Content string
	Pages   int
	Format  string
}

// Extract reads the document and returns its plain text. fileType accepts
// an extension (".pdf"), a bare name ("pdf"), or a MIME type.
func Extract(data io.ReaderAt, size int64, fileType string) (*Result, error) {
	switch strings.ToLower(strings.TrimSpace(fileType)) {
	case ".pdf", "pdf", "application/pdf":
		return extractPDF(data, size)
	case ".docx", "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return extractDOCX(data, size)
	case ".txt", "txt", "text/plain", ".md", "md", "text/markdown":
		return extractPlain(data, size, normalizeFormat(fileType))
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// SupportedExtensions lists the file extensions Extract understands.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".md"}
}

func normalizeFormat(fileType string) string {
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
	if t == "text/markdown" || t == "md" {
		return "md"
	}
	return "txt"
}

func extractPDF(data io.ReaderAt, size int64) (*Result, error) {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Pages that fail to decode are skipped rather than aborting the
		// whole document.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &Result{
		Content: strings.TrimSpace(buf.String()),
		Pages:   numPages,
		Format:  "pdf",
	}, nil
}

func extractDOCX(data io.ReaderAt, size int64) (*Result, error) {
	reader, err := zip.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	var buf strings.Builder
	for _, f := range reader.File {
		if filepath.Base(f.Name) != "document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		buf.WriteString(stripXMLTags(string(content)))
		break
	}

	return &Result{
		Content: strings.TrimSpace(buf.String()),
		Pages:   1,
		Format:  "docx",
	}, nil
}

func extractPlain(data io.ReaderAt, size int64, format string) (*Result, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", format, err)
	}

	return &Result{
		Content: string(bytes.TrimSpace(buf)),
		Pages:   1,
		Format:  format,
	}, nil
}

func stripXMLTags(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
