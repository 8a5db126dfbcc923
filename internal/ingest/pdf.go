package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts plain text page by page. Pages that fail to decode are
// skipped; a document with no extractable text is an error.
func PDFText(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		// the pdf reader panics on some malformed xref tables
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(pageText)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("pdf has no extractable text")
	}
	return b.String(), nil
}

// ReadFile loads a chapter from disk, detecting the format from the file
// name and contents unless one is given.
func ReadFile(path string, format Format, title string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Input{Title: title, Name: path, Format: format, Data: data}, nil
}
