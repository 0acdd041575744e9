// Package extract converts uploaded PDF bytes to plain text.
//
// It uses ledongthuc/pdf (pure Go, no CGO). Pages are extracted one by one
// and concatenated in ascending page order.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

type Extractor interface {
	Extract(content []byte) (string, error)
}

type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the concatenated text of every page. Content that is not
// a parseable PDF fails with errors.ErrParse carrying the parser message.
func (e *PDFExtractor) Extract(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty content", appErr.ErrParse)
	}
	reader, err := newReader(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErr.ErrParse, err)
	}
	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// An unreadable page is skipped, matching the behavior of
			// per-page get_text in the extraction libraries this mirrors.
			continue
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}

func newReader(content []byte) (r *pdf.Reader, err error) {
	// The parser panics on some malformed inputs; surface those as plain
	// parse errors instead of crashing the request.
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}
