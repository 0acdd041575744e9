package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

// buildPDF assembles a minimal uncompressed PDF with one text line per
// page. Object offsets in the xref table are computed while writing, so
// the output is a valid document.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(pages)))
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")
	for i, text := range pages {
		pageObj := 4 + 2*i
		contentObj := pageObj + 1
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageObj, contentObj))
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObj, len(stream), stream))
	}

	xrefPos := buf.Len()
	size := len(offsets) + 1
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", size))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefPos))
	return buf.Bytes()
}

func TestExtractSinglePage(t *testing.T) {
	e := NewPDFExtractor()
	text, err := e.Extract(buildPDF(t, []string{"hello summarizer"}))
	require.NoError(t, err)
	require.Contains(t, text, "hello summarizer")
}

func TestExtractPageOrder(t *testing.T) {
	e := NewPDFExtractor()
	text, err := e.Extract(buildPDF(t, []string{"first page text", "second page text", "third page text"}))
	require.NoError(t, err)
	first := strings.Index(text, "first page text")
	second := strings.Index(text, "second page text")
	third := strings.Index(text, "third page text")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	require.Greater(t, third, second)
}

func TestExtractLengthNonDecreasing(t *testing.T) {
	e := NewPDFExtractor()
	pages := []string{"alpha beta", "gamma delta", "epsilon zeta"}
	prev := 0
	for i := 1; i <= len(pages); i++ {
		text, err := e.Extract(buildPDF(t, pages[:i]))
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(text), prev)
		prev = len(text)
	}
}

func TestExtractNotAPDF(t *testing.T) {
	e := NewPDFExtractor()
	for _, content := range [][]byte{
		nil,
		[]byte("plain text, definitely not a pdf"),
		[]byte("%PDF-1.4 truncated garbage"),
		{0x00, 0x01, 0x02, 0x03},
	} {
		_, err := e.Extract(content)
		require.ErrorIs(t, err, appErr.ErrParse)
	}
}
