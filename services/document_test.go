package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal uncompressed PDF with one page per entry.
// An empty entry produces a page that only draws a line.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		content := "0 0 m 100 100 l S"
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func TestExtractDocument_JoinsPagesInOrder(t *testing.T) {
	t.Parallel()

	data := buildPDF(t, "Opioids affect the brain.", "", "Naloxone reverses an overdose.")
	doc, err := ExtractDocument(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	text := doc.Text()
	assert.Equal(t, 3, doc.Pages())
	assert.Equal(t, strings.TrimSpace(text), text)

	first := strings.Index(text, "Opioids affect the brain.")
	second := strings.Index(text, "Naloxone reverses an overdose.")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text[first:second], "\n")
}

func TestExtractDocument_NoTextPages(t *testing.T) {
	t.Parallel()

	data := buildPDF(t, "", "")
	doc, err := ExtractDocument(context.Background(), bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Pages())
	assert.Empty(t, doc.Text())
}

func TestExtractDocument_NotAPDF(t *testing.T) {
	t.Parallel()

	data := []byte("this is a plain text file")
	_, err := ExtractDocument(context.Background(), bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestExtractDocument_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := buildPDF(t, "Fentanyl")
	_, err := ExtractDocument(ctx, bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadDocument_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "SAMHSA.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF(t, "Withdrawal symptoms vary."), 0o600))

	doc, err := LoadDocument(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path())
	assert.Equal(t, 1, doc.Pages())
	assert.Contains(t, doc.Text(), "Withdrawal symptoms vary.")
	assert.NotEmpty(t, doc.Text())
}

func TestLoadDocument_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadDocument(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewDocument_Trims(t *testing.T) {
	t.Parallel()

	doc := NewDocument("inline", "\n  heroin facts \n", 1)
	assert.Equal(t, "heroin facts", doc.Text())
	assert.Equal(t, "inline", doc.Path())
}
