package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
)

type MockCompleter struct {
	Response      string
	ResponseQueue []string
	Err           error
	// FailOn makes the n-th call (0-based) fail with the given error
	FailOn  map[int]error
	Prompts []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	call := len(m.Prompts)
	m.Prompts = append(m.Prompts, prompt)

	if err, ok := m.FailOn[call]; ok {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// MockParser serves extractions keyed by file path.
type MockParser struct {
	Extractions map[string]*models.Extraction
	Errs        map[string]error
}

func (m *MockParser) Extract(path, declaredExt string) (*models.Extraction, error) {
	if err, ok := m.Errs[path]; ok {
		return nil, err
	}
	if extraction, ok := m.Extractions[path]; ok {
		return extraction, nil
	}
	return &models.Extraction{Kind: models.ExtractionUnsupported, Format: normalizeExt(declaredExt)}, nil
}

func extracted(text string) *models.Extraction {
	return &models.Extraction{Kind: models.ExtractionExtracted, Format: models.FormatPDF, Text: text, PageCount: 1}
}

func rankingReply(name string, score float64) string {
	return fmt.Sprintf(`Here is my evaluation:
{"candidate_name": %q, "tech_skills_scores": {"go": 0.9}, "soft_skills_scores": {"communication": 0.7}, "final_score": %v, "analysis": "solid"}
Let me know if you need more.`, name, score)
}

const wordDocumentTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape" xmlns:v="urn:schemas-microsoft-com:vml"><w:body>%s</w:body></w:document>`

func wordParagraph(text string) string {
	return fmt.Sprintf(`<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, text)
}

// writeDocx builds a minimal .docx whose body holds the given paragraphs.
func writeDocx(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(wordParagraph(p))
	}

	return writeDocxBody(t, dir, name, body.String())
}

func writeDocxBody(t *testing.T, dir, name, body string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name, content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", fmt.Sprintf(wordDocumentTemplate, body)},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// writePDF builds a single page PDF that shows text in Helvetica.
func writePDF(t *testing.T, dir, name, text string) string {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
