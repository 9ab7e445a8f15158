package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
)

func TestExtractDocx(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, "resume.docx", "Jane Doe", "jane.doe@example.com", "Senior Go Engineer")

	parser := NewDocumentParserService()
	extraction, err := parser.Extract(path, ".DOCX")

	require.NoError(t, err)
	assert.True(t, extraction.Supported())
	assert.Equal(t, models.FormatDOCX, extraction.Format)
	assert.Equal(t, "Jane Doe\njane.doe@example.com\nSenior Go Engineer", extraction.Text)
}

func TestExtractDocxSkipsTablesAndKeepsTabs(t *testing.T) {
	dir := t.TempDir()
	body := `<w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Jane</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell text</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>`
	path := writeDocxBody(t, dir, "layout.docx", body)

	extraction, err := NewDocumentParserService().Extract(path, "docx")

	require.NoError(t, err)
	assert.Equal(t, "Name\tJane\nLine one\nLine two", extraction.Text)
	assert.NotContains(t, extraction.Text, "cell text")
}

func TestExtractDocxSkipsTextBoxes(t *testing.T) {
	dir := t.TempDir()
	box := `<w:txbxContent><w:p><w:r><w:t>BOX TEXT</w:t></w:r></w:p></w:txbxContent>`
	body := wordParagraph("Jane Doe") +
		`<w:p><w:r><w:t xml:space="preserve">Before box </w:t></w:r>` +
		`<w:r><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:drawing><wps:wsp><wps:txbx>` + box + `</wps:txbx></wps:wsp></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:shape><v:textbox>` + box + `</v:textbox></v:shape></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t xml:space="preserve">after box jane@example.com</w:t></w:r></w:p>`
	path := writeDocxBody(t, dir, "boxed.docx", body)

	extraction, err := NewDocumentParserService().Extract(path, "docx")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBefore box after box jane@example.com", extraction.Text)
	assert.Equal(t, "jane@example.com", EmailOrNotFound(extraction.Text))
}

func TestExtractPDF(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "resume.pdf", "Jane Doe jane.doe@example.com")

	extraction, err := NewDocumentParserService().Extract(path, "pdf")

	require.NoError(t, err)
	assert.True(t, extraction.Supported())
	assert.Equal(t, models.FormatPDF, extraction.Format)
	assert.Equal(t, 1, extraction.PageCount)
	assert.Contains(t, extraction.Text, "jane.doe@example.com")
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	for _, ext := range []string{".txt", "doc", "", ".png"} {
		extraction, err := NewDocumentParserService().Extract(path, ext)

		require.NoError(t, err, ext)
		assert.False(t, extraction.Supported(), ext)
		assert.Equal(t, models.ExtractionUnsupported, extraction.Kind, ext)
	}
}

func TestExtractCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.bin")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a document at all"), 0644))

	parser := NewDocumentParserService()

	_, err := parser.Extract(garbage, "pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = parser.Extract(garbage, "docx")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = parser.Extract(filepath.Join(dir, "missing.docx"), "docx")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestBodyParagraphsIgnoresForeignNamespaces(t *testing.T) {
	xml := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:m="urn:math">` +
		`<w:body><w:p><w:r><w:t>visible</w:t></w:r><m:t>hidden</m:t></w:p></w:body></w:document>`

	paragraphs, err := bodyParagraphs(xml)

	require.NoError(t, err)
	assert.Equal(t, []string{"visible"}, paragraphs)
}
