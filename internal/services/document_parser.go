package services

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resume-ranker/internal/models"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type DocumentParserService interface {
	// Extract reads the document at path. The format is chosen from
	// declaredExt alone; an unknown extension yields an unsupported
	// Extraction rather than an error.
	Extract(path, declaredExt string) (*models.Extraction, error)
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

func (p *documentParserService) Extract(path, declaredExt string) (*models.Extraction, error) {
	format := normalizeExt(declaredExt)

	switch format {
	case models.FormatPDF:
		text, pages, err := extractPDFText(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return &models.Extraction{Kind: models.ExtractionExtracted, Format: format, Text: text, PageCount: pages}, nil

	case models.FormatDOCX:
		text, err := extractDocxText(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return &models.Extraction{Kind: models.ExtractionExtracted, Format: format, Text: text}, nil

	default:
		return &models.Extraction{Kind: models.ExtractionUnsupported, Format: format}, nil
	}
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

func extractPDFText(filePath string) (text string, pages int, err error) {
	// the pdf reader panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or unreadable pages contribute nothing
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), totalPage, nil
}

func extractDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX body: %w", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs returns the text of every top-level w:p in a
// word/document.xml body. Tables and text boxes are skipped whole, so a
// paragraph holding a text box keeps its own runs only.
func bodyParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
		skipDepth  int
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			if skippedElement(el.Name.Local) {
				skipDepth++
				continue
			}
			if skipDepth > 0 {
				continue
			}
			switch el.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteString("\t")
				}
			case "br", "cr":
				if inPara {
					current.WriteString("\n")
				}
			}

		case xml.EndElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			if skippedElement(el.Name.Local) {
				skipDepth--
				continue
			}
			if skipDepth > 0 {
				continue
			}
			switch el.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText && skipDepth == 0 {
				current.Write(el)
			}
		}
	}

	return paragraphs, nil
}

// skippedElement reports containers whose paragraphs are not part of the
// body sequence.
func skippedElement(local string) bool {
	return local == "tbl" || local == "txbxContent"
}
