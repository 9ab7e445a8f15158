package models

// ExtractionKind tags the outcome of a text extraction.
type ExtractionKind string

const (
	ExtractionExtracted   ExtractionKind = "extracted"
	ExtractionUnsupported ExtractionKind = "unsupported"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Sentinel values placed in ExtractionResult.Email.
const (
	EmailNotFound        = "Not Found"
	EmailUnsupportedFile = "Unsupported file type"
)

// Extraction is the tagged result of reading a document. Text and PageCount
// are only meaningful when Kind is ExtractionExtracted.
type Extraction struct {
	Kind      ExtractionKind
	Format    string
	Text      string
	PageCount int
}

func (e *Extraction) Supported() bool {
	return e != nil && e.Kind == ExtractionExtracted
}

type ExtractionResult struct {
	FileName string `json:"file_name"`
	Email    string `json:"email"`
	Text     string `json:"text"`
}
