package pdf

import (
	"fmt"
	"os"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// Engine names
const (
	EngineLedongthuc = "ledongthuc"
	EngineDocconv    = "docconv"
)

// Engine renders a PDF document to plain text, one string per page.
type Engine interface {
	Name() string
	RenderPages(path string) ([]string, error)
}

// NewEngine returns the rendering engine with the given name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case EngineLedongthuc, "":
		return &LedongthucEngine{}, nil
	case EngineDocconv:
		return &DocconvEngine{}, nil
	default:
		return nil, fmt.Errorf("unsupported engine: %s", name)
	}
}

// LedongthucEngine renders pages with github.com/ledongthuc/pdf.
type LedongthucEngine struct{}

// Name returns the engine name
func (e *LedongthucEngine) Name() string {
	return EngineLedongthuc
}

// RenderPages extracts the plain text of every page in page order. A page
// that cannot be decoded fails the whole document.
func (e *LedongthucEngine) RenderPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		text, err := pageText(reader, pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to decode page %d: %w", pageNum, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func pageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		// Malformed content streams can panic inside the parser
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("panic while decoding page: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// DocconvEngine renders documents with code.sajari.com/docconv, which shells
// out to pdftotext. The whole document comes back as a single page.
type DocconvEngine struct{}

// Name returns the engine name
func (e *DocconvEngine) Name() string {
	return EngineDocconv
}

// RenderPages converts the document to text.
func (e *DocconvEngine) RenderPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertPDF(f)
	if err != nil {
		return nil, fmt.Errorf("failed to convert PDF: %w", err)
	}
	return []string{text}, nil
}
