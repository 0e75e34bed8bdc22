// Package pipeline runs a Form ADT-1 document through rendering, field
// extraction and summary rendering.
package pipeline

import (
	"fmt"
	"log"
	"strings"

	"github.com/a3tai/adt1-extractor/internal/extract"
	"github.com/a3tai/adt1-extractor/internal/pdf"
	"github.com/a3tai/adt1-extractor/internal/summary"
)

// Result is the outcome of one extraction.
type Result struct {
	Document   *pdf.Document // nil for text input
	Lines      extract.Lines
	Extraction *extract.Result
	Summary    string
}

// Record returns the extracted record
func (r *Result) Record() *extract.Record {
	return r.Extraction.Record
}

// Pipeline ties the document service to the extractor.
type Pipeline struct {
	documents    *pdf.Service
	placeholders summary.Placeholders
}

// New creates a pipeline rendering documents through documents.
func New(documents *pdf.Service, placeholders summary.Placeholders) (*Pipeline, error) {
	if documents == nil {
		return nil, fmt.Errorf("document service cannot be nil")
	}
	return &Pipeline{documents: documents, placeholders: placeholders}, nil
}

// Documents returns the underlying document service
func (p *Pipeline) Documents() *pdf.Service {
	return p.documents
}

// ExtractFile renders the PDF at path and extracts it. Only rendering can
// fail; a document with no recognisable fields still yields a result.
func (p *Pipeline) ExtractFile(path string) (*Result, error) {
	doc, err := p.documents.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		log.Printf("Warning: %s rendered no text with %s", path, doc.Engine)
	}

	result := p.ExtractText(doc.Text)
	result.Document = doc
	return result, nil
}

// ExtractText extracts already-rendered document text.
func (p *Pipeline) ExtractText(text string) *Result {
	lines := extract.NewLines(text)
	extraction := extract.Extract(lines)
	return &Result{
		Lines:      lines,
		Extraction: extraction,
		Summary:    summary.Render(extraction.Record, p.placeholders),
	}
}
