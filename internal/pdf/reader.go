package pdf

import (
	"fmt"
	"os"
	"strings"
)

// Reader renders PDF files to text through an Engine
type Reader struct {
	validator *Validator
	engine    Engine
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64, engine Engine) *Reader {
	return &Reader{
		validator: NewValidator(maxFileSize),
		engine:    engine,
	}
}

// ReadFile renders every page of the file and joins them in page order
func (r *Reader) ReadFile(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validator.ValidateFileInfo(path, fileInfo); err != nil {
		return nil, err
	}

	pages, err := r.engine.RenderPages(path)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s with %s: %w", path, r.engine.Name(), err)
	}

	return &Document{
		Path:   path,
		Engine: r.engine.Name(),
		Pages:  len(pages),
		Size:   fileInfo.Size(),
		Text:   JoinPages(pages),
	}, nil
}

// JoinPages concatenates page texts, each followed by a newline.
func JoinPages(pages []string) string {
	var builder strings.Builder
	for _, page := range pages {
		builder.WriteString(page)
		builder.WriteString("\n")
	}
	return builder.String()
}
