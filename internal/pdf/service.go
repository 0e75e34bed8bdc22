package pdf

import (
	"fmt"

	apperrors "github.com/a3tai/adt1-extractor/internal/errors"
	"github.com/a3tai/adt1-extractor/internal/pdf/security"
)

// Service renders input documents by orchestrating the PDF components
type Service struct {
	reader        *Reader
	validator     *Validator
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, configuredDirectory string, engine Engine) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}

	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		reader:        NewReader(maxFileSize, engine),
		validator:     NewValidator(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(path string) (*ValidateResult, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(path), nil
}

// ReadDocument validates and renders the document at path. Every failure is
// an input error.
func (s *Service) ReadDocument(path string) (*Document, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, apperrors.Input("validate path", path, fmt.Errorf("security validation failed: %w", err))
	}

	validation := s.validator.ValidateFile(path)
	if !validation.Valid {
		return nil, apperrors.Input("validate document", path, fmt.Errorf("%s", validation.Message))
	}

	doc, err := s.reader.ReadFile(path)
	if err != nil {
		return nil, apperrors.Input("render document", path, err)
	}

	// pdfcpu counts pages even when the engine returns a single block
	doc.Pages = validation.Pages
	return doc, nil
}

// ResolvePath resolves a request path against the configured directory and
// rejects paths outside it
func (s *Service) ResolvePath(path string) (string, error) {
	resolved, err := s.pathValidator.NormalizePath(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	return resolved, nil
}

// ConfiguredDirectory returns the directory requests are confined to
func (s *Service) ConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
