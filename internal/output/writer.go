// Package output writes and reads back the extraction record and summary
// files.
package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/a3tai/adt1-extractor/internal/errors"
	"github.com/a3tai/adt1-extractor/internal/extract"
)

const (
	schemaURL       = "record.schema.json"
	defaultFilePerm = 0o644
)

//go:embed record.schema.json
var recordSchema []byte

// Writer overwrites the record and summary files. Each write truncates the
// destination; nothing is appended and the two files are not written
// atomically together.
type Writer struct {
	format Format
	perm   os.FileMode
	schema *jsonschema.Schema
}

// NewWriter creates a writer for the given record format.
func NewWriter(format Format) (*Writer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	schema, err := compileRecordSchema()
	if err != nil {
		return nil, err
	}
	return &Writer{format: format, perm: defaultFilePerm, schema: schema}, nil
}

func compileRecordSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// Format returns the record format
func (w *Writer) Format() Format {
	return w.format
}

// Validate checks rec against the record schema.
func (w *Writer) Validate(rec *extract.Record) error {
	data, err := encodeJSON(rec)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := w.schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}

// WriteRecord validates rec and writes it to path.
func (w *Writer) WriteRecord(path string, rec *extract.Record) error {
	if err := w.Validate(rec); err != nil {
		return apperrors.Output("write record", path, err)
	}
	data, err := EncodeRecord(rec, w.format)
	if err != nil {
		return apperrors.Output("write record", path, err)
	}
	if err := w.overwrite(path, data); err != nil {
		return apperrors.Output("write record", path, err)
	}
	return nil
}

// WriteSummary writes exactly the summary text to path.
func (w *Writer) WriteSummary(path, summary string) error {
	if err := w.overwrite(path, []byte(summary)); err != nil {
		return apperrors.Output("write summary", path, err)
	}
	return nil
}

func (w *Writer) overwrite(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, w.perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadRecord reads a record file written in the given format.
func ReadRecord(path string, format Format) (*extract.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	rec, err := DecodeRecord(data, format)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	return rec, nil
}

// ReadSummary reads a summary file.
func ReadSummary(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read summary: %w", err)
	}
	return string(data), nil
}
