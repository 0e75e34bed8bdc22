package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/a3tai/adt1-extractor/internal/extract"
)

// Format is a record file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported record format: %s", name)
	}
}

// EncodeRecord serialises rec with keys in extraction order. JSON output is
// indented by two spaces and keeps HTML and non-ASCII characters literal.
func EncodeRecord(rec *extract.Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(rec)
	case FormatYAML:
		return encodeYAML(rec)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

// DecodeRecord parses data written by EncodeRecord.
func DecodeRecord(data []byte, format Format) (*extract.Record, error) {
	switch format {
	case FormatJSON:
		rec := extract.NewRecord()
		if err := json.Unmarshal(data, rec); err != nil {
			return nil, err
		}
		return rec, nil
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

func encodeJSON(rec *extract.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeYAML(rec *extract.Record) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	rec.Each(func(f extract.Field, value string) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(f)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeYAML(data []byte) (*extract.Record, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	rec := extract.NewRecord()
	for key, value := range raw {
		f, err := extract.ParseField(key)
		if err != nil {
			return nil, err
		}
		rec.Set(f, value)
	}
	return rec, nil
}
