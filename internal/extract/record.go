package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names a value extracted from a Form ADT-1 rendering.
type Field string

const (
	FieldCIN                    Field = "cin"
	FieldCompanyName            Field = "company_name"
	FieldRegisteredOffice       Field = "registered_office"
	FieldCompanyEmail           Field = "company_email"
	FieldAppointmentType        Field = "appointment_type"
	FieldAuditorPAN             Field = "auditor_pan"
	FieldAuditorName            Field = "auditor_name"
	FieldAuditorFRNOrMembership Field = "auditor_frn_or_membership"
	FieldAuditorAddress         Field = "auditor_address"
	FieldAuditorEmail           Field = "auditor_email"
	FieldAppointmentPeriodFrom  Field = "appointment_period_from"
	FieldAppointmentPeriodTo    Field = "appointment_period_to"
	FieldNumberOfYears          Field = "number_of_years"
)

// Fields lists every field in extraction order. Encoders emit keys in this
// order.
var Fields = []Field{
	FieldCIN,
	FieldCompanyName,
	FieldRegisteredOffice,
	FieldCompanyEmail,
	FieldAppointmentType,
	FieldAuditorPAN,
	FieldAuditorName,
	FieldAuditorFRNOrMembership,
	FieldAuditorAddress,
	FieldAuditorEmail,
	FieldAppointmentPeriodFrom,
	FieldAppointmentPeriodTo,
	FieldNumberOfYears,
}

// ParseField returns the Field with the given key.
func ParseField(key string) (Field, error) {
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field: %q", key)
}

// Record maps fields to extracted values. A field missing from the record
// means "not found", which is distinct from a present empty string.
type Record struct {
	values map[Field]string
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[Field]string, len(Fields))}
}

// Set stores a value for the field.
func (r *Record) Set(f Field, value string) {
	r.values[f] = value
}

// Get returns the value for the field and whether it was found.
func (r *Record) Get(f Field) (string, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Value returns the value for the field, or "" when absent.
func (r *Record) Value(f Field) string {
	return r.values[f]
}

// Has reports whether the field is present.
func (r *Record) Has(f Field) bool {
	_, ok := r.values[f]
	return ok
}

// Len returns the number of present fields.
func (r *Record) Len() int {
	return len(r.values)
}

// Each calls fn for every present field in extraction order.
func (r *Record) Each(fn func(f Field, value string)) {
	for _, f := range Fields {
		if v, ok := r.values[f]; ok {
			fn(f, v)
		}
	}
}

// Map returns a copy of the record keyed by field name.
func (r *Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for f, v := range r.values {
		m[string(f)] = v
	}
	return m
}

// Equal reports whether both records hold the same fields and values.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.values) != len(other.values) {
		return false
	}
	for f, v := range r.values {
		if ov, ok := other.values[f]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as a JSON object with keys in extraction
// order. HTML characters are written literally.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	r.Each(func(f Field, value string) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = writeJSONString(&buf, string(f)); err != nil {
			return
		}
		buf.WriteByte(':')
		err = writeJSONString(&buf, value)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values. Unknown keys are
// rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	values := make(map[Field]string, len(raw))
	for key, value := range raw {
		f, err := ParseField(key)
		if err != nil {
			return err
		}
		values[f] = value
	}
	r.values = values
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
