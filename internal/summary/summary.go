// Package summary renders the human-readable account of an extracted Form
// ADT-1 record.
package summary

import (
	"fmt"
	"strings"

	"github.com/a3tai/adt1-extractor/internal/extract"
)

// Placeholder keys. All but KeyAppointmentDate are record fields.
const (
	KeyCompanyName           = string(extract.FieldCompanyName)
	KeyAuditorName           = string(extract.FieldAuditorName)
	KeyAppointmentPeriodFrom = string(extract.FieldAppointmentPeriodFrom)
	KeyAppointmentPeriodTo   = string(extract.FieldAppointmentPeriodTo)
	// KeyAppointmentDate has no extraction rule, so the summary always shows
	// its placeholder.
	KeyAppointmentDate = "appointment_date"
)

// Placeholders holds the text substituted for each missing summary value.
type Placeholders struct {
	CompanyName     string
	AuditorName     string
	PeriodFrom      string
	PeriodTo        string
	AppointmentDate string
}

// DefaultPlaceholders returns the stock fallback text.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		CompanyName:     "The company",
		AuditorName:     "its statutory auditor",
		PeriodFrom:      "[start date not found]",
		PeriodTo:        "[end date not found]",
		AppointmentDate: "[appointment date not found]",
	}
}

// PlaceholdersFrom overlays overrides, keyed by placeholder key, on the
// defaults. Unknown keys are an error; empty values are ignored.
func PlaceholdersFrom(overrides map[string]string) (Placeholders, error) {
	p := DefaultPlaceholders()
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch strings.ToLower(key) {
		case KeyCompanyName:
			p.CompanyName = value
		case KeyAuditorName:
			p.AuditorName = value
		case KeyAppointmentPeriodFrom:
			p.PeriodFrom = value
		case KeyAppointmentPeriodTo:
			p.PeriodTo = value
		case KeyAppointmentDate:
			p.AppointmentDate = value
		default:
			return Placeholders{}, fmt.Errorf("unknown placeholder key: %s", key)
		}
	}
	return p, nil
}

// Render builds the summary sentence for rec. Values that are absent or
// empty are replaced by their placeholder; the contact sentences are only
// added for non-empty emails.
func Render(rec *extract.Record, p Placeholders) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s has appointed %s as its statutory auditor for the period %s to %s, effective from %s. ",
		valueOr(rec, extract.FieldCompanyName, p.CompanyName),
		valueOr(rec, extract.FieldAuditorName, p.AuditorName),
		valueOr(rec, extract.FieldAppointmentPeriodFrom, p.PeriodFrom),
		valueOr(rec, extract.FieldAppointmentPeriodTo, p.PeriodTo),
		p.AppointmentDate,
	)
	b.WriteString("The appointment has been disclosed via Form ADT-1.")

	if email := rec.Value(extract.FieldCompanyEmail); email != "" {
		fmt.Fprintf(&b, " The company's contact email is %s.", email)
	}
	if email := rec.Value(extract.FieldAuditorEmail); email != "" {
		fmt.Fprintf(&b, " The auditor's email is %s.", email)
	}

	return strings.TrimSpace(b.String())
}

func valueOr(rec *extract.Record, f extract.Field, fallback string) string {
	if v := rec.Value(f); v != "" {
		return v
	}
	return fallback
}
