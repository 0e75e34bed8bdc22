package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleForm mirrors the line layout of a rendered Form ADT-1.
var sampleForm = Lines{
	"FORM NO. ADT-1",
	"Notice to the Registrar by company for appointment of auditor",
	"U72900MH2010PTC123456",
	"XYZCOMPANY PRIVATE LIMITED",
	"4th Floor, Tower B",
	"Andheri East, Mumbai",
	"Maharashtra 400069",
	"secretarial@xyzcompany.in",
	"Appointment/Re-appointment in AGM",
	"ABCDE1234F",
	"AB & ASSOCIATES",
	"FRN12345",
	"12, Nariman Point",
	"Free Press House",
	"Mumbai",
	"400021",
	"audit@abassociates.in",
	"01/04/2023",
	"31/03/2028",
	"5",
}

func TestExtract_SampleForm(t *testing.T) {
	res := Extract(sampleForm)
	rec := res.Record

	want := map[Field]string{
		FieldCIN:                    "U72900MH2010PTC123456",
		FieldCompanyName:            "XYZCOMPANY PRIVATE LIMITED",
		FieldRegisteredOffice:       "4th Floor, Tower B Andheri East, Mumbai Maharashtra 400069",
		FieldCompanyEmail:           "secretarial@xyzcompany.in",
		FieldAppointmentType:        "Appointment/Re-appointment in AGM",
		FieldAuditorPAN:             "ABCDE1234F",
		FieldAuditorName:            "AB & ASSOCIATES",
		FieldAuditorFRNOrMembership: "FRN12345",
		FieldAuditorAddress:         "12, Nariman Point Free Press House",
		FieldAuditorEmail:           "audit@abassociates.in",
		FieldAppointmentPeriodFrom:  "01/04/2023",
		FieldAppointmentPeriodTo:    "31/03/2028",
		FieldNumberOfYears:          "5",
	}
	for f, v := range want {
		got, ok := rec.Get(f)
		assert.True(t, ok, "field %s should be present", f)
		assert.Equal(t, v, got, "field %s", f)
	}
	assert.Equal(t, len(want), rec.Len())

	assert.Equal(t, 3, res.Anchors.CompanyName)
	assert.Equal(t, 9, res.Anchors.AuditorPAN)
	assert.Equal(t, 10, res.Anchors.AuditorName)
	assert.Equal(t, 11, res.Anchors.AuditorFRN)
	assert.Equal(t, 18, res.Anchors.PeriodTo)
}

func TestExtract_RegisteredOfficeScenario(t *testing.T) {
	rec := Extract(Lines{"XYZCOMPANY PRIVATE LIMITED", "123 Main Road", "400001", "contact@xyz.com"}).Record

	assert.Equal(t, "XYZCOMPANY PRIVATE LIMITED", rec.Value(FieldCompanyName))
	assert.Equal(t, "123 Main Road 400001", rec.Value(FieldRegisteredOffice))
	assert.Equal(t, "contact@xyz.com", rec.Value(FieldCompanyEmail))
	assert.False(t, rec.Has(FieldCIN), "no line carries a digit-bearing identifier")
}

func TestExtract_AuditorScenario(t *testing.T) {
	rec := Extract(Lines{"header", "ABCDE1234F", "AB & ASSOCIATES", "FRN12345"}).Record

	assert.Equal(t, "ABCDE1234F", rec.Value(FieldAuditorPAN))
	assert.Equal(t, "AB & ASSOCIATES", rec.Value(FieldAuditorName))
	assert.Equal(t, "FRN12345", rec.Value(FieldAuditorFRNOrMembership))
	assert.Equal(t, "", rec.Value(FieldAuditorAddress))
}

func TestExtract_RegisteredOffice(t *testing.T) {
	tests := []struct {
		name  string
		lines Lines
		want  string
	}{
		{
			name:  "no company name",
			lines: Lines{"Some header", "123 Main Road", "400001"},
			want:  "",
		},
		{
			name:  "stops before email line",
			lines: Lines{"ACME LTD", "Plot 7", "Sector 5", "info@acme.com", "400001"},
			want:  "Plot 7 Sector 5",
		},
		{
			name:  "keeps pin code line",
			lines: Lines{"ACME LLP", "Plot 7", "Pune 411001", "Next section"},
			want:  "Plot 7 Pune 411001",
		},
		{
			name: "limited to nine lines",
			lines: Lines{"ACME PVT", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9",
				"a10", "400001"},
			want: "a1 a2 a3 a4 a5 a6 a7 a8 a9",
		},
		{
			name:  "company name at end of document",
			lines: Lines{"header", "Acme Holdings plc"},
			want:  "",
		},
		{
			name:  "devanagari pin code",
			lines: Lines{"ACME LIMITED", "Plot 7", "Pune \u0966\u0967\u0968\u0969\u096a\u096b", "Next section"},
			want:  "Plot 7 Pune \u0966\u0967\u0968\u0969\u096a\u096b",
		},
		{
			name:  "digits joined to an accented letter are not a pin code",
			lines: Lines{"ACME LIMITED", "Sector\u00e9400001", "Pune 411001", "Next section"},
			want:  "Sector\u00e9400001 Pune 411001",
		},
		{
			name:  "seven digit number is not a pin code",
			lines: Lines{"ACME LIMITED", "Survey 1234567", "Pune 411001"},
			want:  "Survey 1234567 Pune 411001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract(tt.lines).Record
			got, ok := rec.Get(FieldRegisteredOffice)
			require.True(t, ok, "registered office is always reported")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_CompanyName(t *testing.T) {
	tests := []struct {
		name   string
		lines  Lines
		want   string
		wantOK bool
	}{
		{"private limited", Lines{"Form", "ABC PRIVATE LIMITED"}, "ABC PRIVATE LIMITED", true},
		{"case insensitive", Lines{"Abc Technologies Ltd"}, "Abc Technologies Ltd", true},
		{"llp", Lines{"PARTNERS LLP"}, "PARTNERS LLP", true},
		{"suffix must end the line", Lines{"LIMITED LIABILITY"}, "", false},
		{"suffix must be a whole word", Lines{"UNLIMITED"}, "", false},
		{"first match wins", Lines{"ONE LTD", "TWO LTD"}, "ONE LTD", true},
		{"punctuation separates the suffix", Lines{"ACME.LTD"}, "ACME.LTD", true},
		{"accented letter joins the suffix", Lines{"\u00c4LTD"}, "", false},
		{"devanagari digit joins the suffix", Lines{"\u0966LTD"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.lines).Record.Get(FieldCompanyName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_CIN(t *testing.T) {
	tests := []struct {
		name   string
		lines  Lines
		want   string
		wantOK bool
	}{
		{"typical cin", Lines{"Form ADT-1", "L17110MH1973PLC019786"}, "L17110MH1973PLC019786", true},
		{"needs a digit", Lines{"ABCDEFG"}, "", false},
		{"needs an uppercase start", Lines{"u72900mh2010"}, "", false},
		{"prefix too short", Lines{"AB1"}, "", false},
		{"digit later in line counts", Lines{"FORMX no 9"}, "FORMX no 9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.lines).Record.Get(FieldCIN)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_AppointmentType(t *testing.T) {
	rec := Extract(Lines{"Nature of appointment", "APPOINTMENT OF FIRST AUDITOR", "appointment again"}).Record
	assert.Equal(t, "APPOINTMENT OF FIRST AUDITOR", rec.Value(FieldAppointmentType))

	rec = Extract(Lines{"Nature of appointment"}).Record
	assert.False(t, rec.Has(FieldAppointmentType))
}

func TestExtract_AuditorName(t *testing.T) {
	tests := []struct {
		name   string
		lines  Lines
		want   string
		wantOK bool
	}{
		{
			name:   "no pan",
			lines:  Lines{"AB & ASSOCIATES"},
			want:   "",
			wantOK: true,
		},
		{
			name:   "skips short lines",
			lines:  Lines{"ABCDE1234F", "CA", "N/A", "SHARMA AND CO"},
			want:   "SHARMA AND CO",
			wantOK: true,
		},
		{
			name:   "mixed case accepted",
			lines:  Lines{"ABCDE1234F", "Sharma and Co", "SHARMA AND CO"},
			want:   "Sharma and Co",
			wantOK: true,
		},
		{
			name:   "outside three line window",
			lines:  Lines{"ABCDE1234F", "a", "b", "c", "SHARMA AND CO"},
			want:   "",
			wantOK: true,
		},
		{
			name:   "pan at end of document",
			lines:  Lines{"ABCDE1234F"},
			want:   "",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.lines).Record.Get(FieldAuditorName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_AuditorFRN(t *testing.T) {
	tests := []struct {
		name   string
		lines  Lines
		want   string
		wantOK bool
	}{
		{"second line", Lines{"ABCDE1234F", "AB & ASSOCIATES", "Firm reg", "123456W"}, "123456W", true},
		{"lowercase rejected", Lines{"ABCDE1234F", "AB & ASSOCIATES", "frn12345", "x"}, "", false},
		{"too short", Lines{"ABCDE1234F", "AB & ASSOCIATES", "1234"}, "", false},
		{"outside window", Lines{"ABCDE1234F", "AB & ASSOCIATES", "a", "b", "FRN12345"}, "", false},
		{"no auditor name", Lines{"ABCDE1234F", "x", "y", "z", "FRN12345"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.lines).Record.Get(FieldAuditorFRNOrMembership)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_AuditorAddress(t *testing.T) {
	prefix := Lines{"ABCDE1234F", "AB & ASSOCIATES", "FRN12345"}
	tests := []struct {
		name string
		tail Lines
		want string
	}{
		{"stops at state code", Lines{"12 MG Road", "IN", "More"}, "12 MG Road"},
		{"stops at capitalised word", Lines{"12 MG Road", "Bengaluru", "More"}, "12 MG Road"},
		{"stops at hyphenated region", Lines{"12 MG Road", "Maharashtra-MH"}, "12 MG Road"},
		{"stops at pin code", Lines{"12 MG Road", "560001"}, "12 MG Road"},
		{"stops at email", Lines{"12 MG Road", "ab@x.com"}, "12 MG Road"},
		{"stop line first", Lines{"Mumbai", "12 MG Road"}, ""},
		{"limited to six lines", Lines{"a 1", "a 2", "a 3", "a 4", "a 5", "a 6", "a 7"}, "a 1 a 2 a 3 a 4 a 5 a 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append(append(Lines{}, prefix...), tt.tail...)
			got, ok := Extract(lines).Record.Get(FieldAuditorAddress)
			require.True(t, ok, "auditor address is always reported")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Emails(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		rec := Extract(Lines{"no email here"}).Record
		got, ok := rec.Get(FieldCompanyEmail)
		assert.True(t, ok)
		assert.Equal(t, "", got)

		got, ok = rec.Get(FieldAuditorEmail)
		assert.True(t, ok, "auditor email is always reported")
		assert.Equal(t, "", got)
	})

	t.Run("one email is shared", func(t *testing.T) {
		rec := Extract(Lines{"x", "only@corp.in", "y"}).Record
		assert.Equal(t, "only@corp.in", rec.Value(FieldCompanyEmail))
		assert.Equal(t, rec.Value(FieldCompanyEmail), rec.Value(FieldAuditorEmail))
	})

	t.Run("auditor takes the last", func(t *testing.T) {
		rec := Extract(Lines{"first@corp.in", "middle@corp.in", "last@audit.in"}).Record
		assert.Equal(t, "first@corp.in", rec.Value(FieldCompanyEmail))
		assert.Equal(t, "last@audit.in", rec.Value(FieldAuditorEmail))
	})

	t.Run("needs a dot", func(t *testing.T) {
		rec := Extract(Lines{"user@localhost"}).Record
		assert.Equal(t, "", rec.Value(FieldCompanyEmail))
		assert.True(t, rec.Has(FieldAuditorEmail))
		assert.Equal(t, "", rec.Value(FieldAuditorEmail))
	})
}

func TestExtract_AuditorPAN(t *testing.T) {
	tests := []struct {
		name   string
		lines  Lines
		want   string
		wantOK bool
	}{
		{"typical pan", Lines{"ABCDE1234F"}, "ABCDE1234F", true},
		{"trailing text", Lines{"ABCDE1234F (PAN)"}, "ABCDE1234F (PAN)", true},
		{"must start the line", Lines{"PAN ABCDE1234F"}, "", false},
		{"longer token", Lines{"ABCDE1234FG"}, "", false},
		{"accented letter continues the token", Lines{"ABCDE1234F\u00e9"}, "", false},
		{"devanagari digit continues the token", Lines{"ABCDE1234F\u0967"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.lines).Record.Get(FieldAuditorPAN)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_CarriageReturnText(t *testing.T) {
	rec := Extract(NewLines("ACME LTD\r400001\u2028x@y.com")).Record

	assert.Equal(t, "ACME LTD", rec.Value(FieldCompanyName))
	assert.Equal(t, "400001", rec.Value(FieldRegisteredOffice))
	assert.Equal(t, "x@y.com", rec.Value(FieldCompanyEmail))
	assert.Equal(t, "x@y.com", rec.Value(FieldAuditorEmail))
}

func TestExtract_AppointmentPeriod(t *testing.T) {
	tests := []struct {
		name      string
		lines     Lines
		wantFrom  string
		wantTo    string
		wantYears string
		wantSet   bool
		yearsSet  bool
	}{
		{
			name:    "no dates",
			lines:   Lines{"nothing", "5"},
			wantSet: false,
		},
		{
			name:    "single date",
			lines:   Lines{"Date: 01/04/2023", "5"},
			wantSet: false,
		},
		{
			name:      "two dates and years",
			lines:     Lines{"From 01/04/2023", "To 31/03/2028", "5"},
			wantFrom:  "From 01/04/2023",
			wantTo:    "To 31/03/2028",
			wantYears: "5",
			wantSet:   true,
			yearsSet:  true,
		},
		{
			name:     "years must be below ten",
			lines:    Lines{"01/04/2023", "31/03/2033", "10"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2033",
			wantSet:  true,
		},
		{
			name:     "years must be numeric",
			lines:    Lines{"01/04/2023", "31/03/2028", "five"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2028",
			wantSet:  true,
		},
		{
			name:     "only the next line is considered",
			lines:    Lines{"01/04/2023", "31/03/2028", "years", "5"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2028",
			wantSet:  true,
		},
		{
			name:     "period end is last line",
			lines:    Lines{"01/04/2023", "31/03/2028"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2028",
			wantSet:  true,
		},
		{
			name:      "devanagari dates and years",
			lines:     Lines{"\u0966\u0967/\u0966\u096a/\u0968\u0966\u0968\u0969", "\u0969\u0967/\u0966\u0969/\u0968\u0966\u0968\u096e", "\u096b"},
			wantFrom:  "\u0966\u0967/\u0966\u096a/\u0968\u0966\u0968\u0969",
			wantTo:    "\u0969\u0967/\u0966\u0969/\u0968\u0966\u0968\u096e",
			wantYears: "\u096b",
			wantSet:   true,
			yearsSet:  true,
		},
		{
			name:     "devanagari ten is not below ten",
			lines:    Lines{"01/04/2023", "31/03/2033", "\u0967\u0966"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2033",
			wantSet:  true,
		},
		{
			name:      "leading zero years",
			lines:     Lines{"01/04/2023", "31/03/2028", "05"},
			wantFrom:  "01/04/2023",
			wantTo:    "31/03/2028",
			wantYears: "05",
			wantSet:   true,
			yearsSet:  true,
		},
		{
			name:     "large number is not a term",
			lines:    Lines{"01/04/2023", "31/03/2028", "99999999999999999999999"},
			wantFrom: "01/04/2023",
			wantTo:   "31/03/2028",
			wantSet:  true,
		},
		{
			name:      "third date ignored",
			lines:     Lines{"01/04/2023", "31/03/2028", "3", "15/09/2023"},
			wantFrom:  "01/04/2023",
			wantTo:    "31/03/2028",
			wantYears: "3",
			wantSet:   true,
			yearsSet:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract(tt.lines).Record

			from, okFrom := rec.Get(FieldAppointmentPeriodFrom)
			to, okTo := rec.Get(FieldAppointmentPeriodTo)
			assert.Equal(t, tt.wantSet, okFrom)
			assert.Equal(t, tt.wantSet, okTo)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)

			years, okYears := rec.Get(FieldNumberOfYears)
			assert.Equal(t, tt.yearsSet, okYears)
			assert.Equal(t, tt.wantYears, years)
		})
	}
}

func TestExtract_DuplicateLinesKeepAnchors(t *testing.T) {
	// The auditor name also appears before the PAN; the FRN search must
	// still start after the name that followed the PAN.
	lines := Lines{
		"AB & ASSOCIATES",
		"not an frn",
		"ABCDE1234F",
		"AB & ASSOCIATES",
		"FRN12345",
		"12 MG Road",
	}
	res := Extract(lines)

	assert.Equal(t, 3, res.Anchors.AuditorName)
	assert.Equal(t, "FRN12345", res.Record.Value(FieldAuditorFRNOrMembership))
	assert.Equal(t, "12 MG Road", res.Record.Value(FieldAuditorAddress))
}

func TestExtract_DuplicatePeriodEnd(t *testing.T) {
	// The period end text repeats earlier; the years line follows the
	// second matching date, not the first occurrence of its text.
	lines := Lines{"31/03/2028", "99", "31/03/2028", "4"}
	res := Extract(lines)

	assert.Equal(t, "31/03/2028", res.Record.Value(FieldAppointmentPeriodFrom))
	assert.Equal(t, "31/03/2028", res.Record.Value(FieldAppointmentPeriodTo))
	assert.Equal(t, "4", res.Record.Value(FieldNumberOfYears))
}

func TestExtract_EmptyInput(t *testing.T) {
	rec := Extract(nil).Record

	assert.Equal(t, 5, rec.Len())
	for _, f := range []Field{FieldRegisteredOffice, FieldCompanyEmail, FieldAuditorName, FieldAuditorAddress, FieldAuditorEmail} {
		got, ok := rec.Get(f)
		assert.True(t, ok, "field %s", f)
		assert.Empty(t, got, "field %s", f)
	}
}
