package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Search windows, in lines after the anchor line.
const (
	registeredOfficeWindow = 9
	auditorNameWindow      = 3
	auditorFRNWindow       = 2
	auditorAddressWindow   = 6

	// minNameLength is the rune count an auditor name must exceed.
	minNameLength = 4
	// maxTermYears bounds the appointment term read after the period.
	maxTermYears = 10
)

// Word boundaries and digits follow Unicode: a letter or digit from any
// script joins a word, and \p{Nd} is a decimal digit in any script.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

var (
	cinPrefixPattern   = regexp.MustCompile(`^[A-Z][0-9A-Z]{4,}`)
	companyNamePattern = regexp.MustCompile(`(?i)` + wordStart + `(?:LIMITED|LTD|LLP|PLC|PVT|PRIVATE LIMITED)$`)
	pinCodePattern     = regexp.MustCompile(wordStart + `\p{Nd}{6}` + wordEnd)
	panPattern         = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]` + wordEnd)
	frnPattern         = regexp.MustCompile(`^[A-Z0-9]{5,}$`)
	addressStopPattern = regexp.MustCompile(`^(?:IN|[A-Z][a-z]+(?:-[A-Z]+)?|\p{Nd}{6}|.*@.*)$`)
	datePattern        = regexp.MustCompile(`\p{Nd}{2}/\p{Nd}{2}/\p{Nd}{4}`)
)

// notFound marks an anchor whose heuristic did not match.
const notFound = -1

// Anchors holds the line indices captured when a positional field matched.
// Later heuristics search relative to these indices, so duplicate lines
// elsewhere in the document never move an anchor.
type Anchors struct {
	CompanyName int
	AuditorPAN  int
	AuditorName int
	AuditorFRN  int
	PeriodTo    int
}

// Result is the outcome of one extraction pass.
type Result struct {
	Record  *Record
	Anchors Anchors
}

// Extract runs every field heuristic over lines, in order. A heuristic that
// does not match leaves its field absent (or empty, for the fields that are
// always reported); extraction never fails.
func Extract(lines Lines) *Result {
	x := &extraction{
		lines:  lines,
		record: NewRecord(),
		anchors: Anchors{
			CompanyName: notFound,
			AuditorPAN:  notFound,
			AuditorName: notFound,
			AuditorFRN:  notFound,
			PeriodTo:    notFound,
		},
	}

	x.cin()
	x.companyName()
	x.registeredOffice()
	emails := x.emailCandidates()
	x.companyEmail(emails)
	x.appointmentType()
	x.auditorPAN()
	x.auditorName()
	x.auditorFRN()
	x.auditorAddress()
	x.auditorEmail(emails)
	x.appointmentPeriod()
	x.numberOfYears()

	return &Result{Record: x.record, Anchors: x.anchors}
}

type extraction struct {
	lines   Lines
	record  *Record
	anchors Anchors
}

func (x *extraction) cin() {
	for _, line := range x.lines {
		if cinPrefixPattern.MatchString(line) && strings.IndexFunc(line, unicode.IsDigit) >= 0 &&
			strings.IndexFunc(line, unicode.IsLetter) >= 0 {
			x.record.Set(FieldCIN, line)
			return
		}
	}
}

func (x *extraction) companyName() {
	for i, line := range x.lines {
		if companyNamePattern.MatchString(line) {
			x.record.Set(FieldCompanyName, line)
			x.anchors.CompanyName = i
			return
		}
	}
}

// registeredOffice collects the address block under the company name. A line
// with a PIN code ends the block and is kept; an email line ends it and is
// dropped.
func (x *extraction) registeredOffice() {
	var parts []string
	if x.anchors.CompanyName != notFound {
		start, end := x.lines.window(x.anchors.CompanyName+1, registeredOfficeWindow)
		for _, line := range x.lines[start:end] {
			if pinCodePattern.MatchString(line) {
				parts = append(parts, line)
				break
			}
			if strings.Contains(line, "@") {
				break
			}
			parts = append(parts, line)
		}
	}
	x.record.Set(FieldRegisteredOffice, strings.Join(parts, " "))
}

func (x *extraction) emailCandidates() []string {
	var emails []string
	for _, line := range x.lines {
		if strings.Contains(line, "@") && strings.Contains(line, ".") {
			emails = append(emails, line)
		}
	}
	return emails
}

func (x *extraction) companyEmail(emails []string) {
	var email string
	if len(emails) > 0 {
		email = emails[0]
	}
	x.record.Set(FieldCompanyEmail, email)
}

func (x *extraction) appointmentType() {
	for _, line := range x.lines {
		if strings.HasPrefix(strings.ToLower(line), "appointment") {
			x.record.Set(FieldAppointmentType, line)
			return
		}
	}
}

func (x *extraction) auditorPAN() {
	for i, line := range x.lines {
		if panPattern.MatchString(line) {
			x.record.Set(FieldAuditorPAN, line)
			x.anchors.AuditorPAN = i
			return
		}
	}
}

// auditorName takes the first line after the PAN that is long enough to be a
// name. Firm names are normally upper case, but a mixed-case line is
// accepted as well.
func (x *extraction) auditorName() {
	var name string
	if x.anchors.AuditorPAN != notFound {
		start, end := x.lines.window(x.anchors.AuditorPAN+1, auditorNameWindow)
		for i := start; i < end; i++ {
			if utf8.RuneCountInString(x.lines[i]) > minNameLength {
				name = x.lines[i]
				x.anchors.AuditorName = i
				break
			}
		}
	}
	x.record.Set(FieldAuditorName, name)
}

func (x *extraction) auditorFRN() {
	if x.anchors.AuditorName == notFound {
		return
	}
	start, end := x.lines.window(x.anchors.AuditorName+1, auditorFRNWindow)
	for i := start; i < end; i++ {
		if frnPattern.MatchString(x.lines[i]) {
			x.record.Set(FieldAuditorFRNOrMembership, x.lines[i])
			x.anchors.AuditorFRN = i
			return
		}
	}
}

// auditorAddress collects lines after the FRN until a state code, a
// capitalised place name, a PIN code or an email line.
func (x *extraction) auditorAddress() {
	var parts []string
	if x.anchors.AuditorFRN != notFound {
		start, end := x.lines.window(x.anchors.AuditorFRN+1, auditorAddressWindow)
		for _, line := range x.lines[start:end] {
			if addressStopPattern.MatchString(line) {
				break
			}
			parts = append(parts, line)
		}
	}
	x.record.Set(FieldAuditorAddress, strings.Join(parts, " "))
}

// auditorEmail prefers the last email in the document; with a single email
// it repeats the company email, and with none it is empty.
func (x *extraction) auditorEmail(emails []string) {
	switch {
	case len(emails) > 1:
		x.record.Set(FieldAuditorEmail, emails[len(emails)-1])
	case len(emails) == 1:
		x.record.Set(FieldAuditorEmail, emails[0])
	default:
		x.record.Set(FieldAuditorEmail, "")
	}
}

func (x *extraction) appointmentPeriod() {
	from, to := notFound, notFound
	for i, line := range x.lines {
		if !datePattern.MatchString(line) {
			continue
		}
		if from == notFound {
			from = i
			continue
		}
		to = i
		break
	}
	if to == notFound {
		return
	}
	x.record.Set(FieldAppointmentPeriodFrom, x.lines[from])
	x.record.Set(FieldAppointmentPeriodTo, x.lines[to])
	x.anchors.PeriodTo = to
}

// numberOfYears reads the single line after the period end.
func (x *extraction) numberOfYears() {
	if x.anchors.PeriodTo == notFound || x.anchors.PeriodTo+1 >= len(x.lines) {
		return
	}
	line := x.lines[x.anchors.PeriodTo+1]
	years, ok := digitsValue(line)
	if !ok || years >= maxTermYears {
		return
	}
	x.record.Set(FieldNumberOfYears, line)
}

// digitsValue parses s as a run of decimal digits from any script. Values
// above maxTermYears are reported as maxTermYears+1.
func digitsValue(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		d := digitValue(r)
		if d < 0 {
			return 0, false
		}
		if n <= maxTermYears {
			n = n*10 + d
		}
	}
	if n > maxTermYears {
		n = maxTermYears + 1
	}
	return n, true
}

// digitValue returns the value of a decimal digit rune, or -1. Every script
// encodes its digits as a contiguous run starting at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if !unicode.Is(unicode.Nd, r) {
		return -1
	}
	for _, rng := range unicode.Nd.R16 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10
		}
	}
	return -1
}
