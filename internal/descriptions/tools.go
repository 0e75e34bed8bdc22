package descriptions

// Tool descriptions with practical examples and use cases

const (
	ADT1ExtractFileDescription = `Extract the auditor appointment details from a Form ADT-1 PDF filing.

**When to use:** You have an ADT-1 filing (notice to the Registrar of an auditor appointment) and need its fields as structured data.

**What you get:** The extracted record (CIN, company name, registered office, company email, appointment type, auditor PAN, name, FRN or membership number, address and email, appointment period and number of years) followed by a one-paragraph summary.

**Examples:**
• "Extract the auditor details from Form ADT-1-29092023_signed.pdf"
• "Who was appointed as auditor in filings/adt1-acme.pdf and for how long?"

**Notes:** Fields the form does not show are omitted from the record; registered_office, company_email, auditor_name, auditor_address and auditor_email are always present and may be empty. Relative paths are resolved against the configured directory.`

	ADT1ExtractTextDescription = `Extract Form ADT-1 fields from text that was already pulled out of the filing.

**When to use:** The PDF was rendered elsewhere (OCR, another converter) and you have its text with one form value per line.

**What you get:** The same record and summary as adt1_extract_file.

**Examples:**
• "Run the ADT-1 extractor over this pasted text"`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before extracting a filing, especially one uploaded by a user or fetched from a portal.

**Examples:**
• "Check that Form ADT-1-29092023_signed.pdf is a readable PDF"

**Best practices:** Digitally signed filings with minor structural defects are accepted; files that cannot be parsed at all are reported with the reason.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"adt1_extract_file": ADT1ExtractFileDescription,
	"adt1_extract_text": ADT1ExtractTextDescription,
	"pdf_validate_file": PDFValidateFileDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
