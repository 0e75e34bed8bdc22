package pdf

// Document is a rendered input document.
type Document struct {
	Path   string `json:"path"`
	Engine string `json:"engine"`
	Pages  int    `json:"pages"`
	Size   int64  `json:"size"`
	Text   string `json:"text"`
}

// ValidateResult represents the result of a PDF validation operation
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Pages   int    `json:"pages,omitempty"`
	Message string `json:"message,omitempty"`
}
