// Package pdftest writes small well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Bytes returns a single-page PDF that shows each line with Helvetica.
func Bytes(lines []string) []byte {
	return build(lines, "")
}

// UndecodableBytes returns a single-page PDF whose content stream names a
// filter no reader implements. The file structure is intact, so it opens and
// counts pages, but the page text cannot be decoded.
func UndecodableBytes(lines []string) []byte {
	return build(lines, "/BogusDecode")
}

func build(lines []string, filter string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n72 760 Td\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj\nT*\n", escape(line))
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream", content.Len(), filterEntry(filter), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Write creates name inside dir with the given lines and returns its path.
func Write(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	return writeFile(t, dir, name, Bytes(lines))
}

// WriteUndecodable creates name inside dir from UndecodableBytes and returns
// its path.
func WriteUndecodable(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	return writeFile(t, dir, name, UndecodableBytes(lines))
}

func writeFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
	return path
}

func filterEntry(filter string) string {
	if filter == "" {
		return ""
	}
	return " /Filter " + filter
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
