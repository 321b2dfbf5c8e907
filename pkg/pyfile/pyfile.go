// Package pyfile loads a candidate Python source file into an immutable
// document that the analysis pipeline operates on.
package pyfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Document is the immutable text content of one candidate file.
type Document struct {
	Path    string `json:"path"`
	Content string `json:"-"`
	Digest  string `json:"digest"`

	lines []string
}

// Load reads the file at path. Bytes that are not valid UTF-8 are replaced
// with U+FFFD rather than rejected; an unreadable file is a fatal error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return FromBytes(path, data), nil
}

// FromBytes builds a document from raw content.
func FromBytes(path string, data []byte) *Document {
	content := strings.ToValidUTF8(string(data), "�")
	return &Document{
		Path:    path,
		Content: content,
		Digest:  fmt.Sprintf("%016x", xxhash.Sum64(data)),
		lines:   splitLines(content),
	}
}

// Lines returns the physical lines of the document, without their
// terminating newlines. A trailing newline does not produce an empty
// final line.
func (d *Document) Lines() []string {
	return d.lines
}

// LineCount returns the number of physical lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-based line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
