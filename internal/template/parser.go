// Package template parses custom-command markdown documents into
// frontmatter metadata and a body string.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterRe matches a leading delimited YAML block. (?s) lets the block
// span blank lines; \A anchors it to the start of the trimmed document, so a
// "---" appearing later in the body is never treated as a delimiter.
var frontmatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\n(.*?)\n---[ \t]*\n(.*)\z`)

// Parse splits a markdown document into optional frontmatter and a body.
// An empty metadata block (only whitespace between delimiters) yields nil
// metadata. source names the document in error messages.
func Parse(raw string, source string) (*Frontmatter, string, error) {
	content := strings.TrimSpace(raw)

	matches := frontmatterRe.FindStringSubmatch(content)
	if matches == nil {
		return nil, content, nil
	}

	block := matches[1]
	body := strings.TrimSpace(matches[2])

	if strings.TrimSpace(block) == "" {
		return nil, body, nil
	}

	var meta Frontmatter
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, "", &MetadataError{Path: source, Err: err}
	}
	return &meta, body, nil
}

// ParseFile reads a document from disk and parses it.
func ParseFile(path string) (*Frontmatter, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &FileReadError{Path: path, Err: err}
	}
	return Parse(string(data), path)
}

// IsMarkdownFile reports whether the path has a markdown extension,
// case-insensitively.
func IsMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// MetadataError reports an unparseable frontmatter block.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to parse frontmatter in %q: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// UserMessage returns a rendering suitable for direct display.
func (e *MetadataError) UserMessage() string {
	return fmt.Sprintf("The metadata block in %s is not valid YAML. Fix the block between the --- delimiters.", e.Path)
}

// FileReadError reports a failure to read a command document.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read command file %q: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// UserMessage returns a rendering suitable for direct display.
func (e *FileReadError) UserMessage() string {
	return fmt.Sprintf("Could not read %s. Check that the file exists and is readable.", e.Path)
}
