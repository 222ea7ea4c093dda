// Package frontmatter reads the YAML header of markdown pages.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the page started with a frontmatter
// delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a page split into its header and markdown body.
type Document struct {
	Raw    []byte         // frontmatter text without delimiters
	Fields map[string]any // decoded frontmatter, never nil
	Body   []byte
}

// Parse splits content into frontmatter and body and decodes the frontmatter.
// CRLF and LF line endings are both accepted.
func Parse(content []byte) (Document, error) {
	raw, body, err := split(content)
	if err != nil {
		return Document{}, err
	}
	doc := Document{Raw: raw, Body: body, Fields: map[string]any{}}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(raw, &doc.Fields); err != nil {
		return Document{}, err
	}
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}
	return doc, nil
}

// String returns a string field, or "" when absent or not a string.
func (d Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

func split(content []byte) (raw, body []byte, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len("---")], []byte{}, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], nil
}
