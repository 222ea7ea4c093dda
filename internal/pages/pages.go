// Package pages maps sidebar paths onto the markdown files that back them.
package pages

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/frontmatter"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// TitleSource tells where a page title came from.
type TitleSource string

const (
	TitleFromFrontmatter TitleSource = "frontmatter"
	TitleFromHeading     TitleSource = "heading"
	TitleFromPath        TitleSource = "path"
)

// Page is a sidebar path backed by a markdown file.
type Page struct {
	Path        string      `json:"path"`
	File        string      `json:"file"` // slash separated, relative to the docs root
	Title       string      `json:"title"`
	TitleSource TitleSource `json:"titleSource"`
	Group       string      `json:"group,omitempty"`
	Fingerprint string      `json:"fingerprint"`
}

// Index lists the pages of a site in sidebar order.
type Index struct {
	Root    string   `json:"root"`
	Pages   []Page   `json:"pages"`
	Missing []string `json:"missing,omitempty"`
}

// Page returns the indexed page for a sidebar path.
func (ix *Index) Page(p string) (Page, bool) {
	for _, pg := range ix.Pages {
		if pg.Path == p {
			return pg, true
		}
	}
	return Page{}, false
}

// Build indexes every path of cfg against the markdown files under root.
// Paths without a file are collected in Index.Missing and reported together
// as a not_found error; the index is returned either way.
func Build(cfg *nav.SiteConfig, root string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		b := errors.FileSystemError("docs root is not a directory").WithContext("path", root)
		if err != nil {
			b = errors.WrapError(err, errors.CategoryFileSystem, "docs root is not a directory").WithContext("path", root)
		}
		return nil, b.Build()
	}

	fsys := os.DirFS(root)
	ix := &Index{Root: root}
	for _, p := range nav.Flatten(cfg) {
		file, ok := locate(fsys, p)
		if !ok {
			ix.Missing = append(ix.Missing, p)
			continue
		}
		pg, err := readPage(fsys, p, file)
		if err != nil {
			return nil, err
		}
		if loc, ok := nav.Lookup(cfg, p); ok {
			pg.Group = loc.Group
		}
		ix.Pages = append(ix.Pages, pg)
	}

	if len(ix.Missing) > 0 {
		return ix, errors.NotFoundError("sidebar paths without a markdown page").
			WithContext("paths", strings.Join(ix.Missing, ",")).
			WithContext("root", root).
			Build()
	}
	return ix, nil
}

// Candidates lists the files, relative to the docs root, that may back a
// sidebar path, most specific first.
func Candidates(p string) []string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(p, ".html"), ".md")
	dirOnly := strings.HasSuffix(trimmed, "/")
	rel := strings.Trim(path.Clean("/"+trimmed), "/")

	if rel == "" {
		return []string{"README.md", "index.md"}
	}
	index := []string{rel + "/README.md", rel + "/index.md"}
	if dirOnly {
		return index
	}
	return append([]string{rel + ".md"}, index...)
}

func locate(fsys fs.FS, p string) (string, bool) {
	for _, c := range Candidates(p) {
		if !fs.ValidPath(c) {
			continue
		}
		info, err := fs.Stat(fsys, c)
		if err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

func readPage(fsys fs.FS, p, file string) (Page, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryFileSystem, "read page").
			WithContext("file", file).
			Build()
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		kind := "invalid frontmatter"
		if stderrors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
			kind = "unterminated frontmatter"
		}
		return Page{}, errors.WrapError(err, errors.CategoryValidation, kind).
			WithContext("file", file).
			Build()
	}

	pg := Page{
		Path:        p,
		File:        file,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(doc.Raw), "\n"), string(doc.Body)),
	}
	switch {
	case strings.TrimSpace(doc.String("title")) != "":
		pg.Title, pg.TitleSource = strings.TrimSpace(doc.String("title")), TitleFromFrontmatter
	case headingTitle(doc.Body) != "":
		pg.Title, pg.TitleSource = headingTitle(doc.Body), TitleFromHeading
	default:
		pg.Title, pg.TitleSource = p, TitleFromPath
	}
	return pg, nil
}
