package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/pages"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Docs   string `short:"d" help:"Documentation root (defaults to SITENAV_DOCS_DIR or ./docs)" type:"path"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

// Run prints the page index. Missing pages are listed and still fail the
// command with a not_found error.
func (p *PagesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	dir := root.docsDir(p.Docs)
	ix, buildErr := pages.Build(cfg, dir)
	if ix == nil {
		return buildErr
	}
	g.logger().Debug("Pages indexed", logfields.DocsDir(dir), logfields.Pages(len(ix.Pages)))

	if p.Format == "json" {
		if err := writeJSON(g, ix); err != nil {
			return err
		}
		return buildErr
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	for _, pg := range ix.Pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pg.Path, pg.File, pg.Title)
	}
	for _, m := range ix.Missing {
		fmt.Fprintf(tw, "%s\t(missing)\t\n", m)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return buildErr
}
