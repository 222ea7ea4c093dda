package commands

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/pages"
)

// NeighborsCmd implements the 'neighbors' command.
type NeighborsCmd struct {
	Path   string `arg:"" help:"Sidebar path, e.g. /guide/install"`
	Docs   string `short:"d" help:"Documentation root used to show page titles" type:"path"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type neighborsResult struct {
	Path      string `json:"path"`
	Title     string `json:"title,omitempty"`
	Group     string `json:"group,omitempty"`
	Position  int    `json:"position"`
	Prev      string `json:"prev,omitempty"`
	PrevTitle string `json:"prevTitle,omitempty"`
	Next      string `json:"next,omitempty"`
	NextTitle string `json:"nextTitle,omitempty"`
}

func (n *NeighborsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	p := norm.NFC.String(n.Path)
	loc, ok := nav.Lookup(cfg, p)
	if !ok {
		return errors.NotFoundError("path is not in the sidebar").
			WithContext("path", n.Path).
			Build()
	}
	prev, next, _ := nav.Neighbors(cfg, p)
	g.logger().Debug("Path located", logfields.Path(p), slog.Int("position", loc.Position))
	res := neighborsResult{Path: p, Group: loc.Group, Position: loc.Position, Prev: prev, Next: next}

	if n.Docs != "" {
		// Pages without a file simply get no title here.
		ix, err := pages.Build(cfg, n.Docs)
		if ix == nil {
			return err
		}
		res.Title = pageTitle(ix, res.Path)
		res.PrevTitle = pageTitle(ix, res.Prev)
		res.NextTitle = pageTitle(ix, res.Next)
	}

	if n.Format == "json" {
		return writeJSON(g, res)
	}
	if res.Title != "" {
		fmt.Fprintf(g.out(), "title: %s\n", res.Title)
	}
	if res.Group != "" {
		fmt.Fprintf(g.out(), "group: %s\n", res.Group)
	}
	fmt.Fprintf(g.out(), "prev: %s\n", withTitle(res.Prev, res.PrevTitle))
	_, err = fmt.Fprintf(g.out(), "next: %s\n", withTitle(res.Next, res.NextTitle))
	return err
}

func pageTitle(ix *pages.Index, p string) string {
	if p == "" {
		return ""
	}
	pg, ok := ix.Page(p)
	if !ok {
		return ""
	}
	return pg.Title
}

func withTitle(p, title string) string {
	switch {
	case p == "":
		return "-"
	case title == "":
		return p
	default:
		return fmt.Sprintf("%s (%s)", p, title)
	}
}
