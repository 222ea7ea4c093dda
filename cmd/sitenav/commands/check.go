package commands

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/pages"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Docs string `short:"d" help:"Also require a markdown page under this directory for every path" type:"path"`
	Dump bool   `help:"Print the resolved configuration structure"`
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	if c.Dump {
		dumpConfig.Fdump(g.out(), cfg)
	}

	paths := nav.Flatten(cfg)
	if c.Docs != "" {
		ix, err := pages.Build(cfg, c.Docs)
		if err != nil {
			return err
		}
		g.logger().Debug("Pages indexed", logfields.DocsDir(c.Docs), logfields.Pages(len(ix.Pages)))
	}

	_, err = fmt.Fprintf(g.out(), "%s: ok (%q, %d pages)\n", root.Config, cfg.Title(), len(paths))
	return err
}
