package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// FlattenCmd implements the 'flatten' command.
type FlattenCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (f *FlattenCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	paths := nav.Flatten(cfg)
	if f.Format == "json" {
		return writeJSON(g, paths)
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(g.out(), p); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(g *Global, v any) error {
	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
