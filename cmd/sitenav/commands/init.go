package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	fmt.Fprintf(g.out(), "Writing configuration to %s\n", root.Config)
	if err := config.WriteExample(root.Config, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintln(g.out(), "initialized successfully")
	return err
}
