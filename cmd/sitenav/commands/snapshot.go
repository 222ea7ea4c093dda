package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// SnapshotCmd implements the 'snapshot' command.
type SnapshotCmd struct{}

func (s *SnapshotCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	sum, err := cfg.Snapshot()
	if err != nil {
		return err
	}
	g.logger().Debug("Snapshot computed", logfields.Snapshot(sum))
	_, err = fmt.Fprintln(g.out(), sum)
	return err
}
