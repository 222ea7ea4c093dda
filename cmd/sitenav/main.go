package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/cmd/sitenav/commands"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}

	parser := kong.Parse(cli,
		kong.Name("sitenav"),
		kong.Description("Validate and inspect documentation site navigation"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		commands.Vars(),
		kong.Bind(global),
	)

	err := cli.Setup(global)
	if err == nil {
		err = parser.Run()
	}
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	if code := adapter.Report(os.Stderr, err); code != 0 {
		os.Exit(code)
	}
}
