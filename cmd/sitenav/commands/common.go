package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out    io.Writer
	Logger *slog.Logger
}

func (g *Global) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Global) out() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Site configuration file" default:"${default_config}" type:"path"`
	Overlay  []string         `short:"o" help:"Override files merged over the configuration, in order" type:"path"`
	NoExpand bool             `name:"no-expand" help:"Keep environment variable references in configuration files verbatim"`
	EnvFile  []string         `name:"env-file" help:"Dotenv files to consult instead of .env and .env.local" type:"path"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check     CheckCmd     `cmd:"" help:"Validate the site configuration"`
	Flatten   FlattenCmd   `cmd:"" help:"Print every sidebar path in navigation order"`
	Neighbors NeighborsCmd `cmd:"" help:"Show the previous and next page of a path"`
	Pages     PagesCmd     `cmd:"" help:"Match sidebar paths with markdown files"`
	Snapshot  SnapshotCmd  `cmd:"" help:"Print a stable hash of the resolved configuration"`
	Init      InitCmd      `cmd:"" help:"Write an example configuration file"`
	Watch     WatchCmd     `cmd:"" help:"Re-validate the configuration whenever it changes"`

	settings config.Settings
}

// Vars supplies the interpolated defaults used in the CLI tags.
func Vars() kong.Vars {
	return kong.Vars{"default_config": config.DefaultPath}
}

// Setup reads the host settings and installs the process logger. It runs
// once after flag parsing and before the selected command.
func (c *CLI) Setup(g *Global) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	c.settings = settings
	g.Logger = settings.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

func (c *CLI) loadOptions() []config.Option {
	opts := []config.Option{config.WithOverlays(c.Overlay...)}
	if len(c.EnvFile) > 0 {
		opts = append(opts, config.WithEnvFiles(c.EnvFile...))
	}
	if c.NoExpand {
		opts = append(opts, config.WithoutEnvExpansion())
	}
	return opts
}

// load reads and resolves the configuration named by the global flags.
func (c *CLI) load(g *Global) (*nav.SiteConfig, error) {
	log := g.logger().With(logfields.ConfigPath(c.Config))
	if len(c.Overlay) > 0 {
		log = log.With(logfields.Overlays(c.Overlay))
	}
	cfg, err := config.Load(c.Config, c.loadOptions()...)
	if err != nil {
		log.Debug("Configuration rejected", logfields.Error(err))
		return nil, err
	}
	log.Debug("Configuration resolved",
		logfields.Title(cfg.Title()),
		logfields.Entries(len(cfg.Sidebar())),
		logfields.Plugins(len(cfg.Plugins())))
	return cfg, nil
}

// docsDir picks the docs root: the flag, then SITENAV_DOCS_DIR, then "docs".
func (c *CLI) docsDir(flag string) string {
	if flag != "" {
		return flag
	}
	if c.settings.DocsDir != "" {
		return c.settings.DocsDir
	}
	return "docs"
}
