// Package nav resolves the navigation configuration of a documentation site.
//
// A raw, untyped configuration document (as decoded from YAML or JSON) is
// validated by Resolve and turned into a SiteConfig. A SiteConfig is never
// mutated after Resolve returns it; accessors hand out copies so a rendering
// host can share one instance freely.
package nav

// SidebarEntry is one top-level sidebar item: either a LeafPath or a Group.
// The interface is sealed; no other implementations exist.
type SidebarEntry interface {
	// Paths returns the navigable paths of the entry in declared order.
	Paths() []LeafPath
	isSidebarEntry()
}

// LeafPath references a single page, e.g. "/page1".
type LeafPath string

// Paths implements SidebarEntry.
func (p LeafPath) Paths() []LeafPath { return []LeafPath{p} }

func (LeafPath) isSidebarEntry() {}

// Group is a titled, collapsible section of leaf paths.
type Group struct {
	Title       string
	Children    []LeafPath
	Collapsable bool
}

// Paths implements SidebarEntry.
func (g Group) Paths() []LeafPath {
	out := make([]LeafPath, len(g.Children))
	copy(out, g.Children)
	return out
}

func (Group) isSidebarEntry() {}

// ThemeConfig holds theme level settings and the sidebar.
type ThemeConfig struct {
	Domain    string
	Repo      string
	RepoLabel string
	Sidebar   []SidebarEntry
}

// MarkdownSettings holds the markdown options the host passes to its renderer.
// Keys other than lineNumbers are kept verbatim in Extra.
type MarkdownSettings struct {
	LineNumbers bool
	Extra       map[string]any
}

// PluginSettings maps a plugin name to its opaque options.
type PluginSettings map[string]map[string]any

// SiteConfig is the validated site configuration.
type SiteConfig struct {
	title    string
	theme    ThemeConfig
	markdown MarkdownSettings
	plugins  PluginSettings
}

// Title returns the site title.
func (c *SiteConfig) Title() string { return c.title }

// Theme returns a copy of the theme configuration.
func (c *SiteConfig) Theme() ThemeConfig {
	t := c.theme
	t.Sidebar = c.Sidebar()
	return t
}

// Sidebar returns a copy of the sidebar in declared order.
func (c *SiteConfig) Sidebar() []SidebarEntry {
	out := make([]SidebarEntry, len(c.theme.Sidebar))
	for i, e := range c.theme.Sidebar {
		if g, ok := e.(Group); ok {
			g.Children = g.Paths()
			e = g
		}
		out[i] = e
	}
	return out
}

// Markdown returns a copy of the markdown settings.
func (c *SiteConfig) Markdown() MarkdownSettings {
	m := c.markdown
	m.Extra = cloneMap(c.markdown.Extra)
	return m
}

// Plugins returns a deep copy of the plugin settings.
func (c *SiteConfig) Plugins() PluginSettings {
	if c.plugins == nil {
		return nil
	}
	out := make(PluginSettings, len(c.plugins))
	for name, opts := range c.plugins {
		out[name] = cloneMap(opts)
	}
	return out
}

// Plugin returns the options of a single plugin.
func (c *SiteConfig) Plugin(name string) (map[string]any, bool) {
	opts, ok := c.plugins[name]
	if !ok {
		return nil, false
	}
	return cloneMap(opts), true
}
