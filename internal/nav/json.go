package nav

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

type siteJSON struct {
	Title       string                    `json:"title"`
	ThemeConfig themeJSON                 `json:"themeConfig"`
	Markdown    map[string]any            `json:"markdown,omitempty"`
	Plugins     map[string]map[string]any `json:"plugins,omitempty"`
}

type themeJSON struct {
	Domain    string `json:"domain,omitempty"`
	Repo      string `json:"repo,omitempty"`
	RepoLabel string `json:"repoLabel,omitempty"`
	Sidebar   []any  `json:"sidebar"`
}

type groupJSON struct {
	Title       string   `json:"title"`
	Children    []string `json:"children"`
	Collapsable *bool    `json:"collapsable,omitempty"`
}

// MarshalJSON projects the config back into the document shape Resolve
// accepts. Map keys are emitted sorted, so equal configs encode identically.
func (c *SiteConfig) MarshalJSON() ([]byte, error) {
	doc := siteJSON{
		Title: c.title,
		ThemeConfig: themeJSON{
			Domain:    c.theme.Domain,
			Repo:      c.theme.Repo,
			RepoLabel: c.theme.RepoLabel,
			Sidebar:   make([]any, 0, len(c.theme.Sidebar)),
		},
		Plugins: c.plugins,
	}
	for _, e := range c.theme.Sidebar {
		switch v := e.(type) {
		case LeafPath:
			doc.ThemeConfig.Sidebar = append(doc.ThemeConfig.Sidebar, string(v))
		case Group:
			g := groupJSON{Title: v.Title, Children: make([]string, len(v.Children))}
			for i, p := range v.Children {
				g.Children[i] = string(p)
			}
			if !v.Collapsable {
				g.Collapsable = new(bool)
			}
			doc.ThemeConfig.Sidebar = append(doc.ThemeConfig.Sidebar, g)
		}
	}
	if c.markdown.LineNumbers || len(c.markdown.Extra) > 0 {
		doc.Markdown = make(map[string]any, len(c.markdown.Extra)+1)
		for k, v := range c.markdown.Extra {
			doc.Markdown[k] = v
		}
		if c.markdown.LineNumbers {
			doc.Markdown[keyLineNumbers] = true
		}
	}
	return json.Marshal(doc)
}

// Snapshot returns a stable hash of the config. Two configs resolved from
// equivalent documents have the same snapshot.
func (c *SiteConfig) Snapshot() (string, error) {
	data, err := c.MarshalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
