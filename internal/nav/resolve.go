package nav

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// Raw document keys.
const (
	keyTitle          = "title"
	keyThemeConfig    = "themeConfig"
	keySidebar        = "sidebar"
	keyDomain         = "domain"
	keyRepo           = "repo"
	keyRepoLabel      = "repoLabel"
	keyChildren       = "children"
	keyCollapsable    = "collapsable"
	keyMarkdown       = "markdown"
	keyLineNumbers    = "lineNumbers"
	keyPlugins        = "plugins"
	keyPluginSettings = "pluginSettings"
)

// Resolve validates a raw configuration document and returns the resulting
// SiteConfig. Validation stops at the first violation; the checks run in this
// order: title, sidebar presence, sidebar entry shapes, duplicate paths,
// descriptive theme fields and markdown, plugin settings.
//
// Titles are trimmed before the emptiness check, so a blank title is missing.
// Titles and paths are stored in Unicode NFC form.
//
// Resolve performs no I/O and does not retain raw: opaque markdown and
// plugin values are deep-copied.
func Resolve(raw map[string]any) (*SiteConfig, error) {
	title, err := resolveTitle(raw)
	if err != nil {
		return nil, err
	}

	theme, _ := asMapping(raw[keyThemeConfig])
	sidebar, err := resolveSidebar(theme)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicates(sidebar); err != nil {
		return nil, err
	}

	cfg := &SiteConfig{title: title}
	cfg.theme.Sidebar = sidebar
	if cfg.theme.Domain, err = optionalString(theme, keyDomain); err != nil {
		return nil, err
	}
	if cfg.theme.Repo, err = optionalString(theme, keyRepo); err != nil {
		return nil, err
	}
	if cfg.theme.RepoLabel, err = optionalString(theme, keyRepoLabel); err != nil {
		return nil, err
	}
	if cfg.markdown, err = resolveMarkdown(raw[keyMarkdown]); err != nil {
		return nil, err
	}
	if cfg.plugins, err = resolvePlugins(raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveTitle(raw map[string]any) (string, error) {
	v, ok := raw[keyTitle]
	if !ok {
		return "", missingTitle("")
	}
	s, ok := v.(string)
	if !ok {
		return "", missingTitle("got " + describe(v))
	}
	s = cleanTitle(s)
	if s == "" {
		return "", missingTitle("")
	}
	return s, nil
}

func resolveSidebar(theme map[string]any) ([]SidebarEntry, error) {
	v, ok := theme[keySidebar]
	if !ok {
		return nil, emptySidebar("")
	}
	items, ok := asSequence(v)
	if !ok {
		return nil, emptySidebar("got " + describe(v))
	}
	if len(items) == 0 {
		return nil, emptySidebar("")
	}

	out := make([]SidebarEntry, 0, len(items))
	for i, item := range items {
		entry, err := decodeEntry(i, item)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// decodeEntry dispatches a raw sidebar item by shape: strings are leaf paths,
// mappings carrying a children key are groups.
func decodeEntry(index int, item any) (SidebarEntry, error) {
	switch v := item.(type) {
	case string:
		p, err := parseLeaf(v)
		if err != nil {
			return nil, invalidEntry(index, "%v", err)
		}
		return p, nil
	case LeafPath:
		return decodeEntry(index, string(v))
	}

	m, ok := asMapping(item)
	if !ok {
		return nil, invalidEntry(index, "expected path or group, got %s", describe(item))
	}
	if _, ok := m[keyChildren]; !ok {
		return nil, invalidEntry(index, "group has no children")
	}
	return decodeGroup(index, m)
}

func decodeGroup(index int, m map[string]any) (Group, error) {
	title, _ := m[keyTitle].(string)
	title = cleanTitle(title)
	if title == "" {
		return Group{}, invalidEntry(index, "group title must be a non-empty string")
	}

	children, ok := asSequence(m[keyChildren])
	if !ok {
		return Group{}, invalidEntry(index, "group %q: children must be a list", title)
	}
	if len(children) == 0 {
		return Group{}, invalidEntry(index, "group %q has no children", title)
	}

	g := Group{Title: title, Children: make([]LeafPath, 0, len(children)), Collapsable: true}
	for j, c := range children {
		s, ok := c.(string)
		if !ok {
			return Group{}, invalidEntry(index, "group %q: child %d: expected path, got %s", title, j, describe(c))
		}
		p, err := parseLeaf(s)
		if err != nil {
			return Group{}, invalidEntry(index, "group %q: child %d: %v", title, j, err)
		}
		g.Children = append(g.Children, p)
	}

	if v, ok := m[keyCollapsable]; ok {
		b, ok := v.(bool)
		if !ok {
			return Group{}, invalidEntry(index, "group %q: collapsable must be a bool, got %s", title, describe(v))
		}
		g.Collapsable = b
	}
	return g, nil
}

func parseLeaf(s string) (LeafPath, error) {
	s = norm.NFC.String(s)
	if !strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("path %q must start with /", s)
	}
	return LeafPath(s), nil
}

func checkDuplicates(sidebar []SidebarEntry) error {
	seen := sets.New[LeafPath]()
	for _, e := range sidebar {
		for _, p := range e.Paths() {
			if !seen.Insert(p) {
				return duplicatePath(p)
			}
		}
	}
	return nil
}

func optionalString(theme map[string]any, key string) (string, error) {
	v, ok := theme[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField(keyThemeConfig+"."+key, "must be a string, got %s", describe(v))
	}
	return s, nil
}

func resolveMarkdown(v any) (MarkdownSettings, error) {
	var out MarkdownSettings
	if v == nil {
		return out, nil
	}
	m, ok := asMapping(v)
	if !ok {
		return out, invalidField(keyMarkdown, "must be a mapping, got %s", describe(v))
	}
	for k, val := range m {
		if k == keyLineNumbers {
			b, ok := val.(bool)
			if !ok {
				return out, invalidField(keyMarkdown+"."+keyLineNumbers, "must be a bool, got %s", describe(val))
			}
			out.LineNumbers = b
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[k] = cloneValue(val)
	}
	return out, nil
}

func resolvePlugins(raw map[string]any) (PluginSettings, error) {
	key := keyPlugins
	v, ok := raw[key]
	if !ok {
		key = keyPluginSettings
		v = raw[key]
	}
	if v == nil {
		return nil, nil
	}
	m, ok := asMapping(v)
	if !ok {
		return nil, invalidField(key, "must be a mapping, got %s", describe(v))
	}

	out := make(PluginSettings, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		opts, ok := asMapping(m[name])
		if !ok {
			return nil, invalidPlugin(name, m[name])
		}
		out[name] = cloneMap(opts)
	}
	return out, nil
}

func cleanTitle(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// asMapping accepts the mapping shapes produced by the YAML and JSON decoders.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}
