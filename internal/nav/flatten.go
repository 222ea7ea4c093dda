package nav

import "golang.org/x/text/unicode/norm"

// Flatten returns every navigable path of cfg in declared order, group
// children in place of their group. Each call returns a new slice.
func Flatten(cfg *SiteConfig) []string {
	if cfg == nil {
		return nil
	}
	out := make([]string, 0, len(cfg.theme.Sidebar))
	for _, e := range cfg.theme.Sidebar {
		switch v := e.(type) {
		case LeafPath:
			out = append(out, string(v))
		case Group:
			for _, c := range v.Children {
				out = append(out, string(c))
			}
		}
	}
	return out
}

// Location describes where a path sits in the sidebar.
type Location struct {
	Position int    // index in Flatten order
	Entry    int    // index of the top-level sidebar entry
	Group    string // enclosing group title, empty for top-level paths
}

// Lookup finds path in the sidebar. path is compared in NFC form, like the
// stored paths.
func Lookup(cfg *SiteConfig, path string) (Location, bool) {
	if cfg == nil {
		return Location{}, false
	}
	path = norm.NFC.String(path)
	pos := 0
	for i, e := range cfg.theme.Sidebar {
		switch v := e.(type) {
		case LeafPath:
			if string(v) == path {
				return Location{Position: pos, Entry: i}, true
			}
			pos++
		case Group:
			for _, c := range v.Children {
				if string(c) == path {
					return Location{Position: pos, Entry: i, Group: v.Title}, true
				}
				pos++
			}
		}
	}
	return Location{}, false
}

// Neighbors returns the pages before and after path in Flatten order. prev or
// next is empty at the ends of the list; ok is false when path is unknown.
func Neighbors(cfg *SiteConfig, path string) (prev, next string, ok bool) {
	loc, ok := Lookup(cfg, path)
	if !ok {
		return "", "", false
	}
	paths := Flatten(cfg)
	if loc.Position > 0 {
		prev = paths[loc.Position-1]
	}
	if loc.Position+1 < len(paths) {
		next = paths[loc.Position+1]
	}
	return prev, next, true
}
