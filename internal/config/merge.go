package config

import "dario.cat/mergo"

// mergeDocuments applies src on top of dst in place. Scalars and lists in src
// replace those in dst, including empty strings and false; nested mappings
// are merged key by key.
func mergeDocuments(dst, src map[string]any) error {
	return mergo.Merge(&dst, src, mergo.WithOverride)
}
