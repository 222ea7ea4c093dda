package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

type exampleGroup struct {
	Title    string   `yaml:"title"`
	Children []string `yaml:"children"`
}

type exampleTheme struct {
	Domain    string `yaml:"domain"`
	Repo      string `yaml:"repo"`
	RepoLabel string `yaml:"repoLabel"`
	Sidebar   []any  `yaml:"sidebar"`
}

type exampleDoc struct {
	Title       string                    `yaml:"title"`
	ThemeConfig exampleTheme              `yaml:"themeConfig"`
	Markdown    map[string]any            `yaml:"markdown"`
	Plugins     map[string]map[string]any `yaml:"plugins"`
}

func exampleConfig() exampleDoc {
	return exampleDoc{
		Title: "Project Handbook",
		ThemeConfig: exampleTheme{
			Domain:    "https://docs.example.com",
			Repo:      "example/handbook",
			RepoLabel: "GitHub",
			Sidebar: []any{
				"/page1",
				"/page2",
				exampleGroup{
					Title:    "Getting started",
					Children: []string{"/page3-1", "/page3-2", "/page3-3"},
				},
				"/page4",
			},
		},
		Markdown: map[string]any{"lineNumbers": true},
		Plugins: map[string]map[string]any{
			"@vuepress/last-updated": {"format": "YYYY/MM/DD"},
			"@vuepress/medium-zoom":  {},
			"@vuepress/back-to-top":  {},
			"seo":                    {"description": "Project handbook"},
		},
	}
}

// WriteExample writes an example site configuration to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(exampleConfig())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example configuration").Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create configuration directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
