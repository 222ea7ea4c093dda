package config

import (
	stderrors "errors"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// DefaultPath is where the CLI looks for the site configuration.
const DefaultPath = "docs/sitenav.yaml"

// Option adjusts how Load and LoadRaw read configuration sources.
type Option func(*loadOptions)

type loadOptions struct {
	overlays  []string
	envFiles  []string
	expandEnv bool
}

func defaultLoadOptions() loadOptions {
	return loadOptions{
		envFiles:  []string{".env", ".env.local"},
		expandEnv: true,
	}
}

// WithOverlays adds override files applied on top of the base file, in order.
func WithOverlays(paths ...string) Option {
	return func(o *loadOptions) { o.overlays = append(o.overlays, paths...) }
}

// WithEnvFiles replaces the list of dotenv files consulted before reading.
// Passing no paths disables dotenv loading.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) { o.envFiles = paths }
}

// WithoutEnvExpansion keeps ${VAR} references in the files verbatim.
func WithoutEnvExpansion() Option {
	return func(o *loadOptions) { o.expandEnv = false }
}

// Load reads the configuration at path plus any overlays and resolves it.
// Resolve failures are returned as validation errors wrapping the
// *nav.ConfigError, so errors.Is against the nav sentinels keeps working.
func Load(path string, opts ...Option) (*nav.SiteConfig, error) {
	raw, err := LoadRaw(path, opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := nav.Resolve(raw)
	if err != nil {
		b := errors.WrapError(err, errors.CategoryValidation, "invalid site configuration").
			Fatal().
			WithContext("path", path)
		var ce *nav.ConfigError
		if stderrors.As(err, &ce) {
			b = b.WithContext("kind", string(ce.Kind))
		}
		return nil, b.Build()
	}
	return cfg, nil
}

// LoadRaw reads and merges the configuration sources without resolving them.
func LoadRaw(path string, opts ...Option) (map[string]any, error) {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := loadEnvFile(o.envFiles); err != nil {
		return nil, err
	}

	doc, err := readDocument(path, o.expandEnv)
	if err != nil {
		return nil, err
	}
	for _, overlay := range o.overlays {
		over, err := readDocument(overlay, o.expandEnv)
		if err != nil {
			return nil, err
		}
		if err := mergeDocuments(doc, over); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "merge overlay").
				Fatal().
				WithContext("path", overlay).
				Build()
		}
	}
	return doc, nil
}

// readDocument decodes one YAML or JSON file into a generic mapping.
func readDocument(path string, expand bool) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").
			WithContext("path", path).
			Build()
	}

	content := string(data)
	if expand {
		content = os.ExpandEnv(content)
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode configuration file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
