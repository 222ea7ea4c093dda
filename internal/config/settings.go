package config

import (
	"github.com/caarlos0/env/v11"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "SITENAV_"

// Settings holds host level options that are not part of the site config.
type Settings struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	DocsDir   string `env:"DOCS_DIR" envDefault:"docs"`
}

// LoadSettings reads Settings from the SITENAV_* environment variables.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return Settings{}, errors.WrapError(err, errors.CategoryConfig, "read settings from environment").Build()
	}
	if _, err := logLevelNormalizer.NormalizeWithError(s.LogLevel); err != nil {
		return Settings{}, errors.WrapError(err, errors.CategoryConfig, "invalid log level").
			WithContext("env", EnvPrefix+"LOG_LEVEL").
			WithContext("valid", logLevelNormalizer.ValidKeys()).
			Build()
	}
	if _, err := logFormatNormalizer.NormalizeWithError(s.LogFormat); err != nil {
		return Settings{}, errors.WrapError(err, errors.CategoryConfig, "invalid log format").
			WithContext("env", EnvPrefix+"LOG_FORMAT").
			WithContext("valid", logFormatNormalizer.ValidKeys()).
			Build()
	}
	return s, nil
}
