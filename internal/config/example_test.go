package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

func TestWriteExample_LoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "sitenav.yaml")
	require.NoError(t, WriteExample(path, false))

	cfg, err := Load(path, WithEnvFiles())
	require.NoError(t, err)
	require.Equal(t, "Project Handbook", cfg.Title())
	require.Equal(t,
		[]string{"/page1", "/page2", "/page3-1", "/page3-2", "/page3-3", "/page4"},
		nav.Flatten(cfg))
	require.Len(t, cfg.Plugins(), 4)
	require.True(t, cfg.Markdown().LineNumbers)
}

func TestWriteExample_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitenav.yaml")
	require.NoError(t, WriteExample(path, false))

	err := WriteExample(path, false)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, WriteExample(path, true))
}
