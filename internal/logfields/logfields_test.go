package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperKeyNames verifies helper key stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
	}{
		{"ConfigPath", KeyConfigPath, ConfigPath("docs/sitenav.yaml")},
		{"Overlays", KeyOverlays, Overlays([]string{"a.yaml"})},
		{"Path", KeyPath, Path("/page1")},
		{"File", KeyFile, File("page1.md")},
		{"Title", KeyTitle, Title("Docs")},
		{"Entries", KeyEntries, Entries(3)},
		{"Pages", KeyPages, Pages(6)},
		{"Plugins", KeyPlugins, Plugins(4)},
		{"Snapshot", KeySnapshot, Snapshot("abc")},
		{"DocsDir", KeyDocsDir, DocsDir("docs")},
		{"DurationMS", KeyDurationMS, DurationMS(1.5)},
	}

	for _, tc := range cases {
		// Key drift would break log ingestion schemas.
		require.Equal(t, tc.attrKey, tc.attr.Key, tc.name)
	}
}

func TestError(t *testing.T) {
	require.Equal(t, "", Error(nil).Value.String())
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	require.Equal(t, KeyError, Error(nil).Key)
}
