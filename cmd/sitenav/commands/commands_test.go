package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

const siteYAML = `title: Handbook
themeConfig:
  repo: org/handbook
  sidebar:
    - /intro
    - title: Guide
      children:
        - /guide/install
        - /guide/usage
    - /faq
`

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to write to.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setup(t *testing.T, content string) (*CLI, *Global, *syncBuffer) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sitenav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	out := &syncBuffer{}
	return &CLI{Config: path}, &Global{Out: out}, out
}

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func exitCode(err error) int {
	return errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestFlattenCmd_Text(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&FlattenCmd{Format: "text"}).Run(g, root))
	require.Equal(t, "/intro\n/guide/install\n/guide/usage\n/faq\n", out.String())
}

func TestFlattenCmd_JSON(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&FlattenCmd{Format: "json"}).Run(g, root))
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(out.String()), &paths))
	require.Equal(t, []string{"/intro", "/guide/install", "/guide/usage", "/faq"}, paths)
}

func TestFlattenCmd_Overlay(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	overlay := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("themeConfig:\n  sidebar: [/only]\n"), 0o644))
	root.Overlay = []string{overlay}

	require.NoError(t, (&FlattenCmd{Format: "text"}).Run(g, root))
	require.Equal(t, "/only\n", out.String())
}

func TestCheckCmd_Valid(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&CheckCmd{}).Run(g, root))
	require.Contains(t, out.String(), `ok ("Handbook", 4 pages)`)
}

func TestCheckCmd_Dump(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&CheckCmd{Dump: true}).Run(g, root))
	require.Contains(t, out.String(), "nav.SiteConfig")
	require.Contains(t, out.String(), "/guide/install")
}

func TestCheckCmd_Duplicate(t *testing.T) {
	root, g, _ := setup(t, "title: Docs\nthemeConfig:\n  sidebar: [/a, /a]\n")
	err := (&CheckCmd{}).Run(g, root)
	require.ErrorIs(t, err, nav.ErrDuplicatePath)
	require.Equal(t, 2, exitCode(err))
}

func TestCheckCmd_MissingConfigFile(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")}
	err := (&CheckCmd{}).Run(&Global{Out: &bytes.Buffer{}}, root)
	require.Error(t, err)
	require.Equal(t, 3, exitCode(err))
}

func TestCheckCmd_Docs(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"intro.md":         "# Intro\n",
		"guide/install.md": "# Install\n",
		"guide/usage.md":   "# Usage\n",
		"faq/README.md":    "# FAQ\n",
	})
	root, g, _ := setup(t, siteYAML)
	require.NoError(t, (&CheckCmd{Docs: docs}).Run(g, root))

	require.NoError(t, os.Remove(filepath.Join(docs, "faq", "README.md")))
	err := (&CheckCmd{Docs: docs}).Run(g, root)
	require.Error(t, err)
	require.Equal(t, 3, exitCode(err))
}

func TestNeighborsCmd(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&NeighborsCmd{Path: "/guide/install", Format: "text"}).Run(g, root))
	require.Equal(t, "group: Guide\nprev: /intro\nnext: /guide/usage\n", out.String())
}

func TestNeighborsCmd_Ends(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&NeighborsCmd{Path: "/faq", Format: "json"}).Run(g, root))
	var res neighborsResult
	require.NoError(t, json.Unmarshal([]byte(out.String()), &res))
	require.Equal(t, neighborsResult{Path: "/faq", Position: 3, Prev: "/guide/usage"}, res)
}

func TestNeighborsCmd_Unknown(t *testing.T) {
	root, g, _ := setup(t, siteYAML)
	err := (&NeighborsCmd{Path: "/nope", Format: "text"}).Run(g, root)
	require.Error(t, err)
	require.Equal(t, 3, exitCode(err))
}

func TestPagesCmd(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"intro.md":         "---\ntitle: Welcome\n---\nHello\n",
		"guide/install.md": "# Installing\n",
		"guide/usage.md":   "no heading\n",
	})
	root, g, out := setup(t, siteYAML)
	err := (&PagesCmd{Docs: docs, Format: "text"}).Run(g, root)
	require.Error(t, err)
	require.Equal(t, 3, exitCode(err))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Welcome")
	require.Contains(t, lines[1], "Installing")
	require.Contains(t, lines[2], "/guide/usage")
	require.Contains(t, lines[3], "/faq")
	require.Contains(t, lines[3], "(missing)")
}

func TestPagesCmd_DocsDirFromSettings(t *testing.T) {
	docs := writeDocs(t, map[string]string{"a.md": "# A\n"})
	root, g, out := setup(t, "title: Docs\nthemeConfig:\n  sidebar: [/a]\n")
	root.settings.DocsDir = docs
	require.NoError(t, (&PagesCmd{Format: "json"}).Run(g, root))
	require.Contains(t, out.String(), `"title": "A"`)
}

func TestSnapshotCmd(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&SnapshotCmd{}).Run(g, root))
	first := strings.TrimSpace(out.String())
	require.Len(t, first, 64)

	// Formatting changes do not change the snapshot.
	reformatted := strings.ReplaceAll(siteYAML, "  repo: org/handbook\n", "  repo: \"org/handbook\"\n")
	root2, g2, out2 := setup(t, reformatted)
	require.NoError(t, (&SnapshotCmd{}).Run(g2, root2))
	require.Equal(t, first, strings.TrimSpace(out2.String()))
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "sitenav.yaml")
	root := &CLI{Config: path}
	out := &bytes.Buffer{}
	g := &Global{Out: out}

	require.NoError(t, (&InitCmd{}).Run(g, root))
	require.Contains(t, out.String(), "initialized successfully")
	require.NoError(t, (&CheckCmd{}).Run(g, root))

	err := (&InitCmd{}).Run(g, root)
	require.Error(t, err)
	require.Equal(t, 7, exitCode(err))

	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
}

func TestWatchCmd_ReportsChanges(t *testing.T) {
	root, g, out := setup(t, siteYAML)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{Debounce: 20 * time.Millisecond}).run(ctx, g, root) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "ok (4 pages") }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(root.Config, []byte("title: Docs\nthemeConfig:\n  sidebar: [/a, /a]\n"), 0o644))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "rejected: invalid site configuration: duplicate") }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchCmd_InvalidStartupConfig(t *testing.T) {
	root, g, _ := setup(t, "title: ''\nthemeConfig:\n  sidebar: [/a]\n")
	err := (&WatchCmd{Debounce: time.Millisecond}).run(context.Background(), g, root)
	require.ErrorIs(t, err, nav.ErrMissingTitle)
}

func TestNeighborsCmd_DecomposedArgument(t *testing.T) {
	root, g, out := setup(t, "title: Docs\nthemeConfig:\n  sidebar: [/intro, \"/caf\u00e9\", /end]\n")
	require.NoError(t, (&NeighborsCmd{Path: "/cafe\u0301", Format: "json"}).Run(g, root))

	var res neighborsResult
	require.NoError(t, json.Unmarshal([]byte(out.String()), &res))
	require.Equal(t, "/caf\u00e9", res.Path)
	require.Equal(t, "/intro", res.Prev)
	require.Equal(t, "/end", res.Next)
}

func TestNeighborsCmd_WithDocsShowsTitles(t *testing.T) {
	docs := writeDocs(t, map[string]string{
		"intro.md":         "# Introduction\n",
		"guide/install.md": "---\ntitle: Installing\n---\nSteps\n",
	})
	root, g, out := setup(t, siteYAML)
	require.NoError(t, (&NeighborsCmd{Path: "/guide/install", Docs: docs, Format: "text"}).Run(g, root))
	require.Equal(t,
		"title: Installing\ngroup: Guide\nprev: /intro (Introduction)\nnext: /guide/usage\n",
		out.String())
}

func TestCLISetup_InvalidSettingsUseConfigExitCode(t *testing.T) {
	t.Setenv("SITENAV_LOG_LEVEL", "loud")
	err := (&CLI{}).Setup(&Global{})
	require.Error(t, err)
	require.Equal(t, 7, exitCode(err))
}

func TestCLISetup_ReadsSettings(t *testing.T) {
	t.Setenv("SITENAV_LOG_LEVEL", "warn")
	t.Setenv("SITENAV_DOCS_DIR", "site/docs")
	c := &CLI{}
	g := &Global{}
	require.NoError(t, c.Setup(g))
	require.NotNil(t, g.Logger)
	require.Equal(t, "site/docs", c.docsDir(""))
	require.Equal(t, "other", c.docsDir("other"))
}

func TestCLI_EnvFileFlag(t *testing.T) {
	const key = "SITENAV_TEST_CLI_ENV_TITLE"
	_, preset := os.LookupEnv(key)
	require.False(t, preset)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	root, g, out := setup(t, "title: ${"+key+"}\nthemeConfig:\n  sidebar: [/a]\n")
	envFile := filepath.Join(t.TempDir(), "site.env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=From Env File\n"), 0o644))
	root.EnvFile = []string{envFile}

	require.NoError(t, (&CheckCmd{}).Run(g, root))
	require.Contains(t, out.String(), `"From Env File"`)
}
