package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcc-go/packages/compiler/src/config"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindFiles(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app/a.ts":              "",
		"app/a.d.ts":            "",
		"app/b.html":            "",
		"node_modules/lib/x.ts": "",
		"dist/out.ts":           "",
		"app/nested/deep/c.ts":  "",
	})

	files, err := findFiles(root, ".ts", ".d.ts")
	require.NoError(t, err)
	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.ElementsMatch(t, []string{"app/a.ts", "app/nested/deep/c.ts"}, rel)

	single, err := findFiles(filepath.Join(root, "app/b.html"), ".ts")
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestCompileTemplates(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"views/card.html": `<user-card [user]="u"></user-card>`,
		"views/bad.html":  `<w:if a="b"></w:if>`,
	})
	out := t.TempDir()

	err := CompileTemplates(root, out, config.NewCompilerConfig(), discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 templates failed")

	dump, err := os.ReadFile(filepath.Join(out, "views", "card.html.view.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Component user-card UserCard\n  @ComponentInput user PropertyAccess(u)\n", string(dump))
	assert.NoFileExists(t, filepath.Join(out, "views", "bad.html.view.txt"))
}

func TestRewriteProject(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"src/a.ts":   "class A {\n  m() { p.then(h); }\n}\n",
		"src/b.ts":   "export const x = 1;\n",
		"src/a.d.ts": "declare class D { m(): void; }\n",
	})
	out := t.TempDir()

	require.NoError(t, RewriteProject(root, out, config.NewCompilerConfig(), discardLogger()))

	a, err := os.ReadFile(filepath.Join(out, "src", "a.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(a), "constructor(private __wScheduler: Scheduler) {}")
	assert.Equal(t, 1, strings.Count(string(a), "this.__wScheduler.markForCheck()"))

	b, err := os.ReadFile(filepath.Join(out, "src", "b.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export const x = 1;\n", string(b))
	assert.NoFileExists(t, filepath.Join(out, "src", "a.d.ts"))
}

func TestRewriteProjectFailures(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"broken.ts": "class A { m() { p.then( } }",
		"arity.ts":  "class A {\n  m() { p.then(a, b); }\n}\n",
	})
	err := RewriteProject(root, t.TempDir(), config.NewCompilerConfig(), discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 files failed")
}
