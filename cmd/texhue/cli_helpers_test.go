package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/texhue/texhue/internal/style"
)

// setupConfigDir isolates config, log, and pack locations under a temp dir
// and returns a document path inside it.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TEXHUE_CONFIG_DIR", dir)
	return filepath.Join(dir, "styles.yaml")
}

func seedDocument(t *testing.T, path string, styles []style.Record) {
	t.Helper()
	doc := &style.Document{Version: style.DocumentVersion, Styles: styles}
	require.NoError(t, style.SaveDocument(path, doc))
}

func loadDocument(t *testing.T, path string) *style.Document {
	t.Helper()
	doc, err := style.ParseDocument(path)
	require.NoError(t, err)
	return doc
}

func executeCommand(args ...string) (string, error) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}
