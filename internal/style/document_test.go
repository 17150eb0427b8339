package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	texerrors "github.com/texhue/texhue/pkg/errors"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	validYAML := `version: "1"
styles:
  - expression: "\\alpha"
    color: "#FF0000FF"
  - expression: "x^2"
    color: "2F7"
    occurrences: "1,3-5"
`

	invalidYAML := `version: "1"
styles: [
`

	badVersion := `version: "2"
styles: []
`

	badColor := `version: "1"
styles:
  - expression: "\\beta"
    color: "not-hex"
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, doc *Document, err error)
	}{
		{
			name:     "valid document is parsed",
			contents: validYAML,
			assert: func(t *testing.T, doc *Document, err error) {
				require.NoError(t, err)
				require.NotNil(t, doc)
				require.Len(t, doc.Styles, 2)
				require.Equal(t, "\\alpha", doc.Styles[0].Expression)
				require.Equal(t, "1,3-5", doc.Styles[1].Occurrences)
			},
		},
		{
			name:     "yaml syntax error becomes a parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, doc *Document, err error) {
				require.Nil(t, doc)
				var parseErr *texerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "unsupported version is rejected",
			contents: badVersion,
			assert: func(t *testing.T, doc *Document, err error) {
				require.Nil(t, doc)
				var validationErr *texerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "version", validationErr.Field)
			},
		},
		{
			name:     "invalid color is addressed by position",
			contents: badColor,
			assert: func(t *testing.T, doc *Document, err error) {
				require.Nil(t, doc)
				var validationErr *texerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "styles[0].color", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "styles.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			doc, err := ParseDocument(path)
			tc.assert(t, doc, err)
		})
	}
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "styles.yaml")
	doc := &Document{
		Version: DocumentVersion,
		Styles: []Record{
			{Expression: "\\gamma", Color: "#11223344", Occurrences: "2"},
			{Expression: "y", Color: "#000000FF"},
		},
	}

	require.NoError(t, SaveDocument(path, doc))

	loaded, err := ParseDocument(path)
	require.NoError(t, err)
	require.Equal(t, doc.Styles, loaded.Styles)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should not survive the rename")
}

func TestSaveDocumentRejectsNil(t *testing.T) {
	t.Parallel()

	err := SaveDocument(filepath.Join(t.TempDir(), "styles.yaml"), nil)
	var storeErr *texerrors.StoreError
	require.ErrorAs(t, err, &storeErr)
}

func TestLoadOrInit(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields an empty document", func(t *testing.T) {
		t.Parallel()

		doc, err := LoadOrInit(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, DocumentVersion, doc.Version)
		require.Empty(t, doc.Styles)
	})

	t.Run("corrupt file still fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "styles.yaml")
		require.NoError(t, os.WriteFile(path, []byte("styles: ["), 0o644))

		_, err := LoadOrInit(path)
		require.Error(t, err)
	})
}

func TestDocumentNormalize(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Version: DocumentVersion,
		Styles: []Record{
			{Expression: "  \\alpha  ", Color: "2f7", Occurrences: " 1 "},
			{Expression: "x", Color: "#AABBCC"},
		},
	}

	doc.Normalize()

	assert.Equal(t, Record{Expression: "\\alpha", Color: "#22FF77FF", Occurrences: "1"}, doc.Styles[0])
	assert.Equal(t, Record{Expression: "x", Color: "#AABBCCFF"}, doc.Styles[1])
}

func TestCloneRecordsIsIndependent(t *testing.T) {
	t.Parallel()

	original := []Record{{Expression: "a", Color: "#000000FF"}}
	clone := CloneRecords(original)
	clone[0].Expression = "b"

	assert.Equal(t, "a", original[0].Expression)
	assert.Nil(t, CloneRecords(nil))
}
