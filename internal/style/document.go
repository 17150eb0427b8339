package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	texerrors "github.com/texhue/texhue/pkg/errors"
)

// DocumentVersion is the only schema version this build reads and writes.
const DocumentVersion = "1"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Document is the persisted styles file: a schema version and the ordered
// rule list. Order is significant; rules are addressed by position.
type Document struct {
	Version string   `yaml:"version"`
	Styles  []Record `yaml:"styles"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{Version: DocumentVersion, Styles: []Record{}}
}

// Normalize trims every rule's text fields and rewrites every color to
// canonical hex8, in place.
func (d *Document) Normalize() {
	for i := range d.Styles {
		d.Styles[i] = d.Styles[i].Normalized()
	}
}

// ParseDocument loads a styles file from disk, validates it, and returns the
// resulting model.
func ParseDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, texerrors.NewParseError(path, 0, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, texerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// LoadOrInit parses the document at path, or returns a fresh empty document
// when the file does not exist yet.
func LoadOrInit(path string) (*Document, error) {
	doc, err := ParseDocument(path)
	if err == nil {
		return doc, nil
	}

	var parseErr *texerrors.ParseError
	if errors.As(err, &parseErr) && os.IsNotExist(parseErr.Unwrap()) {
		return NewDocument(), nil
	}
	return nil, err
}

// SaveDocument marshals the document and writes it atomically: the payload
// lands in a temp file in the target directory, then renames over path.
func SaveDocument(path string, doc *Document) error {
	if doc == nil {
		return texerrors.NewStoreError(path, fmt.Errorf("document is nil"))
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return texerrors.NewStoreError(path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return texerrors.NewStoreError(path, err)
	}

	tmp, err := os.CreateTemp(dir, ".styles-*.yaml")
	if err != nil {
		return texerrors.NewStoreError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return texerrors.NewStoreError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return texerrors.NewStoreError(path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return texerrors.NewStoreError(path, err)
	}

	return nil
}

// MarshalDocument renders the document to its on-disk YAML form without
// touching the filesystem. The normalize command diffs against this.
func MarshalDocument(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, texerrors.NewStoreError("", err)
	}
	return data, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
