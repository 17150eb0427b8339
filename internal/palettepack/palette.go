package palettepack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/texhue/texhue/internal/hexcolor"
	texerrors "github.com/texhue/texhue/pkg/errors"
)

// Palette is one named list of colors shipped by a pack. Packs store
// palettes as YAML files under a palettes/ directory.
type Palette struct {
	Name   string   `yaml:"name"`
	Colors []string `yaml:"colors"`
}

const palettesSubdir = "palettes"

// ListPalettes returns the palette names available in a pack checkout,
// sorted. Names are the YAML file names without extension.
func (s *Syncer) ListPalettes(pack string) ([]string, error) {
	dir := filepath.Join(s.dir, pack, palettesSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, texerrors.NewSyncError(pack, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// LoadPalette reads one palette from a pack checkout. Colors are returned
// in canonical #RRGGBBAA form.
func (s *Syncer) LoadPalette(pack, name string) (Palette, error) {
	dir := filepath.Join(s.dir, pack, palettesSubdir)
	path := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		path = filepath.Join(dir, name+".yml")
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Palette{}, texerrors.NewParseError(path, 0, err)
	}

	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, texerrors.NewParseError(path, 0, err)
	}

	if len(p.Colors) == 0 {
		return Palette{}, texerrors.NewValidationError("colors", "palette has no colors", nil)
	}
	for i, c := range p.Colors {
		if !hexcolor.ValidShorthand(c) {
			field := fmt.Sprintf("colors[%d]", i)
			return Palette{}, texerrors.NewValidationError(field, fmt.Sprintf("%q is not a hex color", c), nil)
		}
		p.Colors[i] = hexcolor.Normalize(c)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
