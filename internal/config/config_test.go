package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	texerrors "github.com/texhue/texhue/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "tex-dark", cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Document)
}

func TestLoadAppliesDefaultsToUnsetFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: nord\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: solarized-disco\n"), 0o644))

	_, err := Load(path)
	var validationErr *texerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "theme", validationErr.Field)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [\n"), 0o644))

	_, err := Load(path)
	var parseErr *texerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestValidatePaletteRepo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		repo  string
		valid bool
	}{
		{name: "https url", repo: "https://github.com/texhue/palettes.git", valid: true},
		{name: "ssh url", repo: "git@github.com:texhue/palettes.git", valid: true},
		{name: "absolute path", repo: "/srv/git/palettes", valid: true},
		{name: "relative path", repo: "./palettes", valid: true},
		{name: "empty is allowed", repo: "", valid: true},
		{name: "bare word", repo: "palettes", valid: false},
		{name: "traversal", repo: "/srv/../etc", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.PaletteRepo = tc.repo
			err := Validate(&cfg)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LogLevel = "chatty"
	require.Error(t, Validate(&cfg))

	cfg.LogLevel = "debug"
	require.NoError(t, Validate(&cfg))
}

func TestDirHonorsOverride(t *testing.T) {
	t.Setenv("TEXHUE_CONFIG_DIR", "/tmp/texhue-test")

	assert.Equal(t, "/tmp/texhue-test", Dir())
	assert.Equal(t, filepath.Join("/tmp/texhue-test", "config.yaml"), DefaultPath())
	assert.Equal(t, filepath.Join("/tmp/texhue-test", "packs"), PacksDir())
}
