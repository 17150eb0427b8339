package editor

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texhue/texhue/internal/hexcolor"
	"github.com/texhue/texhue/internal/store"
	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
)

func newEditorForTest(recs ...style.Record) (*store.Store, Model) {
	st := store.NewMemStore(store.State{Styles: recs, Theme: string(theme.Default)})
	return st, NewModel(st, nil)
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	em, ok := next.(Model)
	require.True(t, ok)
	return em, cmd
}

func pressRune(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestAddFromEmptyListCreatesDefaultRecord(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest()
	th := theme.Get(theme.Default)

	m, _ = pressRune(t, m, 'a')

	styles := st.Styles()
	require.Len(t, styles, 1)
	assert.Empty(t, styles[0].Expression)
	assert.Empty(t, styles[0].Occurrences)
	assert.Equal(t, theme.DefaultColor(th, 0), styles[0].Color)
	assert.Equal(t, hexcolor.Normalize(styles[0].Color), styles[0].Color)

	assert.True(t, m.list.Focused(), "a new row opens for editing")
}

func TestTypedExpressionLandsInStore(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest(style.Record{Color: "#112233FF"})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.list.Focused())

	for _, r := range "e^x" {
		m, _ = pressRune(t, m, r)
	}

	assert.Equal(t, "e^x", st.Styles()[0].Expression)
}

func TestEscLeavesEditMode(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest(style.Record{Color: "#112233FF"})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.list.Focused())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.list.Focused())
}

func TestQuitOnCleanState(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest(style.Record{Color: "#112233FF"})

	_, cmd := pressRune(t, m, 'q')
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestQuitWithUnsavedChangesNeedsConfirmation(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest()
	m, _ = pressRune(t, m, 'a')
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := pressRune(t, m, 'q')
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "unsaved changes")

	_, cmd = pressRune(t, m, 'q')
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestOtherKeyResetsQuitConfirmation(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest()
	m, _ = pressRune(t, m, 'a')
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = pressRune(t, m, 'q')
	require.True(t, m.pendingQuit)

	m, _ = pressRune(t, m, 'k')
	assert.False(t, m.pendingQuit)
}

func TestSaveWritesDocumentAndClearsDirty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "styles.yaml")
	st, err := store.NewStore(path, string(theme.Default))
	require.NoError(t, err)
	m := NewModel(st, nil)

	m, _ = pressRune(t, m, 'a')
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, st.Dirty())

	m, _ = pressRune(t, m, 's')

	assert.False(t, st.Dirty())
	assert.Contains(t, m.status, "saved 1 styles")
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestDeleteRemovesSelectedRow(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest(
		style.Record{Expression: "a", Color: "#112233FF"},
		style.Record{Expression: "b", Color: "#223344FF"},
	)

	m, _ = pressRune(t, m, 'j')
	m, _ = pressRune(t, m, 'd')

	styles := st.Styles()
	require.Len(t, styles, 1)
	assert.Equal(t, "a", styles[0].Expression)
}

func TestLintErrorsShownAndClearedLive(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest(style.Record{Expression: "{x", Color: "#112233FF"})

	assert.Contains(t, m.View(), "tex: unbalanced braces")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = pressRune(t, m, '}')

	assert.NotContains(t, m.View(), "unbalanced braces")
}

func TestThemeCycleUpdatesStoreAndDefaults(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest(style.Record{Color: "#112233FF"})
	initial := m.themeName

	m, _ = pressRune(t, m, 't')

	assert.NotEqual(t, initial, m.themeName)
	assert.Equal(t, string(m.themeName), st.Theme())
}

func TestPaletteOverrideSeedsDefaultColors(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest()
	m = m.WithPalette([]string{"#CBA6F7FF", "#F38BA8FF"})

	m, _ = pressRune(t, m, 'a')
	require.Len(t, st.Styles(), 1)
	assert.Equal(t, "#CBA6F7FF", st.Styles()[0].Color)
}

func TestPaletteOverrideSurvivesThemeCycle(t *testing.T) {
	t.Parallel()

	st, m := newEditorForTest()
	m = m.WithPalette([]string{"#CBA6F7FF"})

	m, _ = pressRune(t, m, 't')
	m, _ = pressRune(t, m, 'a')

	require.Len(t, st.Styles(), 1)
	assert.Equal(t, "#CBA6F7FF", st.Styles()[0].Color)
}

func TestYankWithEmptyListReportsNothingToCopy(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest()

	m, _ = pressRune(t, m, 'y')

	assert.Contains(t, m.status, "nothing to copy")
}

func TestHelpOverlayTogglesOnAnyKey(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest(style.Record{Color: "#112233FF"})

	m, _ = pressRune(t, m, '?')
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "keys")

	m, _ = pressRune(t, m, 'x')
	assert.False(t, m.showHelp)
}

func TestWindowResizePropagatesToList(t *testing.T) {
	t.Parallel()

	_, m := newEditorForTest(style.Record{Color: "#112233FF"})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	assert.Equal(t, 120, m.width)
	assert.NotEmpty(t, m.View())
}
