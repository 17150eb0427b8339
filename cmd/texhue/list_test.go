package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/texhue/texhue/internal/style"
)

func TestListCommandTableOutput(t *testing.T) {
	docPath := setupConfigDir(t)
	seedDocument(t, docPath, []style.Record{
		{Expression: "e^{i\\pi}", Color: "#2F7788CC", Occurrences: "1,3-5"},
		{Expression: "\\frac{a}{b}", Color: "#AA11BBFF"},
	})

	output, err := executeCommand("--document", docPath, "list")
	require.NoError(t, err)
	require.Contains(t, output, "#  EXPRESSION")
	require.Contains(t, output, "e^{i\\pi}")
	require.Contains(t, output, "#2F7788CC")
	require.Contains(t, output, "1,3-5")
	// An absent selector reads as "all".
	require.Contains(t, output, "all")
}

func TestListCommandJSONOutput(t *testing.T) {
	docPath := setupConfigDir(t)
	seedDocument(t, docPath, []style.Record{
		{Expression: "e^{i\\pi}", Color: "#2F7788CC", Occurrences: "2"},
	})

	output, err := executeCommand("--document", docPath, "list", "--json")
	require.NoError(t, err)

	var payload []struct {
		Expression  string `json:"expression"`
		Color       string `json:"color"`
		Occurrences string `json:"occurrences"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &payload))
	require.Len(t, payload, 1)
	require.Equal(t, "e^{i\\pi}", payload[0].Expression)
	require.Equal(t, "#2F7788CC", payload[0].Color)
	require.Equal(t, "2", payload[0].Occurrences)
}

func TestListCommandCSSColors(t *testing.T) {
	docPath := setupConfigDir(t)
	seedDocument(t, docPath, []style.Record{
		{Expression: "x^2", Color: "#2F7788CC"},
	})

	output, err := executeCommand("--document", docPath, "list", "--css")
	require.NoError(t, err)
	require.Contains(t, output, "rgba(47, 119, 136, 0.8)")
}

func TestListCommandEmptyDocument(t *testing.T) {
	docPath := setupConfigDir(t)

	output, err := executeCommand("--document", docPath, "list")
	require.NoError(t, err)
	require.Contains(t, output, "No styles defined.")
}

func TestListCommandRejectsUnknownTheme(t *testing.T) {
	docPath := setupConfigDir(t)

	_, err := executeCommand("--document", docPath, "--theme", "no-such-theme", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no-such-theme")
	require.Contains(t, err.Error(), "tex-dark")
}
