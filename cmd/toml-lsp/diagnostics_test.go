package main

import (
	"testing"

	"github.com/kezhuw/tomlpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnoseValid(t *testing.T) {
	diags := diagnose("[a]\nb = 1\n")
	require.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDiagnoseError(t *testing.T) {
	diags := diagnose("[a]\nb = \n")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Unexpected token: Got new line, expected value", d.Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, d.Range.Start)
	assert.Equal(t, d.Range.Start, d.Range.End)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, lsName, *d.Source)
}

func TestLSPPosition(t *testing.T) {
	text := "s = \"\U0001F600\" x"
	// The emoji is one character but two UTF-16 code units.
	pos := toml.Position{Offset: 8, Line: 1, Column: 9}
	assert.Equal(t, protocol.Position{Line: 0, Character: 9}, lspPosition(text, pos))

	pos = toml.Position{Offset: 20, Line: 1, Column: 12}
	assert.Equal(t, protocol.Position{Line: 0, Character: 12}, lspPosition(text, pos))
}

func TestDocumentStore(t *testing.T) {
	s := newDocumentStore()
	assert.False(t, s.change("file:///a.toml", nil))

	s.open("file:///a.toml", "a = 1\n")
	require.True(t, s.change("file:///a.toml", []any{
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 4},
				End:   protocol.Position{Line: 0, Character: 5},
			},
			Text: "42",
		},
	}))
	text, ok := s.get("file:///a.toml")
	require.True(t, ok)
	assert.Equal(t, "a = 42\n", text)

	require.True(t, s.change("file:///a.toml", []any{
		protocol.TextDocumentContentChangeEventWhole{Text: "b = 2\n"},
	}))
	text, _ = s.get("file:///a.toml")
	assert.Equal(t, "b = 2\n", text)

	s.close("file:///a.toml")
	_, ok = s.get("file:///a.toml")
	assert.False(t, ok)
}
