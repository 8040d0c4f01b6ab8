package main

import (
	"errors"
	"strings"

	"github.com/kezhuw/tomlpos"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// diagnose parses text and returns its diagnostics. Valid documents have
// none; invalid ones have a single diagnostic at the first error.
func diagnose(text string) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}

	err := toml.Valid([]byte(text))
	if err == nil {
		return diags
	}

	var (
		rng protocol.Range
		msg = err.Error()
	)

	var perr *toml.ParseError
	if errors.As(err, &perr) {
		msg = perr.OriginalMessage()
		if pos, ok := perr.Position(); ok {
			p := lspPosition(text, pos)
			rng = protocol.Range{Start: p, End: p}
		}
	}

	return append(diags, protocol.Diagnostic{
		Range:    rng,
		Severity: ptr(protocol.DiagnosticSeverityError),
		Source:   ptr(lsName),
		Message:  msg,
	})
}

// lspPosition converts pos to a 0-based line and a character offset in
// UTF-16 code units.
func lspPosition(text string, pos toml.Position) protocol.Position {
	line := ""
	if lines := strings.Split(text, "\n"); pos.Line <= len(lines) {
		line = lines[pos.Line-1]
	}

	var character protocol.UInteger
	col := 1
	for _, r := range line {
		if col >= pos.Column {
			break
		}
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
		col++
	}
	// Positions past the end of line, like EOF, are kept as is.
	if col < pos.Column {
		character += protocol.UInteger(pos.Column - col)
	}

	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: character,
	}
}

func ptr[T any](v T) *T {
	return &v
}
