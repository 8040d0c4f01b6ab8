package toml

import (
	"fmt"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNewline
	tokenEquals
	tokenDot
	tokenComma
	tokenLeftBracket
	tokenRightBracket
	tokenDoubleLeftBracket
	tokenDoubleRightBracket
	tokenLeftBrace
	tokenRightBrace
	tokenBareKey
	tokenString
	tokenBoolean
	tokenNumber
	tokenDatetime
)

var tokenNames = [...]string{
	tokenEOF:                "EOF",
	tokenNewline:            "new line",
	tokenEquals:             "'='",
	tokenDot:                "'.'",
	tokenComma:              "','",
	tokenLeftBracket:        "'['",
	tokenRightBracket:       "']'",
	tokenDoubleLeftBracket:  "'[['",
	tokenDoubleRightBracket: "']]'",
	tokenLeftBrace:          "'{'",
	tokenRightBrace:         "'}'",
	tokenBareKey:            "key",
	tokenString:             "string",
	tokenBoolean:            "boolean",
	tokenNumber:             "number",
	tokenDatetime:           "date-time",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	pos  Position // of first character
	raw  string   // source text

	text      string // decoded content of keys and strings
	multiline bool
}

const maxTokenQuote = 24

// String describes t for error messages.
func (t token) String() string {
	switch t.kind {
	case tokenBareKey, tokenBoolean, tokenNumber, tokenDatetime:
		return t.kind.String() + " " + truncate(t.raw)
	case tokenString:
		return t.kind.String() + " " + fmt.Sprintf("%q", truncate(t.text))
	default:
		return t.kind.String()
	}
}

func truncate(s string) string {
	n := 0
	for i := range s {
		if n == maxTokenQuote {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

type char rune

func (c char) String() string {
	if c == eof {
		return "EOF"
	}
	return fmt.Sprintf("%q", rune(c))
}
