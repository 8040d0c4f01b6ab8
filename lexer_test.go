package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerCursor(t *testing.T) {
	l := newLexer("aé\nb\r\nc")
	require.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, Capture(l))

	l.skipN(2)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, Capture(l))
	assert.Equal(t, 3, l.pos)

	l.next()
	assert.Equal(t, Position{Offset: 3, Line: 2, Column: 1}, Capture(l))

	l.skipN(3)
	assert.Equal(t, Position{Offset: 6, Line: 3, Column: 1}, Capture(l))

	l.next()
	assert.Equal(t, rune(eof), l.next())
	assert.Equal(t, Position{Offset: 7, Line: 3, Column: 2}, Capture(l))
}

func TestTokenPositions(t *testing.T) {
	l := newLexer("key = \"v\" # comment\n[[ tables ]]")
	want := []struct {
		kind tokenKind
		pos  Position
		key  bool
	}{
		{tokenBareKey, Position{0, 1, 1}, true},
		{tokenEquals, Position{4, 1, 5}, true},
		{tokenString, Position{6, 1, 7}, false},
		{tokenNewline, Position{19, 1, 20}, true},
		{tokenDoubleLeftBracket, Position{20, 2, 1}, true},
		{tokenBareKey, Position{23, 2, 4}, true},
		{tokenDoubleRightBracket, Position{30, 2, 11}, true},
		{tokenEOF, Position{32, 2, 13}, true},
	}
	for i, w := range want {
		var (
			tok token
			err error
		)
		if w.key {
			tok, err = l.nextKey()
		} else {
			tok, err = l.nextValue()
		}
		require.NoError(t, err, "#%d", i)
		assert.Equal(t, w.kind, tok.kind, "#%d", i)
		assert.Equal(t, w.pos, tok.pos, "#%d", i)
	}
}

func TestValueTokens(t *testing.T) {
	tests := []struct {
		in   string
		kind tokenKind
		raw  string
	}{
		{"true", tokenBoolean, "true"},
		{"inf", tokenNumber, "inf"},
		{"-nan", tokenNumber, "-nan"},
		{"+1_000,", tokenNumber, "+1_000"},
		{"0xDEAD_beef]", tokenNumber, "0xDEAD_beef"},
		{"6.626e-34", tokenNumber, "6.626e-34"},
		{"1979-05-27", tokenDatetime, "1979-05-27"},
		{"1979-05-27 07:32:00Z", tokenDatetime, "1979-05-27 07:32:00Z"},
		{"1979-05-27 # comment", tokenDatetime, "1979-05-27"},
		{"07:32:00.999", tokenDatetime, "07:32:00.999"},
		{"bare", tokenBareKey, "bare"},
	}
	for i, test := range tests {
		tok, err := newLexer(test.in).nextValue()
		require.NoError(t, err, "#%d", i)
		assert.Equal(t, test.kind, tok.kind, "#%d: %s", i, test.in)
		assert.Equal(t, test.raw, tok.raw, "#%d: %s", i, test.in)
	}
}

func TestStringTokens(t *testing.T) {
	tests := []struct {
		in   string
		text string
	}{
		{`"tab\there"`, "tab\there"},
		{`"\u00e9\U0001F600"`, "é\U0001F600"},
		{`'C:\Users\nodejs'`, `C:\Users\nodejs`},
		{"\"\"\"\nline one\nline two\"\"\"", "line one\nline two"},
		{"\"\"\"The quick brown \\\n    fox.\"\"\"", "The quick brown fox."},
		{`"""quoted "" inside""""`, `quoted "" inside"`},
		{"'''\r\nraw \\n'''", `raw \n`},
		{`''''two quotes'''''`, `'two quotes''`},
	}
	for i, test := range tests {
		tok, err := newLexer(test.in).nextValue()
		require.NoError(t, err, "#%d", i)
		assert.Equal(t, tokenString, tok.kind, "#%d", i)
		assert.Equal(t, test.text, tok.text, "#%d", i)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
		pos Position
	}{
		{`"abc`, "string without ending", Position{4, 1, 5}},
		{"\"ab\ncd\"", "newline is not allowed in oneline string", Position{3, 1, 4}},
		{`"\x"`, `invalid escape sequence \x`, Position{1, 1, 2}},
		{`"\u00g0"`, "expect hexadecimal digit, got 'g'", Position{5, 1, 6}},
		{`"\uD800"`, "D800 is not a valid utf8 rune", Position{1, 1, 2}},
		{"\"a\x01\"", "control character U+0001 is not allowed in string", Position{2, 1, 3}},
		{"@", "unexpected character '@'", Position{0, 1, 1}},
		{"a\rb", "carriage return must be followed by new line", Position{1, 1, 2}},
		{"'''never closed", "no ending for multi-line literal string", Position{15, 1, 16}},
	}
	for i, test := range tests {
		l := newLexer(test.in)
		var err error
		for err == nil {
			var tok token
			tok, err = l.nextValue()
			if tok.kind == tokenEOF && err == nil {
				t.Fatalf("#%d: no error scanning %q", i, test.in)
			}
		}
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "#%d", i)
		assert.Equal(t, GenericError, perr.Kind, "#%d", i)
		assert.Equal(t, test.msg, perr.OriginalMessage(), "#%d", i)
		assert.Equal(t, test.pos, perr.Pos, "#%d", i)
	}
}

func TestCheckUTF8(t *testing.T) {
	l := newLexer("a = \"é\xff\"")
	err := l.checkUTF8()
	require.Error(t, err)
	assert.Equal(t, "invalid utf8 byte 0xff\n at line 1, column 7", err.Error())
	assert.NoError(t, newLexer("a = \"é\"").checkUTF8())
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  token
		want string
	}{
		{token{kind: tokenEOF}, "EOF"},
		{token{kind: tokenNewline, raw: "\n"}, "new line"},
		{token{kind: tokenRightBracket, raw: "]"}, "']'"},
		{token{kind: tokenBareKey, raw: "name"}, "key name"},
		{token{kind: tokenNumber, raw: "12"}, "number 12"},
		{token{kind: tokenString, raw: `"a"`, text: "a"}, `string "a"`},
		{token{kind: tokenString, text: "abcdefghijklmnopqrstuvwxyz"}, `string "abcdefghijklmnopqrstuvwx..."`},
	}
	for i, test := range tests {
		assert.Equal(t, test.want, test.tok.String(), "#%d", i)
	}
}
