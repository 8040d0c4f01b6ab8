package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	eof = -1
)

// lexer scans TOML input into tokens. The parser picks the mode of each
// scan, since the same text lexes differently as a key and as a value.
type lexer struct {
	input string
	pos   int // byte index of next rune

	charPos uint64
	line    int
	col     int
}

var _ Cursor = (*lexer)(nil)

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) CharPos() uint64 { return l.charPos }
func (l *lexer) Line() int       { return l.line }
func (l *lexer) Column() int     { return l.col }

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peekByte returns the byte i bytes after the cursor, or 0 past end.
func (l *lexer) peekByte(i int) byte {
	if l.pos+i >= len(l.input) {
		return 0
	}
	return l.input[l.pos+i]
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	l.charPos++
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// skipN advances over n runes.
func (l *lexer) skipN(n int) {
	for i := 0; i < n; i++ {
		l.next()
	}
}

func (l *lexer) errorf(pos Position, format string, args ...interface{}) *ParseError {
	return Generic(pos, fmt.Sprintf(format, args...))
}

// checkUTF8 reports the first invalid UTF-8 byte of input.
func (l *lexer) checkUTF8() error {
	if utf8.ValidString(l.input) {
		return nil
	}
	scan := newLexer(l.input)
	for scan.pos < len(scan.input) {
		r, n := utf8.DecodeRuneInString(scan.input[scan.pos:])
		if r == utf8.RuneError && n == 1 {
			return scan.errorf(Capture(scan), "invalid utf8 byte %#.2x", scan.input[scan.pos])
		}
		scan.next()
	}
	return nil
}

func isControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}

// skipBlank skips spaces, tabs and comments. It stops before new lines.
func (l *lexer) skipBlank() error {
	for {
		switch r := l.peek(); {
		case isSpace(r):
			l.next()
		case r == '#':
			return l.skipComment()
		default:
			return nil
		}
	}
}

func (l *lexer) skipComment() error {
	for {
		pos := Capture(l)
		switch r := l.peek(); {
		case r == eof || r == '\n':
			return nil
		case r == '\r' && l.peekByte(1) == '\n':
			return nil
		case isControl(r):
			return l.errorf(pos, "control character %U is not allowed in comment", r)
		default:
			l.next()
		}
	}
}

func (l *lexer) emit(kind tokenKind, pos Position, start int) token {
	return token{kind: kind, pos: pos, raw: l.input[start:l.pos]}
}

// scanCommon scans tokens shared by key and value mode. ok is false if
// the next rune starts no such token.
func (l *lexer) scanCommon(pos Position) (t token, ok bool, err error) {
	start := l.pos
	switch r := l.peek(); r {
	case eof:
		return token{kind: tokenEOF, pos: pos}, true, nil
	case '\n':
		l.next()
		return l.emit(tokenNewline, pos, start), true, nil
	case '\r':
		if l.peekByte(1) != '\n' {
			return token{}, false, l.errorf(pos, "carriage return must be followed by new line")
		}
		l.skipN(2)
		return l.emit(tokenNewline, pos, start), true, nil
	case '=':
		l.next()
		return l.emit(tokenEquals, pos, start), true, nil
	case '.':
		l.next()
		return l.emit(tokenDot, pos, start), true, nil
	case ',':
		l.next()
		return l.emit(tokenComma, pos, start), true, nil
	case '{':
		l.next()
		return l.emit(tokenLeftBrace, pos, start), true, nil
	case '}':
		l.next()
		return l.emit(tokenRightBrace, pos, start), true, nil
	case '"', '\'':
		t, err := l.scanString(pos)
		return t, true, err
	}
	return token{}, false, nil
}

// nextKey scans a token where a key, a table header or a table
// punctuation may appear.
func (l *lexer) nextKey() (token, error) {
	if err := l.skipBlank(); err != nil {
		return token{}, err
	}
	pos := Capture(l)
	t, ok, err := l.scanCommon(pos)
	if ok || err != nil {
		return t, err
	}
	start := l.pos
	switch r := l.peek(); {
	case r == '[':
		if l.peekByte(1) == '[' {
			l.skipN(2)
			return l.emit(tokenDoubleLeftBracket, pos, start), nil
		}
		l.next()
		return l.emit(tokenLeftBracket, pos, start), nil
	case r == ']':
		if l.peekByte(1) == ']' {
			l.skipN(2)
			return l.emit(tokenDoubleRightBracket, pos, start), nil
		}
		l.next()
		return l.emit(tokenRightBracket, pos, start), nil
	case isBareKeyChar(r):
		t := l.scanBare(pos)
		t.text = t.raw
		return t, nil
	default:
		return token{}, l.errorf(pos, "unexpected character %s", char(r))
	}
}

// nextValue scans a token where a value or an array punctuation may
// appear.
func (l *lexer) nextValue() (token, error) {
	if err := l.skipBlank(); err != nil {
		return token{}, err
	}
	pos := Capture(l)
	t, ok, err := l.scanCommon(pos)
	if ok || err != nil {
		return t, err
	}
	start := l.pos
	switch r := l.peek(); {
	case r == '[':
		l.next()
		return l.emit(tokenLeftBracket, pos, start), nil
	case r == ']':
		l.next()
		return l.emit(tokenRightBracket, pos, start), nil
	case isDigit(r) || r == '+' || r == '-':
		return l.scanNumberOrDate(pos), nil
	case isBareKeyChar(r):
		t := l.scanBare(pos)
		switch t.raw {
		case "true", "false":
			t.kind = tokenBoolean
		case "inf", "nan":
			t.kind = tokenNumber
		default:
			t.text = t.raw
		}
		return t, nil
	default:
		return token{}, l.errorf(pos, "unexpected character %s", char(r))
	}
}

func (l *lexer) scanBare(pos Position) token {
	start := l.pos
	for isBareKeyChar(l.peek()) {
		l.next()
	}
	return l.emit(tokenBareKey, pos, start)
}

func isNumberOrDateChar(r rune) bool {
	return isBareKeyChar(r) || r == '.' || r == '+' || r == ':'
}

func isLocalDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i != 4 && i != 7 && !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

func (l *lexer) scanNumberOrDate(pos Position) token {
	start := l.pos
	for isNumberOrDateChar(l.peek()) {
		l.next()
		// Date and time may be delimited by a space.
		if l.peekByte(0) == ' ' && isDigit(rune(l.peekByte(1))) && isLocalDate(l.input[start:l.pos]) {
			l.next()
		}
	}
	t := l.emit(tokenNumber, pos, start)
	if looksLikeDatetime(t.raw) {
		t.kind = tokenDatetime
	}
	return t
}

func looksLikeDatetime(s string) bool {
	if len(s) >= 3 && isDigit(rune(s[0])) && isDigit(rune(s[1])) && s[2] == ':' {
		return true
	}
	if len(s) < 5 || s[4] != '-' {
		return false
	}
	for i := 0; i < 4; i++ {
		if !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

func (l *lexer) scanString(pos Position) (token, error) {
	start := l.pos
	var (
		s   string
		err error
		ml  bool
	)
	switch {
	case l.hasPrefix(`"""`):
		l.skipN(3)
		ml = true
		s, err = l.scanMultiLineString()
	case l.hasPrefix(`'''`):
		l.skipN(3)
		ml = true
		s, err = l.scanMultiLineLiteral()
	case l.peek() == '"':
		l.next()
		s, err = l.scanBasicString()
	default:
		l.next()
		s, err = l.scanLiteral()
	}
	if err != nil {
		return token{}, err
	}
	t := l.emit(tokenString, pos, start)
	t.text = s
	t.multiline = ml
	return t, nil
}

func (l *lexer) scanBasicString() (string, error) {
	var b strings.Builder
	for {
		pos := Capture(l)
		switch r := l.next(); {
		case r == '"':
			return b.String(), nil
		case r == '\\':
			if err := l.scanEscape(&b, pos, false); err != nil {
				return "", err
			}
		case r == '\r' || r == '\n':
			return "", l.errorf(pos, "newline is not allowed in oneline string")
		case r == eof:
			return "", l.errorf(pos, "string without ending")
		case isControl(r):
			return "", l.errorf(pos, "control character %U is not allowed in string", r)
		default:
			b.WriteRune(r)
		}
	}
}

func (l *lexer) trimLeadingNewline() {
	if l.peek() == '\n' {
		l.next()
	} else if l.hasPrefix("\r\n") {
		l.skipN(2)
	}
}

// closeQuotes consumes a closing delimiter of three quote characters plus
// at most two quotes belonging to the content, which are returned.
func (l *lexer) closeQuotes(q byte) string {
	n := 3
	for n < 5 && l.peekByte(n) == q {
		n++
	}
	l.skipN(n)
	return strings.Repeat(string(q), n-3)
}

func (l *lexer) scanMultiLineString() (string, error) {
	var b strings.Builder
	l.trimLeadingNewline()
	for {
		if l.hasPrefix(`"""`) {
			b.WriteString(l.closeQuotes('"'))
			return b.String(), nil
		}
		pos := Capture(l)
		switch r := l.next(); {
		case r == '\\':
			if err := l.scanEscape(&b, pos, true); err != nil {
				return "", err
			}
		case r == '\n':
			b.WriteByte('\n')
		case r == '\r' && l.peek() == '\n':
			l.next()
			b.WriteByte('\n')
		case r == eof:
			return "", l.errorf(pos, "multi-line basic string without ending")
		case isControl(r):
			return "", l.errorf(pos, "control character %U is not allowed in string", r)
		default:
			b.WriteRune(r)
		}
	}
}

func (l *lexer) scanLiteral() (string, error) {
	start := l.pos
	for {
		pos := Capture(l)
		switch r := l.next(); {
		case r == '\'':
			return l.input[start : l.pos-1], nil
		case r == '\r' || r == '\n':
			return "", l.errorf(pos, "newline is not allowed in oneline string")
		case r == eof:
			return "", l.errorf(pos, "string without ending")
		case isControl(r):
			return "", l.errorf(pos, "control character %U is not allowed in string", r)
		}
	}
}

func (l *lexer) scanMultiLineLiteral() (string, error) {
	var b strings.Builder
	l.trimLeadingNewline()
	for {
		if l.hasPrefix(`'''`) {
			b.WriteString(l.closeQuotes('\''))
			return b.String(), nil
		}
		pos := Capture(l)
		switch r := l.next(); {
		case r == '\n':
			b.WriteByte('\n')
		case r == '\r' && l.peek() == '\n':
			l.next()
			b.WriteByte('\n')
		case r == eof:
			return "", l.errorf(pos, "no ending for multi-line literal string")
		case isControl(r):
			return "", l.errorf(pos, "control character %U is not allowed in string", r)
		default:
			b.WriteRune(r)
		}
	}
}

// skipLineEndingBackslash skips whitespace after a backslash ending a line
// in multi-line basic string. ok is false if the backslash ends no line.
func (l *lexer) skipLineEndingBackslash() (ok bool) {
	i := 0
	for isSpace(rune(l.peekByte(i))) {
		i++
	}
	switch {
	case l.peekByte(i) == '\n':
	case l.peekByte(i) == '\r' && l.peekByte(i+1) == '\n':
	default:
		return false
	}
	for {
		switch r := l.peek(); {
		case isSpace(r) || r == '\n':
			l.next()
		case r == '\r' && l.peekByte(1) == '\n':
			l.skipN(2)
		default:
			return true
		}
	}
}

func (l *lexer) scanEscape(b *strings.Builder, pos Position, multiline bool) error {
	if multiline && l.skipLineEndingBackslash() {
		return nil
	}
	r := l.next()
	switch r {
	case 'b':
		b.WriteByte('\b')
	case 't':
		b.WriteByte('\t')
	case 'n':
		b.WriteByte('\n')
	case 'f':
		b.WriteByte('\f')
	case 'r':
		b.WriteByte('\r')
	case '"':
		b.WriteByte('"')
	case '\\':
		b.WriteByte('\\')
	case 'u':
		return l.scanUnicodeRune(b, pos, 4)
	case 'U':
		return l.scanUnicodeRune(b, pos, 8)
	default:
		return l.errorf(pos, "invalid escape sequence \\%s", strings.Trim(char(r).String(), "'"))
	}
	return nil
}

func (l *lexer) scanUnicodeRune(b *strings.Builder, pos Position, n int) error {
	start := l.pos
	for i := 0; i < n; i++ {
		if r := l.peek(); !isHex(r) {
			return l.errorf(Capture(l), "expect hexadecimal digit, got %s", char(r))
		}
		l.next()
	}
	s := l.input[start:l.pos]
	codepoint, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return l.errorf(pos, "%s is not a valid utf8 rune", s)
	}
	r := rune(codepoint)
	if !utf8.ValidRune(r) {
		return l.errorf(pos, "%s is not a valid utf8 rune", s)
	}
	b.WriteRune(r)
	return nil
}
