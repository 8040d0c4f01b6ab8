package toml_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/kezhuw/tomlpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cursor struct {
	offset       uint64
	line, column int
}

func (c cursor) CharPos() uint64 { return c.offset }
func (c cursor) Line() int       { return c.line }
func (c cursor) Column() int     { return c.column }

func TestCapture(t *testing.T) {
	pos := toml.Capture(cursor{offset: 0, line: 0, column: 0})
	require.Equal(t, toml.Position{Offset: 0, Line: 1, Column: 1}, pos)
	require.True(t, pos.IsValid())

	a := toml.Capture(cursor{offset: 41, line: 2, column: 4})
	b := toml.Capture(cursor{offset: 41, line: 2, column: 4})
	c := toml.Capture(cursor{offset: 41, line: 2, column: 5})
	assert.Equal(t, toml.Position{Offset: 41, Line: 3, Column: 5}, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	assert.False(t, toml.Position{}.IsValid())
}

func TestUnexpectedToken(t *testing.T) {
	pos := toml.Position{Offset: 42, Line: 3, Column: 5}
	err := toml.UnexpectedToken(pos, "EOF", "']'")

	const want = "Unexpected token: Got EOF, expected ']'\n at line 3, column 5"
	require.Equal(t, want, err.Error())
	require.Equal(t, want, err.Error())
	require.Equal(t, want, toml.Render(err))

	assert.Equal(t, toml.UnexpectedTokenError, err.Kind)
	assert.Equal(t, "Unexpected token: Got EOF, expected ']'", err.OriginalMessage())
	assert.Equal(t, "EOF", err.Actual)
	assert.Equal(t, "']'", err.Expected)
	assert.Nil(t, err.Unwrap())

	got, ok := err.Position()
	require.True(t, ok)
	assert.Equal(t, pos, got)
}

func TestGeneric(t *testing.T) {
	tests := []struct {
		pos  toml.Position
		msg  string
		want string
	}{
		{toml.Position{Offset: 0, Line: 1, Column: 1}, "table a was defined twice", "table a was defined twice\n at line 1, column 1"},
		{toml.Position{}, "table a was defined twice", "table a was defined twice"},
		{toml.Position{Offset: 7, Line: 2, Column: 3}, "", "N/A\n at line 2, column 3"},
		{toml.Position{}, "", "N/A"},
	}
	for i, test := range tests {
		err := toml.Generic(test.pos, test.msg)
		assert.Equal(t, test.want, err.Error(), "#%d", i)
		assert.Equal(t, test.msg, err.OriginalMessage(), "#%d", i)
		assert.Equal(t, toml.GenericError, err.Kind, "#%d", i)
		assert.Equal(t, test.pos.IsValid(), strings.Contains(err.Error(), " at "), "#%d", i)
		assert.Nil(t, err.Unwrap(), "#%d", i)
	}
}

func TestOutOfBounds(t *testing.T) {
	for _, text := range []string{"9223372036854775808", "-99999999999999999999", "1e999"} {
		_, cause := strconv.ParseInt(text, 10, 64)
		require.Error(t, cause)

		err := toml.OutOfBounds(toml.Position{Offset: 4, Line: 1, Column: 5}, cause)
		assert.Equal(t, "Number out of bounds", err.OriginalMessage())
		assert.Equal(t, "Number out of bounds\n at line 1, column 5", err.Error())
		assert.Equal(t, toml.NumberRangeError, err.Kind)
		assert.Same(t, cause, err.Unwrap())
	}
}

func TestRenderNil(t *testing.T) {
	assert.Equal(t, "N/A", toml.Render(nil))
}

func TestParseErrorAs(t *testing.T) {
	_, cause := strconv.ParseInt("99999999999999999999", 10, 64)
	var err error = toml.OutOfBounds(toml.Position{Offset: 0, Line: 1, Column: 1}, cause)

	var perr *toml.ParseError
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, strconv.ErrRange))

	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "99999999999999999999", numErr.Num)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "generic", toml.GenericError.String())
	assert.Equal(t, "unexpected token", toml.UnexpectedTokenError.String())
	assert.Equal(t, "number range", toml.NumberRangeError.String())
}
