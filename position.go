package toml

import (
	"fmt"
)

// Position describes a location in TOML input.
type Position struct {
	Offset uint64 // 0-based, in characters from beginning of input
	Line   int    // 1-based
	Column int    // 1-based, in characters
}

// IsValid reports whether the position was captured from a scan point.
// The zero Position is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Cursor exposes the scan state of a lexer. All counters are 0-based.
type Cursor interface {
	CharPos() uint64
	Line() int
	Column() int
}

// Capture copies the current scan state of c into a Position. It must be
// called before c advances past the point being reported.
func Capture(c Cursor) Position {
	return Position{
		Offset: c.CharPos(),
		Line:   c.Line() + 1,
		Column: c.Column() + 1,
	}
}
