// Package report prints TOML parse failures for humans and tools.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kezhuw/tomlpos"
	"golang.org/x/term"
)

// Format selects how failures are printed.
type Format int

const (
	// Auto is Pretty on terminals and Short otherwise.
	Auto Format = iota
	// Short prints "file:line:column: message".
	Short
	// Pretty prints Short followed by the offending source line and a caret
	// under the failing column.
	Pretty
)

var formatNames = map[string]Format{
	"auto":   Auto,
	"short":  Short,
	"pretty": Pretty,
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return Auto, fmt.Errorf("unknown format %q, want auto, short or pretty", s)
	}
	return f, nil
}

// Printer writes parse failures.
type Printer struct {
	Format Format
	// Width truncates source lines of Pretty output. Zero means no limit.
	Width int
}

// ForTerminal returns a Printer for format f writing to file descriptor fd.
// Auto is resolved here, and Width is taken from the terminal size.
func ForTerminal(f Format, fd int) *Printer {
	p := &Printer{Format: f}
	if !term.IsTerminal(fd) {
		if p.Format == Auto {
			p.Format = Short
		}
		return p
	}
	if p.Format == Auto {
		p.Format = Pretty
	}
	if width, _, err := term.GetSize(fd); err == nil {
		p.Width = width
	}
	return p
}

// Print writes err, returned from parsing src read from filename, to w.
func (p *Printer) Print(w io.Writer, filename string, src []byte, err error) error {
	var perr *toml.ParseError
	if !errors.As(err, &perr) {
		_, werr := fmt.Fprintf(w, "%s: %s\n", filename, err)
		return werr
	}
	pos, ok := perr.Position()
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %s\n", filename, message(perr))
		return werr
	}
	if _, werr := fmt.Fprintf(w, "%s:%d:%d: %s\n", filename, pos.Line, pos.Column, message(perr)); werr != nil {
		return werr
	}
	if p.Format != Pretty {
		return nil
	}
	line, caret := excerpt(src, pos, p.Width)
	_, werr := fmt.Fprintf(w, "%s\n%s^\n", line, caret)
	return werr
}

func message(e *toml.ParseError) string {
	if msg := e.OriginalMessage(); msg != "" {
		return msg
	}
	return "N/A"
}

// excerpt returns line pos.Line of src and the indentation which puts a
// caret under pos.Column. Tabs in the line are kept in the indentation.
func excerpt(src []byte, pos toml.Position, width int) (line string, indent string) {
	lines := strings.Split(string(src), "\n")
	if pos.Line > len(lines) {
		return "", ""
	}
	line = strings.TrimSuffix(lines[pos.Line-1], "\r")

	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= pos.Column {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	indent = b.String()

	if width > 0 && utf8.RuneCountInString(line) > width {
		line = truncate(line, width)
		if len(indent) >= width {
			indent = indent[:width-1]
		}
	}
	return line, indent
}

func truncate(s string, n int) string {
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}
