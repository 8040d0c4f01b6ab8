package toml

import (
	"fmt"
	"io"

	"github.com/kezhuw/tomlpos/internal/types"
)

// LocalDatetime is a TOML date-time without offset.
type LocalDatetime = types.LocalDatetime

// LocalDate is a TOML date without time and offset.
type LocalDate = types.LocalDate

// LocalTime is a TOML time of day without date and offset.
type LocalTime = types.LocalTime

// Parse parses TOML data into Go values.
//
// TOML values are represented as:
//
//	bool, for TOML Boolean
//	int64, for TOML Integer
//	float64, for TOML Float
//	string, for TOML String
//	time.Time, for TOML Offset Date-Time
//	LocalDatetime, LocalDate and LocalTime, for TOML local date and time
//	[]interface{}, for TOML Array
//	map[string]interface{}, for TOML Table
//
// Parsing stops at the first failure, which is returned as *ParseError.
func Parse(data []byte) (map[string]interface{}, error) {
	t, err := parse(data)
	if err != nil {
		return nil, err
	}
	return t.Interface(), nil
}

// ParseReader reads r until EOF and parses what it read. Read failures are
// not *ParseError.
func ParseReader(r io.Reader) (map[string]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("toml: read input: %w", err)
	}
	return Parse(data)
}

// Valid checks data is a valid TOML document.
func Valid(data []byte) error {
	_, err := parse(data)
	return err
}
