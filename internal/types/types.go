package types

import (
	"fmt"
	"time"
)

type Value interface {
	Type() string
	TOMLValue()
}

type Array struct {
	// Static arrays are written as values. Arrays of tables are built
	// by [[headers]] and stay open for appending.
	Static bool
	Elems  []Value
}

type Table struct {
	Implicit bool // created as parent of a header or dotted key
	Dotted   bool // created by a dotted key
	Inline   bool // inline tables are complete once closed
	Elems    map[string]Value
}

func NewTable() *Table {
	return &Table{Elems: make(map[string]Value)}
}

type String string

type Integer int64

type Float float64

type Boolean bool

type Datetime time.Time

// LocalDate is a date without time and offset.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LocalTime is a time of day without date and offset.
type LocalTime struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (t LocalTime) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		s += fmt.Sprintf(".%09d", t.Nanosecond)
	}
	return s
}

// LocalDatetime is a date and time without offset.
type LocalDatetime struct {
	LocalDate
	LocalTime
}

func (dt LocalDatetime) String() string {
	return dt.LocalDate.String() + "T" + dt.LocalTime.String()
}

// In returns the instant of dt in location loc.
func (dt LocalDatetime) In(loc *time.Location) time.Time {
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, loc)
}

func (t *Table) Type() string        { return "table" }
func (a *Array) Type() string        { return "array" }
func (s String) Type() string        { return "string" }
func (i Integer) Type() string       { return "integer" }
func (f Float) Type() string         { return "float" }
func (b Boolean) Type() string       { return "boolean" }
func (d Datetime) Type() string      { return "datetime" }
func (d LocalDatetime) Type() string { return "local datetime" }
func (d LocalDate) Type() string     { return "local date" }
func (t LocalTime) Type() string     { return "local time" }

func (a *Array) TOMLValue()        {}
func (t *Table) TOMLValue()        {}
func (s String) TOMLValue()        {}
func (i Integer) TOMLValue()       {}
func (f Float) TOMLValue()         {}
func (b Boolean) TOMLValue()       {}
func (d Datetime) TOMLValue()      {}
func (d LocalDatetime) TOMLValue() {}
func (d LocalDate) TOMLValue()     {}
func (t LocalTime) TOMLValue()     {}

