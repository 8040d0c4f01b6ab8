package toml

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kezhuw/tomlpos/internal/types"
)

// digits strips '_' separators from s. Every separator must sit between
// two digits accepted by pred.
func digits(s string, pred func(r rune) bool) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	prevDigit := false
	for _, r := range s {
		switch {
		case r == '_':
			if !prevDigit {
				return "", false
			}
			prevDigit = false
		case pred(r):
			b.WriteRune(r)
			prevDigit = true
		default:
			return "", false
		}
	}
	return b.String(), prevDigit
}

func numberError(t token, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return OutOfBounds(t.pos, err)
	}
	return Generic(t.pos, fmt.Sprintf("invalid number %s", t.raw))
}

func parseNumber(t token) (types.Value, error) {
	s := t.raw
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	switch s {
	case "inf":
		if sign == "-" {
			return types.Float(math.Inf(-1)), nil
		}
		return types.Float(math.Inf(1)), nil
	case "nan":
		return types.Float(math.NaN()), nil
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'o' || s[1] == 'b') {
		if sign != "" {
			return nil, Generic(t.pos, fmt.Sprintf("sign is not allowed in prefixed integer %s", t.raw))
		}
		return parsePrefixedInteger(t, s[1], s[2:])
	}
	if strings.ContainsAny(s, ".eE") {
		return parseFloat(t, sign, s)
	}
	d, ok := digits(s, isDigit)
	if !ok {
		return nil, numberError(t, nil)
	}
	if len(d) > 1 && d[0] == '0' {
		return nil, Generic(t.pos, fmt.Sprintf("leading zero in integer %q", t.raw))
	}
	i, err := strconv.ParseInt(sign+d, 10, 64)
	if err != nil {
		return nil, numberError(t, err)
	}
	return types.Integer(i), nil
}

func parsePrefixedInteger(t token, prefix byte, s string) (types.Value, error) {
	var (
		base int
		pred func(r rune) bool
	)
	switch prefix {
	case 'x':
		base, pred = 16, isHex
	case 'o':
		base, pred = 8, isOctal
	default:
		base, pred = 2, isBinary
	}
	d, ok := digits(s, pred)
	if !ok {
		return nil, numberError(t, nil)
	}
	i, err := strconv.ParseInt(d, base, 64)
	if err != nil {
		return nil, numberError(t, err)
	}
	return types.Integer(i), nil
}

func parseFloat(t token, sign, s string) (types.Value, error) {
	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i+1:]
		if exponent == "" {
			return nil, numberError(t, nil)
		}
	}
	integer, fraction := mantissa, ""
	hasPoint := false
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		integer, fraction = mantissa[:i], mantissa[i+1:]
		hasPoint = true
	}

	intDigits, ok := digits(integer, isDigit)
	if !ok {
		return nil, numberError(t, nil)
	}
	if len(intDigits) > 1 && intDigits[0] == '0' {
		return nil, Generic(t.pos, fmt.Sprintf("leading zero in float %q", t.raw))
	}
	normalized := sign + intDigits
	if hasPoint {
		fracDigits, ok := digits(fraction, isDigit)
		if !ok {
			return nil, numberError(t, nil)
		}
		normalized += "." + fracDigits
	}
	if exponent != "" {
		esign := ""
		if exponent[0] == '+' || exponent[0] == '-' {
			esign, exponent = exponent[:1], exponent[1:]
		}
		expDigits, ok := digits(exponent, isDigit)
		if !ok {
			return nil, numberError(t, nil)
		}
		normalized += "e" + esign + expDigits
	}

	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil, numberError(t, err)
	}
	return types.Float(f), nil
}

const (
	localDateLayout     = "2006-01-02"
	localTimeLayout     = "15:04:05"
	localDatetimeLayout = localDateLayout + "T" + localTimeLayout
)

func localDateOf(t time.Time) types.LocalDate {
	return types.LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func localTimeOf(t time.Time) types.LocalTime {
	return types.LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// hasOffset reports whether time part s, following the seconds field,
// carries a time zone offset.
func hasOffset(s string) bool {
	if strings.HasPrefix(s, ".") {
		i := 1
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
		s = s[i:]
	}
	return s != ""
}

func parseDatetime(t token) (types.Value, error) {
	s := t.raw
	invalid := func(err error) error {
		return Generic(t.pos, fmt.Sprintf("invalid date-time %s: %s", t.raw, err))
	}

	if len(s) >= 3 && s[2] == ':' {
		v, err := time.Parse(localTimeLayout, s)
		if err != nil {
			return nil, invalid(err)
		}
		return localTimeOf(v), nil
	}
	if len(s) == len(localDateLayout) {
		v, err := time.Parse(localDateLayout, s)
		if err != nil {
			return nil, invalid(err)
		}
		return localDateOf(v), nil
	}

	if len(s) > 10 && (s[10] == ' ' || s[10] == 't') {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	if len(s) > len(localDatetimeLayout) && hasOffset(s[len(localDatetimeLayout):]) {
		v, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, invalid(err)
		}
		return types.Datetime(v), nil
	}
	v, err := time.Parse(localDatetimeLayout, s)
	if err != nil {
		return nil, invalid(err)
	}
	return types.LocalDatetime{LocalDate: localDateOf(v), LocalTime: localTimeOf(v)}, nil
}
