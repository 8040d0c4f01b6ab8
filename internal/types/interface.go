package types

import "time"

// Interface converts a TOML value to plain Go value.
func Interface(v Value) interface{} {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case Integer:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Datetime:
		return time.Time(v)
	case LocalDatetime, LocalDate, LocalTime:
		return v
	case *Array:
		return v.Interface()
	case *Table:
		return v.Interface()
	}
	return nil
}
