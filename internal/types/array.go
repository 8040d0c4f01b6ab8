package types

func (v *Array) Interface() []interface{} {
	a := make([]interface{}, len(v.Elems))
	for i, value := range v.Elems {
		a[i] = Interface(value)
	}
	return a
}
