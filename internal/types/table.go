package types

func (t *Table) Interface() map[string]interface{} {
	m := make(map[string]interface{}, len(t.Elems))
	for key, value := range t.Elems {
		m[key] = Interface(value)
	}
	return m
}
