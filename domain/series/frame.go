package series

// Frame is an ordered collection of named series loaded from one source,
// typically the columns of a CSV or spreadsheet.
type Frame struct {
	Name    string   `json:"name"`
	Columns []Series `json:"columns"`
}

// Column returns the series with the given name.
func (f *Frame) Column(name string) (Series, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Series{}, false
}

// ColumnNames returns the column names in load order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Add appends a column, replacing any existing column with the same name.
func (f *Frame) Add(s Series) {
	for i, c := range f.Columns {
		if c.Name == s.Name {
			f.Columns[i] = s
			return
		}
	}
	f.Columns = append(f.Columns, s)
}
