package ledger

// Row is one sheet row as a loose name→value mapping. Cell values are
// strings, numbers or nil; nil means the cell is empty or unknown.
type Row map[string]any

// Dataset is a sheet worth of tabular data. Columns keeps the header order
// so a write-back reproduces the sheet layout.
type Dataset struct {
	Columns []string
	Rows    []Row
}

func NewDataset(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends a column filled with nulls when the sheet has never
// carried it. First-use schema migration for the mutable renewal columns.
func (d *Dataset) EnsureColumn(name string) {
	if d.HasColumn(name) {
		return
	}
	d.Columns = append(d.Columns, name)
	for _, row := range d.Rows {
		row[name] = nil
	}
}

func (d *Dataset) Append(row Row) {
	d.Rows = append(d.Rows, row)
}

// Clone deep-copies the dataset so callers can mutate a snapshot without
// touching the original.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	out.Rows = make([]Row, 0, len(d.Rows))
	for _, row := range d.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// FilterByDateRange keeps rows whose field falls inside [start, end], both
// bounds inclusive, all in canonical YYYY-MM-DD form. Rows with a null or
// unparsed date never match.
func (d *Dataset) FilterByDateRange(field, start, end string) *Dataset {
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	for _, row := range d.Rows {
		value, ok := CellString(row[field])
		if !ok || value == "" {
			continue
		}
		if value >= start && value <= end {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// CellString extracts a cell as a string. The second return is false for nil
// cells and non-string values.
func CellString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	default:
		return "", false
	}
}

// CellFloat extracts a numeric cell.
func CellFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case *float64:
		if f == nil {
			return 0, false
		}
		return *f, true
	default:
		return 0, false
	}
}
