package rfc

import (
	"iter"
	"strconv"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// Table is an ordered sequence of rows sharing one structure.
// Rows are only ever added. Set and Get work on the row at the cursor.
type Table struct {
	row    *schema
	rows   []*Record
	path   []string
	cursor int
}

func newTable(row *schema, path []string) *Table {
	return &Table{row: row, path: clonePath(path), cursor: -1}
}

func (t *Table) rowPath(i int) []string {
	p := clonePath(t.path)
	if len(p) == 0 {
		return []string{"[" + strconv.Itoa(i) + "]"}
	}
	p[len(p)-1] += "[" + strconv.Itoa(i) + "]"
	return p
}

// NewRow appends a zero row, moves the cursor to it and returns it
func (t *Table) NewRow() *Record {
	r := newRecord(t.row, t.rowPath(len(t.rows)))
	t.rows = append(t.rows, r)
	t.cursor = len(t.rows) - 1
	return r
}

// Append stores a deep copy of r as a new last row and moves the cursor to it.
// Later changes to r do not affect the table.
func (t *Table) Append(r *Record) error {
	if r == nil || !sameShape(t.row, r.schema) {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(clonePath(t.path)...).
			AbapType(codec.TypeTable.String()).
			Detail("row does not match the table structure").
			Build()
	}
	t.appendClone(r)
	return nil
}

// AppendValues appends a row built from m
func (t *Table) AppendValues(m map[string]any) error {
	r := newRecord(t.row, t.rowPath(len(t.rows)))
	if err := r.setAll(m); err != nil {
		return err
	}
	t.rows = append(t.rows, r)
	t.cursor = len(t.rows) - 1
	return nil
}

func (t *Table) appendClone(r *Record) {
	t.rows = append(t.rows, r.cloneAt(t.rowPath(len(t.rows))))
	t.cursor = len(t.rows) - 1
}

// Size returns the number of rows
func (t *Table) Size() int {
	return len(t.rows)
}

// Row returns the live row at i
func (t *Table) Row(i int) (*Record, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, errors.OutOfBounds(errors.PhaseSchema, clonePath(t.path), i, len(t.rows))
	}
	return t.rows[i], nil
}

// MoveTo moves the cursor to row i
func (t *Table) MoveTo(i int) error {
	if i < 0 || i >= len(t.rows) {
		return errors.OutOfBounds(errors.PhaseSchema, clonePath(t.path), i, len(t.rows))
	}
	t.cursor = i
	return nil
}

// Cursor returns the current row index, or -1 when there is none
func (t *Table) Cursor() int {
	return t.cursor
}

// Current returns the row at the cursor
func (t *Table) Current() (*Record, error) {
	if t.cursor < 0 {
		return nil, errors.New(errors.PhaseSchema, errors.KindOutOfBounds).
			Path(clonePath(t.path)...).
			Detail("table has no current row").
			Build()
	}
	return t.rows[t.cursor], nil
}

// Set writes a field of the current row
func (t *Table) Set(name string, v any) error {
	r, err := t.Current()
	if err != nil {
		return err
	}
	return r.Set(name, v)
}

// Get reads a field of the current row
func (t *Table) Get(name string) (any, error) {
	r, err := t.Current()
	if err != nil {
		return nil, err
	}
	return r.Get(name)
}

// All iterates over the rows in insertion order.
// The sequence can be ranged over any number of times.
func (t *Table) All() iter.Seq2[int, *Record] {
	return func(yield func(int, *Record) bool) {
		for i := 0; i < len(t.rows); i++ {
			if !yield(i, t.rows[i]) {
				return
			}
		}
	}
}

// Fields returns the layout metadata of one row
func (t *Table) Fields() []codec.FieldDesc {
	return codec.Layout(t.row.defs())
}

// Names returns the row field names in order
func (t *Table) Names() []string {
	return t.row.names()
}

// Maps decodes every row
func (t *Table) Maps() ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(t.rows))
	for _, r := range t.rows {
		m, err := r.Map()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Clone returns a deep copy of t
func (t *Table) Clone() *Table {
	return t.cloneAt(t.path)
}

func (t *Table) cloneAt(path []string) *Table {
	out := newTable(t.row, path)
	for _, r := range t.rows {
		out.appendClone(r)
	}
	out.cursor = t.cursor
	return out
}
