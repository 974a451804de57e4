package rfc

import (
	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// Record is the value of a STRUCTURE parameter or one row of a Table.
// Fields are addressed by name, case insensitively.
type Record struct {
	schema *schema
	fields []*field
	path   []string
}

func newRecord(s *schema, path []string) *Record {
	r := &Record{
		schema: s,
		fields: make([]*field, len(s.params)),
		path:   clonePath(path),
	}
	for i := range s.params {
		r.fields[i] = newField(&s.params[i], s.sub[i], childPath(r.path, s.params[i].Name))
	}
	return r
}

func (r *Record) slot(name string) (*field, []string, error) {
	i, ok := r.schema.lookup(name)
	if !ok {
		return nil, nil, errors.FieldUnknown(errors.PhaseSchema, clonePath(r.path), normalizeName(name))
	}
	return r.fields[i], childPath(r.path, r.schema.params[i].Name), nil
}

// Get returns the decoded value of a scalar field, or the *Record or
// *Table of an aggregate field.
func (r *Record) Get(name string) (any, error) {
	f, path, err := r.slot(name)
	if err != nil {
		return nil, err
	}
	return f.get(path)
}

// Set encodes v into the named field
func (r *Record) Set(name string, v any) error {
	f, path, err := r.slot(name)
	if err != nil {
		return err
	}
	return f.set(v, path)
}

// Record returns a nested structure field
func (r *Record) Record(name string) (*Record, error) {
	f, path, err := r.slot(name)
	if err != nil {
		return nil, err
	}
	if f.record == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, path, "*rfc.Record", f.param.Type.String())
	}
	return f.record, nil
}

// Table returns a nested table field
func (r *Record) Table(name string) (*Table, error) {
	f, path, err := r.slot(name)
	if err != nil {
		return nil, err
	}
	if f.table == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, path, "*rfc.Table", f.param.Type.String())
	}
	return f.table, nil
}

// Text returns a scalar field as text. BCD fields keep their exact digits.
func (r *Record) Text(name string) (string, error) {
	f, path, err := r.slot(name)
	if err != nil {
		return "", err
	}
	return f.text(path)
}

// Fields returns the layout metadata of the record's fields
func (r *Record) Fields() []codec.FieldDesc {
	return codec.Layout(r.schema.defs())
}

// Names returns the field names in order
func (r *Record) Names() []string {
	return r.schema.names()
}

func (r *Record) Len() int {
	return len(r.fields)
}

// Clone returns a deep copy of r
func (r *Record) Clone() *Record {
	return r.cloneAt(r.path)
}

// Map decodes all fields. Nested records become maps, tables slices of maps.
func (r *Record) Map() (map[string]any, error) {
	out := make(map[string]any, len(r.fields))
	for i, f := range r.fields {
		name := r.schema.params[i].Name
		switch {
		case f.record != nil:
			m, err := f.record.Map()
			if err != nil {
				return nil, err
			}
			out[name] = m
		case f.table != nil:
			rows, err := f.table.Maps()
			if err != nil {
				return nil, err
			}
			out[name] = rows
		default:
			v, err := f.get(childPath(r.path, name))
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
	}
	return out, nil
}

func (r *Record) cloneAt(path []string) *Record {
	out := &Record{
		schema: r.schema,
		fields: make([]*field, len(r.fields)),
		path:   clonePath(path),
	}
	for i, f := range r.fields {
		out.fields[i] = f.clone(childPath(out.path, r.schema.params[i].Name))
	}
	return out
}

// setAll applies m in key order, stopping at the first error
func (r *Record) setAll(m map[string]any) error {
	for _, k := range sortedKeys(m) {
		if err := r.Set(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}
