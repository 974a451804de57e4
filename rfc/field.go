package rfc

import (
	"fmt"
	"sort"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// field is the live value bound to one parameter: a scalar image, a
// nested record or a table, fixed by the parameter type.
type field struct {
	param  *Parameter
	sub    *schema
	record *Record
	table  *Table
	image  []byte
}

func newField(p *Parameter, sub *schema, path []string) *field {
	f := &field{param: p, sub: sub}
	f.reset(path)
	return f
}

func (f *field) reset(path []string) {
	switch f.param.Type {
	case codec.TypeStructure:
		f.record = newRecord(f.sub, path)
	case codec.TypeTable:
		f.table = newTable(f.sub, path)
	default:
		f.image = codec.Zero(f.param.Type, f.param.Length, f.param.Decimals)
	}
}

func (f *field) clone(path []string) *field {
	out := &field{param: f.param, sub: f.sub}
	switch {
	case f.record != nil:
		out.record = f.record.cloneAt(path)
	case f.table != nil:
		out.table = f.table.cloneAt(path)
	default:
		out.image = append([]byte(nil), f.image...)
	}
	return out
}

func (f *field) get(path []string) (any, error) {
	switch {
	case f.record != nil:
		return f.record, nil
	case f.table != nil:
		return f.table, nil
	}
	p := f.param
	v, err := codec.Decode(p.Type, p.Length, p.Decimals, f.image)
	if err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (f *field) text(path []string) (string, error) {
	if !f.param.isScalar() {
		return "", errors.TypeMismatch(errors.PhaseDecode, clonePath(path), "string", f.param.Type.String())
	}
	p := f.param
	s, err := codec.DecodeText(p.Type, p.Length, p.Decimals, f.image)
	if err != nil {
		return "", withPath(err, path)
	}
	return s, nil
}

func (f *field) set(v any, path []string) error {
	switch f.param.Type {
	case codec.TypeStructure:
		return f.setRecord(v, path)
	case codec.TypeTable:
		return f.setTable(v, path)
	}

	p := f.param
	if p.Type.IsVariable() && p.Length > 0 {
		if err := checkMaxLength(p, v, path); err != nil {
			return err
		}
	}
	image, err := codec.Encode(p.Type, p.Length, p.Decimals, v)
	if err != nil {
		return withPath(err, path)
	}
	f.image = image
	return nil
}

func (f *field) setRecord(v any, path []string) error {
	switch x := v.(type) {
	case nil:
		f.record = newRecord(f.sub, path)
		return nil
	case *Record:
		if !sameShape(f.sub, x.schema) {
			return shapeMismatch(path, f.param)
		}
		f.record = x.cloneAt(path)
		return nil
	case map[string]any:
		tmp := f.record.cloneAt(path)
		if err := tmp.setAll(x); err != nil {
			return err
		}
		f.record = tmp
		return nil
	}
	return errors.TypeMismatch(errors.PhaseEncode, clonePath(path), typeName(v), f.param.Type.String())
}

func (f *field) setTable(v any, path []string) error {
	tmp := newTable(f.sub, path)
	switch x := v.(type) {
	case nil:
	case *Table:
		if !sameShape(f.sub, x.row) {
			return shapeMismatch(path, f.param)
		}
		for _, r := range x.rows {
			tmp.appendClone(r)
		}
	case []*Record:
		for _, r := range x {
			if err := tmp.Append(r); err != nil {
				return err
			}
		}
	case []map[string]any:
		for _, m := range x {
			if err := tmp.AppendValues(m); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range x {
			var err error
			switch row := e.(type) {
			case map[string]any:
				err = tmp.AppendValues(row)
			case *Record:
				err = tmp.Append(row)
			default:
				err = errors.TypeMismatch(errors.PhaseEncode, clonePath(path), typeName(e), codec.TypeStructure.String())
			}
			if err != nil {
				return err
			}
		}
	default:
		return errors.TypeMismatch(errors.PhaseEncode, clonePath(path), typeName(v), f.param.Type.String())
	}
	f.table = tmp
	return nil
}

func checkMaxLength(p *Parameter, v any, path []string) error {
	var n int
	switch x := v.(type) {
	case string:
		if p.Type == codec.TypeString {
			n = len([]rune(x))
		} else {
			n = len(x)
		}
	case []byte:
		n = len(x)
	default:
		return nil
	}
	if n > int(p.Length) {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(clonePath(path)...).
			AbapType(p.Type.String()).
			Detail("%d exceeds the maximum length %d", n, p.Length).
			Value(v).
			Build()
	}
	return nil
}

func shapeMismatch(path []string, p *Parameter) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(clonePath(path)...).
		AbapType(p.Type.String()).
		Detail("fields do not match %s", p.Name).
		Build()
}

// withPath attaches the field path to errors that carry none yet
func withPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
		e.Path = clonePath(path)
	}
	return err
}

func clonePath(path []string) []string {
	return append([]string(nil), path...)
}

func childPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
