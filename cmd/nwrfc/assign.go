package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/rfc"
)

// segment is one step of a parameter path: NAME or NAME[i]
type segment struct {
	name  string
	index int // -1 without an index
}

func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, errors.InvalidInput(errors.PhaseEncode, "empty parameter path")
	}
	parts := strings.Split(path, ".")
	out := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg := segment{name: part, index: -1}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, errors.InvalidInput(errors.PhaseEncode, "unterminated index in "+path)
			}
			i, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || i < 0 {
				return nil, errors.InvalidInput(errors.PhaseEncode, "bad index in "+path)
			}
			seg.name, seg.index = part[:open], i
		}
		if seg.name == "" {
			return nil, errors.InvalidInput(errors.PhaseEncode, "empty name in "+path)
		}
		out = append(out, seg)
	}
	return out, nil
}

// container is the common surface of Call, Record and Table
type container interface {
	Set(name string, v any) error
	Record(name string) (*rfc.Record, error)
	Table(name string) (*rfc.Table, error)
}

// assignArg applies one PATH=VALUE argument. Indexing one past the last
// row of a table appends a row. BYTE and XSTRING values take a 0x prefix
// for hex input.
func assignArg(call *rfc.Call, arg string) error {
	path, value, ok := strings.Cut(arg, "=")
	if !ok {
		return errors.InvalidInput(errors.PhaseEncode, "expected PATH=VALUE, got "+arg)
	}
	segs, err := parsePath(strings.TrimSpace(path))
	if err != nil {
		return err
	}

	p, ok := call.Parameter(segs[0].name)
	if !ok {
		return errors.FieldUnknown(errors.PhaseEncode, []string{call.Function().Name()}, segs[0].name)
	}
	var c container = call
	for i, seg := range segs {
		last := i == len(segs)-1
		if i > 0 {
			if p, ok = child(p, seg.name); !ok {
				return errors.FieldUnknown(errors.PhaseEncode, nil, seg.name)
			}
		}
		if seg.index >= 0 {
			if p.Type != codec.TypeTable {
				return errors.InvalidInput(errors.PhaseEncode, seg.name+" is not a table")
			}
			tbl, err := c.Table(seg.name)
			if err != nil {
				return err
			}
			row, err := rowAt(tbl, seg.index)
			if err != nil {
				return err
			}
			if last {
				return errors.InvalidInput(errors.PhaseEncode, "a table row needs a field name")
			}
			c = row
			continue
		}
		if last {
			v, err := scalarValue(p, value)
			if err != nil {
				return err
			}
			return c.Set(seg.name, v)
		}
		if p.Type != codec.TypeStructure {
			return errors.InvalidInput(errors.PhaseEncode, seg.name+" is not a structure")
		}
		rec, err := c.Record(seg.name)
		if err != nil {
			return err
		}
		c = rec
	}
	return nil
}

func child(p rfc.Parameter, name string) (rfc.Parameter, bool) {
	name = strings.ToUpper(name)
	for _, c := range p.Children {
		if c.Name == name {
			return c, true
		}
	}
	return rfc.Parameter{}, false
}

func rowAt(tbl *rfc.Table, i int) (*rfc.Record, error) {
	if i == tbl.Size() {
		return tbl.NewRow(), nil
	}
	return tbl.Row(i)
}

func scalarValue(p rfc.Parameter, s string) (any, error) {
	switch p.Type {
	case codec.TypeByte, codec.TypeXString:
		if rest, ok := strings.CutPrefix(s, "0x"); ok {
			b, err := hex.DecodeString(rest)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "hex value")
			}
			return b, nil
		}
		return []byte(s), nil
	case codec.TypeStructure, codec.TypeTable:
		return nil, errors.InvalidInput(errors.PhaseEncode, p.Name+" needs a field path")
	}
	return s, nil
}

// results collects the received parameters of call into plain values
func results(call *rfc.Call) (map[string]any, error) {
	out := make(map[string]any)
	for _, name := range call.Names() {
		p, _ := call.Parameter(name)
		if !p.Direction.Received() || !call.Active(name) {
			continue
		}
		v, err := call.Get(name)
		if err != nil {
			return nil, err
		}
		if v, err = expand(v); err != nil {
			return nil, err
		}
		out[name] = plain(v)
	}
	return out, nil
}

func expand(v any) (any, error) {
	switch x := v.(type) {
	case *rfc.Record:
		return x.Map()
	case *rfc.Table:
		return x.Maps()
	}
	return v, nil
}

// plain turns decoded values into something that prints well
func plain(v any) any {
	switch x := v.(type) {
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case codec.Date:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if x.Year() == 0 {
			return x.Format("15:04:05")
		}
		return x.Format("2006-01-02")
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = plain(e)
		}
		return m
	case []map[string]any:
		rows := make([]any, len(x))
		for i, r := range x {
			rows[i] = plain(r)
		}
		return rows
	case []any:
		rows := make([]any, len(x))
		for i, r := range x {
			rows[i] = plain(r)
		}
		return rows
	case nil:
		return nil
	case fmt.Stringer:
		return x.String()
	}
	return v
}
