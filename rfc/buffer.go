package rfc

import (
	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/wire"
)

// BufferVersion is the first byte of every request buffer
const BufferVersion byte = 1

// Request layout:
//
//	version        byte
//	requested      count, then one name per active EXPORT/CHANGING/TABLES parameter
//	parameters     count, then name + chunk per active IMPORT/CHANGING/TABLES parameter
//
// Response layout:
//
//	parameters     count, then name + chunk per returned parameter
//
// A chunk holds the scalar image, or for a structure the field count
// followed by one chunk per field, or for a table the row count followed
// by one structure chunk per row.

// EncodeRequest serializes the active parameters the caller sends
func (c *Call) EncodeRequest() ([]byte, error) {
	var w wire.Writer
	w.Byte(BufferVersion)

	var requested []string
	var sent []int
	for i, p := range c.schema.params {
		if !c.active[i] {
			continue
		}
		if p.Direction.Received() {
			requested = append(requested, p.Name)
		}
		if p.Direction.Sent() {
			sent = append(sent, i)
		}
	}

	w.Uvarint(uint64(len(requested)))
	for _, name := range requested {
		w.Text(name)
	}
	if err := c.writeParams(&w, sent); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeResponse serializes the active parameters returned to the caller.
// It is used on the serving side after DecodeRequest.
func (c *Call) EncodeResponse() ([]byte, error) {
	var returned []int
	for i, p := range c.schema.params {
		if c.active[i] && p.Direction.Received() {
			returned = append(returned, i)
		}
	}
	return c.encodeParams(returned)
}

func (c *Call) encodeParams(idx []int) ([]byte, error) {
	var w wire.Writer
	if err := c.writeParams(&w, idx); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (c *Call) writeParams(w *wire.Writer, idx []int) error {
	w.Uvarint(uint64(len(idx)))
	for _, i := range idx {
		w.Text(c.schema.params[i].Name)
		f := c.fields[i]
		if err := w.Nested(func(inner *wire.Writer) error { return writePayload(inner, f) }); err != nil {
			return err
		}
	}
	return nil
}

// DecodeRequest builds the serving side Call for fn from a request buffer.
// Parameters absent from the request are inactive; exporting parameters
// are active exactly when the caller requested them.
func DecodeRequest(fn *Function, buf []byte) (*Call, error) {
	c := fn.NewCall()
	r := wire.NewReader(buf)

	version, err := r.Byte()
	if err != nil {
		return nil, malformed(fn.Name(), err)
	}
	if version != BufferVersion {
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(fn.Name()).
			Detail("request buffer version %d", version).
			Build()
	}

	c.requested = make([]bool, len(c.fields))
	n, err := r.Count()
	if err != nil {
		return nil, malformed(fn.Name(), err)
	}
	for range n {
		name, err := r.Text()
		if err != nil {
			return nil, malformed(fn.Name(), err)
		}
		i, err := c.slot(name)
		if err != nil {
			return nil, err
		}
		c.requested[i] = true
	}

	for i, p := range c.schema.params {
		c.active[i] = p.Direction.Received() && c.requested[i]
	}

	err = c.readParams(r, func(p *Parameter) bool { return p.Direction.Sent() }, func(i int) {
		c.active[i] = true
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// decodeResponse stores a response buffer into the call. Inactive
// receiving parameters are reset to their zero value.
func (c *Call) decodeResponse(buf []byte) error {
	for i, p := range c.schema.params {
		if !c.active[i] && p.Direction.Received() {
			c.fields[i].reset(c.path(i))
		}
	}

	r := wire.NewReader(buf)
	return c.readParams(r, func(p *Parameter) bool { return p.Direction.Received() }, nil)
}

// readParams decodes name + chunk pairs. Values are committed only once
// the whole buffer decoded cleanly.
func (c *Call) readParams(r *wire.Reader, accept func(*Parameter) bool, present func(int)) error {
	n, err := r.Count()
	if err != nil {
		return malformed(c.fn.Name(), err)
	}

	type decoded struct {
		f *field
		i int
	}
	pending := make([]decoded, 0, n)
	for range n {
		name, err := r.Text()
		if err != nil {
			return malformed(c.fn.Name(), err)
		}
		i, err := c.slot(name)
		if err != nil {
			return err
		}
		p := &c.schema.params[i]
		if !accept(p) {
			return errors.InvalidData(errors.PhaseDecode, c.path(i),
				"unexpected "+p.Direction.String()+" parameter in buffer")
		}
		payload, err := r.Nested()
		if err != nil {
			return malformed(c.fn.Name(), err)
		}
		f := newField(p, c.schema.sub[i], c.path(i))
		if err := readPayload(payload, f, c.path(i)); err != nil {
			return err
		}
		pending = append(pending, decoded{f: f, i: i})
	}
	if r.Remaining() != 0 {
		return malformed(c.fn.Name(), nil)
	}

	for _, d := range pending {
		// inactive parameters stay at zero even when the peer sent them
		if present == nil && !c.active[d.i] {
			continue
		}
		c.fields[d.i] = d.f
		if present != nil {
			present(d.i)
		}
	}
	return nil
}

func writePayload(w *wire.Writer, f *field) error {
	switch {
	case f.record != nil:
		return writeRecord(w, f.record)
	case f.table != nil:
		w.Uvarint(uint64(len(f.table.rows)))
		for _, row := range f.table.rows {
			if err := w.Nested(func(inner *wire.Writer) error { return writeRecord(inner, row) }); err != nil {
				return err
			}
		}
		return nil
	}
	w.Raw(f.image)
	return nil
}

func writeRecord(w *wire.Writer, r *Record) error {
	w.Uvarint(uint64(len(r.fields)))
	for _, f := range r.fields {
		if err := w.Nested(func(inner *wire.Writer) error { return writePayload(inner, f) }); err != nil {
			return err
		}
	}
	return nil
}

func readPayload(r *wire.Reader, f *field, path []string) error {
	switch {
	case f.record != nil:
		return readRecord(r, f.record)
	case f.table != nil:
		n, err := r.Count()
		if err != nil {
			return withPath(errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "table rows"), path)
		}
		for range n {
			chunk, err := r.Nested()
			if err != nil {
				return withPath(errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "table row"), path)
			}
			row := newRecord(f.table.row, f.table.rowPath(len(f.table.rows)))
			if err := readRecord(chunk, row); err != nil {
				return err
			}
			f.table.rows = append(f.table.rows, row)
		}
		if n > 0 {
			f.table.cursor = 0
		}
		return nil
	}

	image := r.Rest()
	p := f.param
	if _, err := codec.Decode(p.Type, p.Length, p.Decimals, image); err != nil {
		return withPath(err, path)
	}
	f.image = image
	return nil
}

func readRecord(r *wire.Reader, rec *Record) error {
	n, err := r.Count()
	if err != nil {
		return withPath(errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "structure fields"), rec.path)
	}
	if n != len(rec.fields) {
		return errors.InvalidData(errors.PhaseDecode, clonePath(rec.path), "field count does not match the structure")
	}
	for i, f := range rec.fields {
		chunk, err := r.Nested()
		if err != nil {
			return withPath(errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "structure field"), rec.path)
		}
		if err := readPayload(chunk, f, childPath(rec.path, rec.schema.params[i].Name)); err != nil {
			return err
		}
	}
	return nil
}

func malformed(function string, cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(function).
		Detail("malformed buffer").
		Cause(cause).
		Build()
}
