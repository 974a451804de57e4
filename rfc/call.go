package rfc

import (
	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// Call is one invocation of a Function: a value for every parameter and
// a flag per parameter telling whether it takes part in the call.
// A Call is not safe for concurrent use.
type Call struct {
	fn        *Function
	schema    *schema
	fields    []*field
	active    []bool
	requested []bool
}

func newCall(fn *Function, s *schema) *Call {
	c := &Call{
		fn:     fn,
		schema: s,
		fields: make([]*field, len(s.params)),
		active: make([]bool, len(s.params)),
	}
	for i := range s.params {
		c.fields[i] = newField(&s.params[i], s.sub[i], c.path(i))
		c.active[i] = true
	}
	return c
}

// Function returns the schema the call was created from
func (c *Call) Function() *Function {
	return c.fn
}

func (c *Call) path(i int) []string {
	return []string{c.schema.params[i].Name}
}

func (c *Call) slot(name string) (int, error) {
	i, ok := c.schema.lookup(name)
	if !ok {
		return -1, errors.FieldUnknown(errors.PhaseSchema, []string{c.fn.Name()}, normalizeName(name))
	}
	return i, nil
}

// Get returns the decoded value of a scalar parameter, or the *Record or
// *Table of a structure or table parameter.
func (c *Call) Get(name string) (any, error) {
	i, err := c.slot(name)
	if err != nil {
		return nil, err
	}
	return c.fields[i].get(c.path(i))
}

// Set encodes v into the named parameter.
// Structures accept a *Record or a map[string]any of field values; tables
// accept a *Table, []*Record or []map[string]any and replace their rows
// with copies.
func (c *Call) Set(name string, v any) error {
	i, err := c.slot(name)
	if err != nil {
		return err
	}
	return c.fields[i].set(v, c.path(i))
}

// Record returns a structure parameter
func (c *Call) Record(name string) (*Record, error) {
	i, err := c.slot(name)
	if err != nil {
		return nil, err
	}
	f := c.fields[i]
	if f.record == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, c.path(i), "*rfc.Record", f.param.Type.String())
	}
	return f.record, nil
}

// Table returns a table parameter
func (c *Call) Table(name string) (*Table, error) {
	i, err := c.slot(name)
	if err != nil {
		return nil, err
	}
	f := c.fields[i]
	if f.table == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, c.path(i), "*rfc.Table", f.param.Type.String())
	}
	return f.table, nil
}

// Text returns a scalar parameter as text
func (c *Call) Text(name string) (string, error) {
	i, err := c.slot(name)
	if err != nil {
		return "", err
	}
	return c.fields[i].text(c.path(i))
}

// Active reports whether the parameter takes part in the call.
// Unknown names report false.
func (c *Call) Active(name string) bool {
	i, ok := c.schema.lookup(name)
	return ok && c.active[i]
}

// SetActive includes or excludes a parameter from the call.
// An inactive parameter is not sent, and holds its zero value after Invoke.
func (c *Call) SetActive(name string, active bool) error {
	i, err := c.slot(name)
	if err != nil {
		return err
	}
	c.active[i] = active
	return nil
}

// Deactivate is SetActive(name, false)
func (c *Call) Deactivate(name string) error {
	return c.SetActive(name, false)
}

// Requested reports, on the serving side, whether the caller asked for
// the parameter. Without a decoded request every parameter counts as requested.
func (c *Call) Requested(name string) bool {
	i, ok := c.schema.lookup(name)
	if !ok {
		return false
	}
	if c.requested == nil {
		return true
	}
	return c.requested[i]
}

// Fields returns the layout metadata of all parameters
func (c *Call) Fields() []codec.FieldDesc {
	return codec.Layout(c.schema.defs())
}

// Names returns the parameter names in declaration order
func (c *Call) Names() []string {
	return c.schema.names()
}

// Parameter returns the parameter definition behind name
func (c *Call) Parameter(name string) (Parameter, bool) {
	i, ok := c.schema.lookup(name)
	if !ok {
		return Parameter{}, false
	}
	return c.schema.params[i].clone(), true
}
