package rfc

import (
	"sync"

	"github.com/wippyai/nwrfc"
	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// Function is the schema of a remote function module: its name and an
// ordered set of uniquely named parameters.
//
// Parameters can be added until the first Call is created; from then on
// the Function is sealed and safe for concurrent use.
type Function struct {
	caller nwrfc.Caller
	sealed *schema
	index  map[string]int
	name   string
	params []Parameter
	mu     sync.RWMutex
}

// FunctionOption configures a Function
type FunctionOption func(*Function)

// WithCaller binds the collaborator used by Call.Invoke
func WithCaller(c nwrfc.Caller) FunctionOption {
	return func(f *Function) {
		f.caller = c
	}
}

// WithParameters adds parameters at construction.
// Invalid parameters are skipped; use AddParameter to see the error.
func WithParameters(params ...Parameter) FunctionOption {
	return func(f *Function) {
		for _, p := range params {
			_ = f.AddParameter(p)
		}
	}
}

// NewFunction creates an empty, unsealed function description
func NewFunction(name string, opts ...FunctionOption) *Function {
	f := &Function{
		name:  normalizeName(name),
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Function) Name() string {
	return f.name
}

// AddParameter appends p. Names are case insensitive.
func (f *Function) AddParameter(p Parameter) error {
	p = p.normalized()
	if err := p.validate(nil, true); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sealed != nil {
		return errors.IllegalState(errors.PhaseSchema,
			"function "+f.name+" is in use and can no longer be changed")
	}
	if _, dup := f.index[p.Name]; dup {
		return errors.DuplicateName([]string{f.name}, p.Name)
	}
	f.index[p.Name] = len(f.params)
	f.params = append(f.params, p)
	return nil
}

// ParameterCount returns the number of top-level parameters
func (f *Function) ParameterCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.params)
}

// Parameters returns a copy of the parameters in declaration order
func (f *Function) Parameters() []Parameter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Parameter, len(f.params))
	for i, p := range f.params {
		out[i] = p.clone()
	}
	return out
}

// Parameter looks up a top-level parameter by name
func (f *Function) Parameter(name string) (Parameter, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i, ok := f.index[normalizeName(name)]
	if !ok {
		return Parameter{}, false
	}
	return f.params[i].clone(), true
}

// Fields returns the layout metadata of all parameters
func (f *Function) Fields() []codec.FieldDesc {
	f.mu.RLock()
	defer f.mu.RUnlock()
	defs := make([]codec.FieldDef, len(f.params))
	for i, p := range f.params {
		defs[i] = p.fieldDef()
	}
	return codec.Layout(defs)
}

// Sealed reports whether a Call has been created from f
func (f *Function) Sealed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sealed != nil
}

// Caller returns the bound collaborator, or nil
func (f *Function) Caller() nwrfc.Caller {
	return f.caller
}

// Bind returns a sealed copy of f bound to c. The parameters are shared.
func (f *Function) Bind(c nwrfc.Caller) *Function {
	s := f.seal()
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &Function{
		caller: c,
		sealed: s,
		index:  f.index,
		name:   f.name,
		params: f.params,
	}
}

// NewCall seals f and returns a Call with every field at its zero value
func (f *Function) NewCall() *Call {
	return newCall(f, f.seal())
}

func (f *Function) seal() *schema {
	f.mu.RLock()
	s := f.sealed
	f.mu.RUnlock()
	if s != nil {
		return s
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sealed == nil {
		f.sealed = compile(f.params)
	}
	return f.sealed
}
