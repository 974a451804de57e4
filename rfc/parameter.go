package rfc

import (
	"strings"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

// Parameter describes one named slot of a function or of a structure.
//
// Length counts characters for CHAR and NUMC and bytes for BYTE and BCD;
// it is required for those types. STRING and XSTRING accept an optional
// maximum length, 0 meaning unbounded. Decimals only applies to BCD.
// Children describe the fields of a STRUCTURE or the row of a TABLE;
// their Direction is ignored.
type Parameter struct {
	Name      string
	Type      codec.Type
	Length    uint
	Decimals  uint
	Direction codec.Direction
	Children  []Parameter

	Optional bool
	Default  string
	Text     string
	// TypeName is the DDIC name of a structure or table type, e.g. "RFCTEST"
	TypeName string
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// normalized returns a deep copy with upper case names
func (p Parameter) normalized() Parameter {
	p.Name = normalizeName(p.Name)
	p.TypeName = strings.ToUpper(p.TypeName)
	if len(p.Children) > 0 {
		children := make([]Parameter, len(p.Children))
		for i, c := range p.Children {
			children[i] = c.normalized()
		}
		p.Children = children
	}
	return p
}

// validate checks a normalized parameter. top is false for structure fields.
func (p Parameter) validate(path []string, top bool) error {
	path = append(path, p.Name)
	if p.Name == "" {
		return invalidParam(path, "empty name")
	}
	if strings.ContainsAny(p.Name, " \t\n") {
		return invalidParam(path, "name contains whitespace")
	}
	if !p.Type.Valid() {
		return invalidParam(path, "unknown type")
	}
	if top {
		if !p.Direction.Valid() {
			return invalidParam(path, "invalid direction")
		}
		if p.Direction == codec.Tables && p.Type != codec.TypeTable {
			return invalidParam(path, "TABLES parameter must be of type TABLE")
		}
	}
	if p.Type.NeedsLength() && p.Length == 0 {
		return invalidParam(path, p.Type.String()+" requires a length")
	}
	if p.Decimals > 0 {
		if p.Type != codec.TypeBCD {
			return invalidParam(path, "decimals only apply to BCD")
		}
		if int(p.Decimals) > codec.Digits(p.Length) {
			return invalidParam(path, "more decimals than digits")
		}
	}

	aggregate := p.Type == codec.TypeStructure || p.Type == codec.TypeTable
	if !aggregate {
		if len(p.Children) > 0 {
			return invalidParam(path, "only STRUCTURE and TABLE have fields")
		}
		return nil
	}
	if len(p.Children) == 0 {
		return invalidParam(path, p.Type.String()+" requires fields")
	}
	seen := make(map[string]struct{}, len(p.Children))
	for _, c := range p.Children {
		if _, dup := seen[c.Name]; dup {
			return errors.DuplicateName(path, c.Name)
		}
		seen[c.Name] = struct{}{}
		if err := c.validate(path, false); err != nil {
			return err
		}
	}
	return nil
}

func invalidParam(path []string, detail string) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
		Path(path...).
		Detail("%s", detail).
		Build()
}

func (p Parameter) fieldDef() codec.FieldDef {
	def := codec.FieldDef{
		Name:      p.Name,
		Type:      p.Type,
		Length:    p.Length,
		Decimals:  p.Decimals,
		Direction: p.Direction,
	}
	if len(p.Children) > 0 {
		def.Children = make([]codec.FieldDef, len(p.Children))
		for i, c := range p.Children {
			def.Children[i] = c.fieldDef()
		}
	}
	return def
}

func (p Parameter) clone() Parameter {
	if len(p.Children) > 0 {
		children := make([]Parameter, len(p.Children))
		for i, c := range p.Children {
			children[i] = c.clone()
		}
		p.Children = children
	}
	return p
}

func (p Parameter) isScalar() bool {
	return p.Type != codec.TypeStructure && p.Type != codec.TypeTable
}

// schema is the compiled, shared form of an ordered parameter list.
// Records and Tables built from the same Parameter share one schema.
type schema struct {
	params []Parameter
	index  map[string]int
	// sub holds the compiled children of aggregate params, by position
	sub []*schema
}

func compile(params []Parameter) *schema {
	s := &schema{
		params: params,
		index:  make(map[string]int, len(params)),
		sub:    make([]*schema, len(params)),
	}
	for i, p := range params {
		s.index[p.Name] = i
		if !p.isScalar() {
			s.sub[i] = compile(p.Children)
		}
	}
	return s
}

func (s *schema) lookup(name string) (int, bool) {
	i, ok := s.index[normalizeName(name)]
	return i, ok
}

func (s *schema) defs() []codec.FieldDef {
	out := make([]codec.FieldDef, len(s.params))
	for i, p := range s.params {
		out[i] = p.fieldDef()
	}
	return out
}

func (s *schema) names() []string {
	out := make([]string, len(s.params))
	for i, p := range s.params {
		out[i] = p.Name
	}
	return out
}

// sameShape reports whether rows of a and b can be copied into each other
func sameShape(a, b *schema) bool {
	if a == b {
		return true
	}
	if len(a.params) != len(b.params) {
		return false
	}
	for i := range a.params {
		pa, pb := a.params[i], b.params[i]
		if pa.Name != pb.Name || pa.Type != pb.Type || pa.Length != pb.Length || pa.Decimals != pb.Decimals {
			return false
		}
		if a.sub[i] != nil && !sameShape(a.sub[i], b.sub[i]) {
			return false
		}
	}
	return true
}
