package codec

import (
	"github.com/wippyai/nwrfc/codec/internal/layout"
)

// FieldDef is the layout relevant part of a parameter or structure field
type FieldDef struct {
	Name      string
	Type      Type
	Length    uint
	Decimals  uint
	Direction Direction
	Children  []FieldDef
}

// FieldDesc describes a field the way the SDK field descriptors do:
// lengths and offsets in both the non-unicode and the unicode layout.
type FieldDesc struct {
	Name      string
	Type      Type
	Direction Direction
	Decimals  uint
	NucLength uint32
	NucOffset uint32
	UcLength  uint32
	UcOffset  uint32
	Children  []FieldDesc
}

// Layout places fields sequentially as one structure.
// Child descriptors of structures and tables are placed relative to their parent.
func Layout(fields []FieldDef) []FieldDesc {
	lf := make([]layout.Field, len(fields))
	for i, f := range fields {
		lf[i] = toLayout(f)
	}
	_, placed := layout.Place(lf)

	out := make([]FieldDesc, len(fields))
	for i, f := range fields {
		p := placed[i]
		out[i] = FieldDesc{
			Name:      f.Name,
			Type:      f.Type,
			Direction: f.Direction,
			Decimals:  f.Decimals,
			NucLength: p.NucLength,
			NucOffset: p.NucOffset,
			UcLength:  p.UcLength,
			UcOffset:  p.UcOffset,
		}
		if len(f.Children) > 0 {
			out[i].Children = Layout(f.Children)
		}
	}
	return out
}

// RowLength returns the unicode length of one structure or table row
func RowLength(children []FieldDef) uint32 {
	lf := make([]layout.Field, len(children))
	for i, f := range children {
		lf[i] = toLayout(f)
	}
	info, _ := layout.Place(lf)
	return info.UcLength
}

func toLayout(f FieldDef) layout.Field {
	out := layout.Field{
		Name:   f.Name,
		Type:   f.Type,
		Length: uint32(f.Length),
	}
	// tables are references, their rows are not inlined
	if f.Type == TypeStructure {
		out.Children = make([]layout.Field, len(f.Children))
		for i, c := range f.Children {
			out.Children[i] = toLayout(c)
		}
	}
	return out
}
