package layout

import (
	"github.com/wippyai/nwrfc/codec/internal/abi"
	"github.com/wippyai/nwrfc/codec/internal/types"
)

// Field is the part of a parameter the layout depends on
type Field struct {
	Name     string
	Children []Field
	Length   uint32
	Type     types.Type
}

// Info holds the size and alignment in both representations
type Info struct {
	NucLength uint32
	UcLength  uint32
	NucAlign  uint32
	UcAlign   uint32
}

// Placed is a field with its offsets inside the enclosing structure
type Placed struct {
	Name      string
	NucOffset uint32
	UcOffset  uint32
	Info
}

const refSlot = 8

// Calculate returns the layout of a single field
func Calculate(f Field) Info {
	switch f.Type {
	case types.TypeChar, types.TypeNum:
		return Info{NucLength: f.Length, UcLength: 2 * f.Length, NucAlign: 1, UcAlign: 2}
	case types.TypeDate:
		return Info{NucLength: 8, UcLength: 16, NucAlign: 1, UcAlign: 2}
	case types.TypeTime:
		return Info{NucLength: 6, UcLength: 12, NucAlign: 1, UcAlign: 2}
	case types.TypeByte, types.TypeBCD:
		return Info{NucLength: f.Length, UcLength: f.Length, NucAlign: 1, UcAlign: 1}
	case types.TypeInt1:
		return fixed(1)
	case types.TypeInt2:
		return fixed(2)
	case types.TypeInt4:
		return fixed(4)
	case types.TypeFloat, types.TypeDecF16:
		return fixed(8)
	case types.TypeDecF34:
		return fixed(16)
	case types.TypeString, types.TypeXString, types.TypeTable:
		return fixed(refSlot)
	case types.TypeStructure:
		info, _ := Place(f.Children)
		return info
	default:
		return Info{NucAlign: 1, UcAlign: 1}
	}
}

// Place lays out fields sequentially and returns the structure info and per-field offsets.
func Place(fields []Field) (Info, []Placed) {
	if len(fields) == 0 {
		return Info{NucAlign: 1, UcAlign: 1}, nil
	}

	placed := make([]Placed, 0, len(fields))
	var nucOff, ucOff uint32
	nucMax, ucMax := uint32(1), uint32(1)

	for _, f := range fields {
		info := Calculate(f)
		nucOff = abi.AlignTo(nucOff, info.NucAlign)
		ucOff = abi.AlignTo(ucOff, info.UcAlign)
		placed = append(placed, Placed{
			Name:      f.Name,
			NucOffset: nucOff,
			UcOffset:  ucOff,
			Info:      info,
		})
		nucOff += info.NucLength
		ucOff += info.UcLength
		if info.NucAlign > nucMax {
			nucMax = info.NucAlign
		}
		if info.UcAlign > ucMax {
			ucMax = info.UcAlign
		}
	}

	return Info{
		NucLength: abi.AlignTo(nucOff, nucMax),
		UcLength:  abi.AlignTo(ucOff, ucMax),
		NucAlign:  nucMax,
		UcAlign:   ucMax,
	}, placed
}

func fixed(n uint32) Info {
	return Info{NucLength: n, UcLength: n, NucAlign: n, UcAlign: n}
}
