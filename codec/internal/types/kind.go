package types

import "strings"

// Type is an ABAP type tag
type Type uint8

const (
	TypeChar Type = iota
	TypeNum
	TypeByte
	TypeXString
	TypeString
	TypeBCD
	TypeInt1
	TypeInt2
	TypeInt4
	TypeFloat
	TypeDecF16
	TypeDecF34
	TypeDate
	TypeTime
	TypeStructure
	TypeTable
)

var typeNames = [...]string{
	TypeChar:      "RFCTYPE_CHAR",
	TypeNum:       "RFCTYPE_NUM",
	TypeByte:      "RFCTYPE_BYTE",
	TypeXString:   "RFCTYPE_XSTRING",
	TypeString:    "RFCTYPE_STRING",
	TypeBCD:       "RFCTYPE_BCD",
	TypeInt1:      "RFCTYPE_INT1",
	TypeInt2:      "RFCTYPE_INT2",
	TypeInt4:      "RFCTYPE_INT",
	TypeFloat:     "RFCTYPE_FLOAT",
	TypeDecF16:    "RFCTYPE_DECF16",
	TypeDecF34:    "RFCTYPE_DECF34",
	TypeDate:      "RFCTYPE_DATE",
	TypeTime:      "RFCTYPE_TIME",
	TypeStructure: "RFCTYPE_STRUCTURE",
	TypeTable:     "RFCTYPE_TABLE",
}

// aliases accepted by ParseType besides the SDK names
var typeAliases = map[string]Type{
	"CHAR":      TypeChar,
	"C":         TypeChar,
	"NUMC":      TypeNum,
	"NUM":       TypeNum,
	"N":         TypeNum,
	"BYTE":      TypeByte,
	"RAW":       TypeByte,
	"X":         TypeByte,
	"XSTRING":   TypeXString,
	"STRING":    TypeString,
	"BCD":       TypeBCD,
	"DEC":       TypeBCD,
	"P":         TypeBCD,
	"INT1":      TypeInt1,
	"INT2":      TypeInt2,
	"INT4":      TypeInt4,
	"INT":       TypeInt4,
	"I":         TypeInt4,
	"FLOAT":     TypeFloat,
	"FLTP":      TypeFloat,
	"F":         TypeFloat,
	"DECF16":    TypeDecF16,
	"DECF34":    TypeDecF34,
	"DATE":      TypeDate,
	"DATS":      TypeDate,
	"D":         TypeDate,
	"TIME":      TypeTime,
	"TIMS":      TypeTime,
	"T":         TypeTime,
	"STRUCTURE": TypeStructure,
	"TABLE":     TypeTable,
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "RFCTYPE_UNKNOWN"
}

// Valid reports whether t is a known type tag
func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

// IsScalar reports whether values of t are stored as a single image
func (t Type) IsScalar() bool {
	return t.Valid() && t != TypeStructure && t != TypeTable
}

// IsText reports whether the image holds SAP unicode characters
func (t Type) IsText() bool {
	switch t {
	case TypeChar, TypeNum, TypeString, TypeDate, TypeTime:
		return true
	}
	return false
}

// NeedsLength reports whether a declared length is mandatory
func (t Type) NeedsLength() bool {
	switch t {
	case TypeChar, TypeNum, TypeByte, TypeBCD:
		return true
	}
	return false
}

// IsVariable reports whether the image has no fixed width
func (t Type) IsVariable() bool {
	return t == TypeString || t == TypeXString
}

// ParseType accepts SDK names (RFCTYPE_CHAR) and short names (CHAR, NUMC, ...).
func ParseType(s string) (Type, bool) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == u {
			return Type(i), true
		}
	}
	if t, ok := typeAliases[u]; ok {
		return t, true
	}
	if u == "RFCTYPE_INT4" {
		return TypeInt4, true
	}
	return 0, false
}

// Direction tells in which buffer a top-level parameter travels
type Direction uint8

const (
	DirImport Direction = iota + 1
	DirExport
	DirChanging
	DirTables
)

var directionNames = [...]string{
	DirImport:   "RFC_IMPORT",
	DirExport:   "RFC_EXPORT",
	DirChanging: "RFC_CHANGING",
	DirTables:   "RFC_TABLES",
}

func (d Direction) String() string {
	if d > 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "RFC_DIRECTION_UNKNOWN"
}

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d > 0 && int(d) < len(directionNames)
}

// Sent reports whether the parameter travels client to server
func (d Direction) Sent() bool {
	return d == DirImport || d == DirChanging || d == DirTables
}

// Received reports whether the parameter travels server to client
func (d Direction) Received() bool {
	return d == DirExport || d == DirChanging || d == DirTables
}

// ParseDirection accepts RFC_IMPORT or IMPORT style names.
func ParseDirection(s string) (Direction, bool) {
	u := strings.ToUpper(strings.TrimSpace(s))
	u = strings.TrimPrefix(u, "RFC_")
	switch u {
	case "IMPORT":
		return DirImport, true
	case "EXPORT":
		return DirExport, true
	case "CHANGING":
		return DirChanging, true
	case "TABLES":
		return DirTables, true
	}
	return 0, false
}
