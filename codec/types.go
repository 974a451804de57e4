package codec

import (
	"github.com/wippyai/nwrfc/codec/internal/types"
)

type Type = types.Type

const (
	TypeChar      = types.TypeChar
	TypeNum       = types.TypeNum
	TypeByte      = types.TypeByte
	TypeXString   = types.TypeXString
	TypeString    = types.TypeString
	TypeBCD       = types.TypeBCD
	TypeInt1      = types.TypeInt1
	TypeInt2      = types.TypeInt2
	TypeInt4      = types.TypeInt4
	TypeFloat     = types.TypeFloat
	TypeDecF16    = types.TypeDecF16
	TypeDecF34    = types.TypeDecF34
	TypeDate      = types.TypeDate
	TypeTime      = types.TypeTime
	TypeStructure = types.TypeStructure
	TypeTable     = types.TypeTable
)

type Direction = types.Direction

const (
	Import   = types.DirImport
	Export   = types.DirExport
	Changing = types.DirChanging
	Tables   = types.DirTables
)

var (
	ParseType      = types.ParseType
	ParseDirection = types.ParseDirection
)

// Range limits of the integer types
const (
	MinInt1 = 0
	MaxInt1 = 255
	MinInt2 = -32767
	MaxInt2 = 32767
	MinInt4 = -2147483648
	MaxInt4 = 2147483647
)
