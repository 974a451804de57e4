package codec

import (
	"github.com/wippyai/nwrfc/codec/internal/packed"
)

// Width returns the image width in bytes of a fixed width type.
// Variable types (STRING, XSTRING) and aggregates report false.
func Width(t Type, length uint) (int, bool) {
	switch t {
	case TypeChar, TypeNum:
		return int(length) * unitSize, true
	case TypeByte, TypeBCD:
		return int(length), true
	case TypeInt1:
		return 1, true
	case TypeInt2:
		return 2, true
	case TypeInt4:
		return 4, true
	case TypeFloat, TypeDecF16:
		return 8, true
	case TypeDecF34:
		return 16, true
	case TypeDate:
		return len(dateLayout) * unitSize, true
	case TypeTime:
		return len(timeLayout) * unitSize, true
	}
	return 0, false
}

// Zero returns the initial image of a scalar type: blanks for CHAR,
// zero digits for NUMC, DATE and TIME, packed zero for BCD, zero bytes
// otherwise. Variable types start empty.
func Zero(t Type, length, decimals uint) []byte {
	switch t {
	case TypeChar:
		return fitUnits(nil, int(length), blankUnit)
	case TypeNum:
		return asciiUnits(zeros(int(length)))
	case TypeDate:
		return asciiUnits(initialDate)
	case TypeTime:
		return asciiUnits(initialTime)
	case TypeBCD:
		return packed.Zero(int(length))
	case TypeString, TypeXString:
		return []byte{}
	}
	if w, ok := Width(t, length); ok {
		return make([]byte, w)
	}
	return nil
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// Digits returns the number of decimal digits a BCD field of length bytes holds
func Digits(length uint) int {
	return packed.Digits(int(length))
}
