package codec

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// sapUC is the SAP unicode code page (4103): UTF-16 little endian without BOM.
var sapUC = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

const unitSize = 2

var blankUnit = [unitSize]byte{' ', 0}

func toUnits(s string) ([]byte, error) {
	return sapUC.NewEncoder().Bytes([]byte(s))
}

func fromUnits(b []byte) (string, error) {
	out, err := sapUC.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// fitUnits truncates or pads an encoded text image to n units.
// A high surrogate left dangling by the cut becomes fill.
func fitUnits(b []byte, n int, fill [unitSize]byte) []byte {
	size := n * unitSize
	if len(b) > size {
		b = b[:size]
		if n > 0 {
			last := binary.LittleEndian.Uint16(b[size-unitSize:])
			if last >= 0xD800 && last <= 0xDBFF {
				b[size-2], b[size-1] = fill[0], fill[1]
			}
		}
		return b
	}
	out := make([]byte, size)
	copy(out, b)
	for i := len(b); i < size; i += unitSize {
		out[i], out[i+1] = fill[0], fill[1]
	}
	return out
}

// asciiUnits encodes pure ASCII text, used for digit images
func asciiUnits(s string) []byte {
	out := make([]byte, len(s)*unitSize)
	for i := 0; i < len(s); i++ {
		out[i*unitSize] = s[i]
	}
	return out
}

// unitsASCII decodes an image known to hold ASCII, reporting false otherwise
func unitsASCII(b []byte) (string, bool) {
	if len(b)%unitSize != 0 {
		return "", false
	}
	var sb strings.Builder
	sb.Grow(len(b) / unitSize)
	for i := 0; i < len(b); i += unitSize {
		if b[i+1] != 0 || b[i] > 0x7F {
			return "", false
		}
		sb.WriteByte(b[i])
	}
	return sb.String(), true
}
