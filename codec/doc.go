// Package codec converts between Go host values and ABAP scalar images.
//
// Every scalar field of an RFC parameter is stored as its image: the bytes
// the gateway buffer carries for that ABAP type. Encode turns a host value
// into an image, Decode turns an image back into a host value:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go value ←→ [codec] ←→ ABAP image (fixed or variable)    │
//	└──────────────────────────────────────────────────────────┘
//
// # Images
//
//	Type      Image                          Host value
//	────────────────────────────────────────────────────────────
//	CHAR n    n UTF-16LE units, blank fill   string (trailing blanks trimmed)
//	NUMC n    n UTF-16LE digits, zero fill   string of n digits
//	BYTE n    n bytes, NUL fill              []byte of n bytes
//	STRING    UTF-16LE, variable             string
//	XSTRING   bytes, variable                []byte
//	BCD n     packed decimal, n bytes        int64 (decimals 0) or float64
//	INT1      1 byte unsigned                uint8
//	INT2      2 bytes LE signed              int16 (−32767..32767)
//	INT4      4 bytes LE signed              int32
//	FLOAT     8 bytes LE IEEE-754            float64
//	DATE      8 UTF-16LE digits YYYYMMDD     Date
//	TIME      6 UTF-16LE digits HHMMSS       time.Time (0000-01-01 UTC)
//	DECF16/34 8/16 bytes                     not supported
//
// Over-long values for CHAR, NUMC and BYTE are truncated to the declared
// length without error. Values that cannot be coerced fail with
// errors.KindTypeMismatch; out of range numbers with errors.KindOverflow.
//
// # Date and time inputs
//
// DATE accepts "YYYYMMDD", "YYYY-MM-DD", time.Time and Date. TIME accepts
// "HHMMSS", "HH:MM:SS", time.Time and TimeOfDay. time.Time values are read
// in their own location. The initial date 00000000 decodes to the zero
// Date, whose Format("20060102") gives back the stored digits.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package codec
