// Package packed implements ABAP packed decimal (BCD) images.
//
// A field of length n bytes holds 2n-1 decimal digits followed by a sign
// nibble (0xC positive, 0xD negative). The scale is not stored; it comes
// from the field's declared decimals.
package packed

import (
	"errors"
	"strings"
)

var (
	ErrSyntax   = errors.New("packed: not a decimal number")
	ErrOverflow = errors.New("packed: too many digits")
	ErrNibble   = errors.New("packed: invalid nibble")
)

const (
	signPlus  = 0x0C
	signMinus = 0x0D
)

// Digits returns the digit capacity of a length byte field
func Digits(length int) int {
	if length <= 0 {
		return 0
	}
	return 2*length - 1
}

// Encode packs decimal text into length bytes with the given scale.
// Extra fractional digits are rounded half away from zero.
func Encode(text string, length, decimals int) ([]byte, error) {
	neg, intPart, frac, ok := split(text)
	if !ok {
		return nil, ErrSyntax
	}
	intPart, frac = round(intPart, frac, decimals)
	for len(frac) < decimals {
		frac += "0"
	}

	digits := strings.TrimLeft(intPart+frac, "0")
	capacity := Digits(length)
	if len(digits) > capacity {
		return nil, ErrOverflow
	}
	if digits == "" {
		neg = false
	}

	out := make([]byte, length)
	pad := capacity - len(digits)
	for i := 0; i < capacity; i++ {
		var d byte
		if i >= pad {
			d = digits[i-pad] - '0'
		}
		setNibble(out, i, d)
	}
	sign := byte(signPlus)
	if neg {
		sign = signMinus
	}
	setNibble(out, capacity, sign)
	return out, nil
}

// Decode unpacks image into canonical decimal text with exactly decimals fractional digits.
func Decode(image []byte, decimals int) (string, error) {
	capacity := Digits(len(image))
	if capacity == 0 {
		return "", ErrNibble
	}
	digits := make([]byte, 0, capacity)
	for i := 0; i < capacity; i++ {
		d := nibble(image, i)
		if d > 9 {
			return "", ErrNibble
		}
		digits = append(digits, '0'+d)
	}

	neg := false
	switch nibble(image, capacity) {
	case 0x0D, 0x0B:
		neg = true
	case 0x0C, 0x0A, 0x0E, 0x0F:
	default:
		return "", ErrNibble
	}

	s := string(digits)
	if decimals > len(s) {
		s = strings.Repeat("0", decimals-len(s)) + s
	}
	intPart := strings.TrimLeft(s[:len(s)-decimals], "0")
	if intPart == "" {
		intPart = "0"
	}
	frac := s[len(s)-decimals:]

	if strings.Trim(intPart+frac, "0") == "" {
		neg = false
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if decimals > 0 {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}

// Zero returns the image of 0 for a length byte field
func Zero(length int) []byte {
	out := make([]byte, length)
	if length > 0 {
		out[length-1] = signPlus
	}
	return out
}

func split(text string) (neg bool, intPart, frac string, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return false, "", "", false
	}
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intPart, frac, _ = strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return false, "", "", false
	}
	if !allDigits(intPart) || !allDigits(frac) {
		return false, "", "", false
	}
	return neg, intPart, frac, true
}

func round(intPart, frac string, decimals int) (string, string) {
	if len(frac) <= decimals {
		return intPart, frac
	}
	up := frac[decimals] >= '5'
	frac = frac[:decimals]
	if !up {
		return intPart, frac
	}
	n := increment(intPart + frac)
	cut := len(n) - decimals
	return n[:cut], n[cut:]
}

// increment adds one to a digit string, growing it on carry
func increment(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func nibble(b []byte, i int) byte {
	if i%2 == 0 {
		return b[i/2] >> 4
	}
	return b[i/2] & 0x0F
}

func setNibble(b []byte, i int, v byte) {
	if i%2 == 0 {
		b[i/2] = b[i/2]&0x0F | v<<4
	} else {
		b[i/2] = b[i/2]&0xF0 | v&0x0F
	}
}
