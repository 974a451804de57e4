package codec

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/nwrfc/codec/internal/abi"
	"github.com/wippyai/nwrfc/codec/internal/packed"
	"github.com/wippyai/nwrfc/errors"
)

// Encode converts a host value into the image of an ABAP scalar.
// length is in characters for CHAR and NUMC, in bytes for BYTE and BCD.
func Encode(t Type, length, decimals uint, v any) ([]byte, error) {
	switch t {
	case TypeChar:
		return encodeChar(length, v)
	case TypeNum:
		return encodeNum(length, v)
	case TypeByte:
		return encodeByte(length, v)
	case TypeString:
		return encodeString(v)
	case TypeXString:
		b, ok := abi.CoerceToBytes(v)
		if !ok {
			return nil, mismatch(t, v)
		}
		return append([]byte(nil), b...), nil
	case TypeBCD:
		return encodeBCD(length, decimals, v)
	case TypeInt1:
		n, err := encodeInt(t, v, MinInt1, MaxInt1)
		if err != nil {
			return nil, err
		}
		return []byte{byte(n)}, nil
	case TypeInt2:
		n, err := encodeInt(t, v, MinInt2, MaxInt2)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint16(nil, uint16(int16(n))), nil
	case TypeInt4:
		n, err := encodeInt(t, v, MinInt4, MaxInt4)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(n))), nil
	case TypeFloat:
		f, ok := abi.CoerceToFloat64(v)
		if !ok {
			return nil, mismatch(t, v)
		}
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f)), nil
	case TypeDecF16, TypeDecF34:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			AbapType(t.String()).
			Detail("decimal floating point values are not supported").
			Build()
	case TypeDate:
		digits, ok := dateDigits(v)
		if !ok {
			return nil, mismatch(t, v)
		}
		return asciiUnits(digits), nil
	case TypeTime:
		digits, ok := timeDigits(v)
		if !ok {
			return nil, mismatch(t, v)
		}
		return asciiUnits(digits), nil
	case TypeStructure, TypeTable:
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			AbapType(t.String()).
			Detail("not a scalar type").
			Build()
	}
	return nil, errors.Unsupported(errors.PhaseEncode, "unknown ABAP type "+t.String())
}

func encodeChar(length uint, v any) ([]byte, error) {
	s, ok := abi.CoerceToText(v)
	if !ok {
		return nil, mismatch(TypeChar, v)
	}
	units, err := toUnits(s)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			GoType(abi.TypeName(v)).
			AbapType(TypeChar.String()).
			Cause(err).
			Build()
	}
	return fitUnits(units, int(length), blankUnit), nil
}

func encodeNum(length uint, v any) ([]byte, error) {
	var digits string
	switch x := v.(type) {
	case string:
		digits = strings.TrimSpace(x)
		if digits != "" && !abi.IsDigits(digits) {
			return nil, mismatch(TypeNum, v)
		}
	case nil:
	default:
		n, ok := abi.CoerceToInt64(v)
		if !ok {
			if u, isU := v.(uint64); isU {
				digits = strconv.FormatUint(u, 10)
				break
			}
			return nil, mismatch(TypeNum, v)
		}
		if n < 0 {
			return nil, errors.Overflow(errors.PhaseEncode, nil, v, TypeNum.String())
		}
		digits = strconv.FormatInt(n, 10)
	}

	n := int(length)
	if len(digits) > n {
		digits = digits[:n]
	} else if len(digits) < n {
		digits = strings.Repeat("0", n-len(digits)) + digits
	}
	return asciiUnits(digits), nil
}

func encodeByte(length uint, v any) ([]byte, error) {
	b, ok := abi.CoerceToBytes(v)
	if !ok {
		return nil, mismatch(TypeByte, v)
	}
	out := make([]byte, length)
	copy(out, b)
	return out, nil
}

func encodeString(v any) ([]byte, error) {
	s, ok := abi.CoerceToText(v)
	if !ok {
		return nil, mismatch(TypeString, v)
	}
	if !utf8.ValidString(s) {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			GoType(abi.TypeName(v)).
			AbapType(TypeString.String()).
			Detail("invalid UTF-8").
			Build()
	}
	return toUnits(s)
}

func encodeBCD(length, decimals uint, v any) ([]byte, error) {
	text, ok := abi.CoerceToDecimal(v)
	if !ok {
		return nil, mismatch(TypeBCD, v)
	}
	image, err := packed.Encode(text, int(length), int(decimals))
	switch {
	case err == nil:
		return image, nil
	case err == packed.ErrOverflow:
		return nil, errors.Overflow(errors.PhaseEncode, nil, v, TypeBCD.String())
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			GoType(abi.TypeName(v)).
			AbapType(TypeBCD.String()).
			Cause(err).
			Build()
	}
}

func encodeInt(t Type, v any, lo, hi int64) (int64, error) {
	n, ok := abi.CoerceToInt64(v)
	if !ok {
		if isNumber(v) {
			return 0, errors.Overflow(errors.PhaseEncode, nil, v, t.String())
		}
		return 0, mismatch(t, v)
	}
	if n < lo || n > hi {
		return 0, errors.Overflow(errors.PhaseEncode, nil, v, t.String())
	}
	return n, nil
}

// isNumber reports values that are numeric but did not fit an int64
func isNumber(v any) bool {
	switch x := v.(type) {
	case uint64, uint:
		return true
	case float64:
		return x == math.Trunc(x) && !math.IsNaN(x)
	case float32:
		return float64(x) == math.Trunc(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s != "" && (s[0] == '-' || s[0] == '+') {
			s = s[1:]
		}
		return abi.IsDigits(s)
	}
	return false
}

func mismatch(t Type, v any) *errors.Error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(abi.TypeName(v)).
		AbapType(t.String()).
		Value(v).
		Build()
}
