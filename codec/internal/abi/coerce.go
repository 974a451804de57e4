package abi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// CoerceToInt64 accepts every Go integer type, integral floats and decimal integer text.
func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	case string:
		// base 10 only: ABAP integers never carry radix prefixes
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err == nil {
			return n, true
		}
	case fmt.Stringer:
		return CoerceToInt64(v.String())
	}
	return 0, false
}

// CoerceToFloat64 accepts every Go numeric type and numeric text.
func CoerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f, true
		}
		return 0, false
	case fmt.Stringer:
		return CoerceToFloat64(v.String())
	}
	if n, ok := CoerceToInt64(value); ok {
		return float64(n), true
	}
	if u, ok := value.(uint64); ok {
		return float64(u), true
	}
	return 0, false
}

// CoerceToDecimal renders value as plain decimal text: optional sign, digits,
// optional fraction. Floats keep their shortest exact digits; scaling is
// left to the packed encoder so floats and text round alike.
func CoerceToDecimal(value any) (string, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 32), true
	case string:
		s := strings.TrimSpace(v)
		if IsDecimalText(s) {
			return s, true
		}
		return "", false
	case uint64:
		return strconv.FormatUint(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case fmt.Stringer:
		return CoerceToDecimal(v.String())
	}
	if n, ok := CoerceToInt64(value); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// CoerceToText converts scalar host values to text for character types.
// Byte slices are taken as UTF-8; nil becomes the empty string.
func CoerceToText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case nil:
		return "", true
	case time.Time, bool, map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return s, true
}

// CoerceToBytes accepts byte slices and strings
func CoerceToBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case nil:
		return nil, true
	}
	return nil, false
}
