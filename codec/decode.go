package codec

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/nwrfc/codec/internal/packed"
	"github.com/wippyai/nwrfc/errors"
)

// Decode converts a scalar image back into its host value.
// It fails only on malformed images.
func Decode(t Type, length, decimals uint, image []byte) (any, error) {
	if w, fixed := Width(t, length); fixed && len(image) != w {
		return nil, badWidth(t, w, len(image))
	}

	switch t {
	case TypeChar:
		s, err := fromUnits(image)
		if err != nil {
			return nil, invalid(t, err)
		}
		return strings.TrimRight(s, " "), nil
	case TypeNum:
		s, ok := unitsASCII(image)
		if !ok {
			return nil, invalid(t, nil)
		}
		return s, nil
	case TypeByte, TypeXString:
		return append([]byte(nil), image...), nil
	case TypeString:
		if len(image)%unitSize != 0 {
			return nil, invalid(t, nil)
		}
		s, err := fromUnits(image)
		if err != nil {
			return nil, invalid(t, err)
		}
		return s, nil
	case TypeBCD:
		text, err := packed.Decode(image, int(decimals))
		if err != nil {
			return nil, invalid(t, err)
		}
		if decimals == 0 {
			if n, err := strconv.ParseInt(text, 10, 64); err == nil {
				return n, nil
			}
			return text, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, invalid(t, err)
		}
		return f, nil
	case TypeInt1:
		return image[0], nil
	case TypeInt2:
		return int16(binary.LittleEndian.Uint16(image)), nil
	case TypeInt4:
		return int32(binary.LittleEndian.Uint32(image)), nil
	case TypeFloat:
		return math.Float64frombits(binary.LittleEndian.Uint64(image)), nil
	case TypeDecF16, TypeDecF34:
		for _, b := range image {
			if b != 0 {
				return nil, errors.New(errors.PhaseDecode, errors.KindUnsupported).
					AbapType(t.String()).
					Detail("decimal floating point values are not supported").
					Build()
			}
		}
		return nil, nil
	case TypeDate:
		digits, ok := unitsASCII(image)
		if !ok {
			return nil, invalid(t, nil)
		}
		d, ok := dateValue(digits)
		if !ok {
			return nil, invalid(t, nil)
		}
		return d, nil
	case TypeTime:
		digits, ok := unitsASCII(image)
		if !ok {
			return nil, invalid(t, nil)
		}
		tm, ok := timeValue(digits)
		if !ok {
			return nil, invalid(t, nil)
		}
		return tm, nil
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		AbapType(t.String()).
		Detail("not a scalar type").
		Build()
}

// DecodeText renders an image as text. BCD values keep their exact
// decimal digits; other types use their natural text form.
func DecodeText(t Type, length, decimals uint, image []byte) (string, error) {
	if t == TypeBCD {
		if w, _ := Width(t, length); len(image) != w {
			return "", badWidth(t, w, len(image))
		}
		text, err := packed.Decode(image, int(decimals))
		if err != nil {
			return "", invalid(t, err)
		}
		return text, nil
	}

	v, err := Decode(t, length, decimals, image)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return "", nil
	}
	switch t {
	case TypeDate:
		if digits, ok := unitsASCII(image); ok {
			return digits, nil
		}
	case TypeTime:
		if digits, ok := unitsASCII(image); ok {
			return digits, nil
		}
	case TypeFloat:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil
	case TypeInt1:
		return strconv.FormatUint(uint64(v.(uint8)), 10), nil
	case TypeInt2:
		return strconv.FormatInt(int64(v.(int16)), 10), nil
	case TypeInt4:
		return strconv.FormatInt(int64(v.(int32)), 10), nil
	}
	return "", invalid(t, nil)
}

func badWidth(t Type, want, got int) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		AbapType(t.String()).
		Detail("image is %d bytes, expected %d", got, want).
		Build()
}

func invalid(t Type, cause error) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		AbapType(t.String()).
		Detail("malformed image").
		Cause(cause).
		Build()
}
