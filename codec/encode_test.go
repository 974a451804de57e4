package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/wippyai/nwrfc/errors"
)

func kindOf(err error) errors.Kind {
	if e, ok := err.(*errors.Error); ok {
		return e.Kind
	}
	return ""
}

func TestEncodeDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		length   uint
		decimals uint
		in       any
		want     any
	}{
		{"char truncates", TypeChar, 4, 0, "abcdef", "abcd"},
		{"char pads", TypeChar, 4, 0, "ab", "ab"},
		{"char from int", TypeChar, 5, 0, 42, "42"},
		{"char from bytes", TypeChar, 3, 0, []byte("xyz"), "xyz"},
		{"char umlaut", TypeChar, 3, 0, "äöü", "äöü"},
		{"numc zero fill", TypeNum, 5, 0, "42", "00042"},
		{"numc truncates", TypeNum, 5, 0, "1234567", "12345"},
		{"numc from int", TypeNum, 4, 0, 7, "0007"},
		{"numc empty", TypeNum, 3, 0, "", "000"},
		{"string", TypeString, 0, 0, "hello wörld", "hello wörld"},
		{"int1 max", TypeInt1, 0, 0, 255, uint8(255)},
		{"int1 zero", TypeInt1, 0, 0, "0", uint8(0)},
		{"int2 max", TypeInt2, 0, 0, 32767, int16(32767)},
		{"int2 min", TypeInt2, 0, 0, -32767, int16(-32767)},
		{"int4 max", TypeInt4, 0, 0, int64(2147483647), int32(2147483647)},
		{"int4 min", TypeInt4, 0, 0, -2147483648, int32(-2147483648)},
		{"int4 text", TypeInt4, 0, 0, "12", int32(12)},
		{"int4 integral float", TypeInt4, 0, 0, 3.0, int32(3)},
		{"float", TypeFloat, 0, 0, 10.9154, 10.9154},
		{"float text", TypeFloat, 0, 0, "2.5", 2.5},
		{"bcd integer", TypeBCD, 6, 0, 12392, int64(12392)},
		{"bcd negative", TypeBCD, 6, 0, -15, int64(-15)},
		{"bcd decimals", TypeBCD, 7, 3, 12392.341, 12392.341},
		{"bcd decimal text", TypeBCD, 7, 3, "12392.341", 12392.341},
		{"bcd rounds", TypeBCD, 4, 2, "1.005", 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := Encode(tt.typ, tt.length, tt.decimals, tt.in)
			if err != nil {
				t.Fatalf("Encode(%v) failed: %v", tt.in, err)
			}
			got, err := Decode(tt.typ, tt.length, tt.decimals, image)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		length uint
		in     any
		kind   errors.Kind
	}{
		{"int1 negative", TypeInt1, 0, -1, errors.KindOverflow},
		{"int1 too big", TypeInt1, 0, 256, errors.KindOverflow},
		{"int2 lowest rejected", TypeInt2, 0, -32768, errors.KindOverflow},
		{"int2 too big", TypeInt2, 0, 40000, errors.KindOverflow},
		{"int4 too big", TypeInt4, 0, int64(2147483648), errors.KindOverflow},
		{"int4 huge text", TypeInt4, 0, "99999999999999999999", errors.KindOverflow},
		{"int4 word", TypeInt4, 0, "twelve", errors.KindTypeMismatch},
		{"int4 fraction", TypeInt4, 0, 1.5, errors.KindTypeMismatch},
		{"int4 bool", TypeInt4, 0, true, errors.KindTypeMismatch},
		{"numc letters", TypeNum, 4, "12a", errors.KindTypeMismatch},
		{"numc negative", TypeNum, 4, -3, errors.KindOverflow},
		{"char time", TypeChar, 10, time.Now(), errors.KindTypeMismatch},
		{"byte int", TypeByte, 2, 7, errors.KindTypeMismatch},
		{"xstring map", TypeXString, 0, map[string]any{}, errors.KindTypeMismatch},
		{"bcd overflow", TypeBCD, 2, 1234, errors.KindOverflow},
		{"bcd word", TypeBCD, 4, "1,5", errors.KindTypeMismatch},
		{"float word", TypeFloat, 0, "pi", errors.KindTypeMismatch},
		{"date invalid", TypeDate, 0, "20160230", errors.KindTypeMismatch},
		{"date int", TypeDate, 0, 20160101, errors.KindTypeMismatch},
		{"time invalid", TypeTime, 0, "250000", errors.KindTypeMismatch},
		{"structure", TypeStructure, 0, "x", errors.KindTypeMismatch},
		{"decf16", TypeDecF16, 0, 1.5, errors.KindUnsupported},
		{"decf34", TypeDecF34, 0, "1", errors.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.typ, tt.length, 0, tt.in)
			if err == nil {
				t.Fatalf("Encode(%v) should fail", tt.in)
			}
			if got := kindOf(err); got != tt.kind {
				t.Errorf("kind = %q, want %q (%v)", got, tt.kind, err)
			}
			if tt.kind != errors.KindUnsupported && !errors.IsTypeMismatch(err) {
				t.Errorf("IsTypeMismatch(%v) = false", err)
			}
		})
	}
}

func TestEncodeCharImage(t *testing.T) {
	image, err := Encode(TypeChar, 4, 0, "ab")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'a', 0, 'b', 0, ' ', 0, ' ', 0}
	if !bytes.Equal(image, want) {
		t.Errorf("image = %v, want %v", image, want)
	}
}

func TestEncodeCharSurrogateCut(t *testing.T) {
	// U+1F600 needs two units; a cut after the first leaves a blank
	image, err := Encode(TypeChar, 2, 0, "a\U0001F600")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(TypeChar, 2, 0, image)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestEncodeByte(t *testing.T) {
	image, err := Encode(TypeByte, 3, 0, []byte{0x01})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(image, []byte{0x01, 0, 0}) {
		t.Errorf("image = %v", image)
	}

	image, err = Encode(TypeByte, 2, 0, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(TypeByte, 2, 0, image)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.([]byte), []byte{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestXStringRoundTrip(t *testing.T) {
	in := []byte("\x01\xA1\xB2\xDC\xCD\xE1\xE0\xFF")
	image, err := Encode(TypeXString, 0, 0, in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 0x02 // the image must not alias the input
	got, err := Decode(TypeXString, 0, 0, image)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("\x01\xA1\xB2\xDC\xCD\xE1\xE0\xFF")
	if !bytes.Equal(got.([]byte), want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		length   uint
		decimals uint
		in       any
		want     string
	}{
		{"bcd exact", TypeBCD, 7, 3, "12392.341", "12392.341"},
		{"bcd keeps zeros", TypeBCD, 4, 2, 5, "5.00"},
		{"bcd huge", TypeBCD, 16, 0, "123456789012345678901234567890", "123456789012345678901234567890"},
		{"int2", TypeInt2, 0, 0, -12, "-12"},
		{"int1", TypeInt1, 0, 0, 7, "7"},
		{"date", TypeDate, 0, 0, "2016-12-12", "20161212"},
		{"time", TypeTime, 0, 0, "13:45:00", "134500"},
		{"char", TypeChar, 6, 0, "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := Encode(tt.typ, tt.length, tt.decimals, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DecodeText(tt.typ, tt.length, tt.decimals, image)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBCDHugeDecodesAsText(t *testing.T) {
	image, err := Encode(TypeBCD, 16, 0, "123456789012345678901234567890")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(TypeBCD, 16, 0, image)
	if err != nil {
		t.Fatal(err)
	}
	if got != "123456789012345678901234567890" {
		t.Errorf("got %#v", got)
	}
}

func TestBCDFloatRoundsLikeText(t *testing.T) {
	tests := []struct {
		float any
		text  string
		want  string
	}{
		{0.125, "0.125", "0.13"},
		{-0.125, "-0.125", "-0.13"},
		{2.675, "2.675", "2.68"},
		{1.005, "1.005", "1.01"},
		{float32(0.125), "0.125", "0.13"},
		{12.5, "12.5", "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			fromFloat, err := Encode(TypeBCD, 4, 2, tt.float)
			if err != nil {
				t.Fatal(err)
			}
			fromText, err := Encode(TypeBCD, 4, 2, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(fromFloat, fromText) {
				t.Errorf("float image % x, text image % x", fromFloat, fromText)
			}
			got, err := DecodeText(TypeBCD, 4, 2, fromFloat)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		length uint
		image  []byte
	}{
		{"int4 short", TypeInt4, 0, []byte{1, 2}},
		{"char odd", TypeChar, 2, []byte{'a', 0, 'b'}},
		{"bcd bad nibble", TypeBCD, 2, []byte{0xAB, 0x1C}},
		{"numc non digit", TypeNum, 2, []byte{'1', 0, 'x', 0x30}},
		{"date wrong width", TypeDate, 0, []byte{'2', 0}},
		{"date not a date", TypeDate, 0, asciiUnits("20161332")},
		{"decf16 non zero", TypeDecF16, 0, []byte{1, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.typ, tt.length, 0, tt.image)
			if err == nil {
				t.Fatal("Decode should fail")
			}
		})
	}
}
