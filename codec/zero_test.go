package codec

import (
	"testing"
)

func TestZero(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		length   uint
		decimals uint
		want     any
	}{
		{"char", TypeChar, 3, 0, ""},
		{"numc", TypeNum, 3, 0, "000"},
		{"string", TypeString, 0, 0, ""},
		{"int1", TypeInt1, 0, 0, uint8(0)},
		{"int2", TypeInt2, 0, 0, int16(0)},
		{"int4", TypeInt4, 0, 0, int32(0)},
		{"float", TypeFloat, 0, 0, 0.0},
		{"bcd", TypeBCD, 4, 0, int64(0)},
		{"bcd decimals", TypeBCD, 4, 2, 0.0},
		{"decf16", TypeDecF16, 0, 0, nil},
		{"decf34", TypeDecF34, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image := Zero(tt.typ, tt.length, tt.decimals)
			got, err := Decode(tt.typ, tt.length, tt.decimals, image)
			if err != nil {
				t.Fatalf("Decode(Zero) failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestZeroByte(t *testing.T) {
	got, err := Decode(TypeByte, 4, 0, Zero(TypeByte, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if b := got.([]byte); len(b) != 4 || b[0] != 0 || b[3] != 0 {
		t.Errorf("got %v", got)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		typ    Type
		length uint
		want   int
		fixed  bool
	}{
		{TypeChar, 4, 8, true},
		{TypeNum, 3, 6, true},
		{TypeByte, 3, 3, true},
		{TypeBCD, 7, 7, true},
		{TypeInt1, 0, 1, true},
		{TypeInt2, 0, 2, true},
		{TypeInt4, 0, 4, true},
		{TypeFloat, 0, 8, true},
		{TypeDecF34, 0, 16, true},
		{TypeDate, 0, 16, true},
		{TypeTime, 0, 12, true},
		{TypeString, 0, 0, false},
		{TypeXString, 0, 0, false},
		{TypeTable, 0, 0, false},
	}
	for _, tt := range tests {
		got, fixed := Width(tt.typ, tt.length)
		if got != tt.want || fixed != tt.fixed {
			t.Errorf("Width(%s, %d) = %d, %v; want %d, %v", tt.typ, tt.length, got, fixed, tt.want, tt.fixed)
		}
	}
}
