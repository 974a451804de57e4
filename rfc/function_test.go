package rfc

import (
	"testing"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
)

func kindOf(err error) errors.Kind {
	if e, ok := err.(*errors.Error); ok {
		return e.Kind
	}
	return ""
}

func rowParams() []Parameter {
	return []Parameter{
		{Name: "C", Type: codec.TypeChar, Length: 1},
		{Name: "I", Type: codec.TypeInt4},
		{Name: "STR", Type: codec.TypeString},
		{Name: "XSTR", Type: codec.TypeXString},
	}
}

func testFunction(t *testing.T) *Function {
	t.Helper()
	fn := NewFunction("z_test")
	params := []Parameter{
		{Name: "TEXT", Type: codec.TypeChar, Length: 4, Direction: codec.Import},
		{Name: "AMOUNT", Type: codec.TypeBCD, Length: 7, Decimals: 3, Direction: codec.Import},
		{Name: "ECHO", Type: codec.TypeChar, Length: 4, Direction: codec.Export},
		{Name: "COUNTER", Type: codec.TypeInt4, Direction: codec.Changing},
		{Name: "DATA", Type: codec.TypeStructure, Direction: codec.Export, TypeName: "ztest_data", Children: []Parameter{
			{Name: "FLAG", Type: codec.TypeChar, Length: 1},
			{Name: "NUM", Type: codec.TypeInt2},
			{Name: "DAY", Type: codec.TypeDate},
		}},
		{Name: "ROWS", Type: codec.TypeTable, Direction: codec.Tables, Children: rowParams()},
	}
	for _, p := range params {
		if err := fn.AddParameter(p); err != nil {
			t.Fatalf("AddParameter(%s) failed: %v", p.Name, err)
		}
	}
	return fn
}

func TestManualFunction(t *testing.T) {
	fn := NewFunction("MY_FUNCTION")
	err := fn.AddParameter(Parameter{Name: "MY_PARAM", Type: codec.TypeChar, Length: 20, Direction: codec.Import})
	if err != nil {
		t.Fatal(err)
	}
	if fn.ParameterCount() != 1 {
		t.Errorf("ParameterCount() = %d, want 1", fn.ParameterCount())
	}
	if fn.Name() != "MY_FUNCTION" {
		t.Errorf("Name() = %q", fn.Name())
	}
	p, ok := fn.Parameter("my_param")
	if !ok || p.Length != 20 || p.Direction != codec.Import {
		t.Errorf("Parameter(my_param) = %+v, %v", p, ok)
	}
}

func TestAddParameterDuplicate(t *testing.T) {
	fn := NewFunction("F")
	if err := fn.AddParameter(Parameter{Name: "A", Type: codec.TypeInt4, Direction: codec.Import}); err != nil {
		t.Fatal(err)
	}
	err := fn.AddParameter(Parameter{Name: "a", Type: codec.TypeInt1, Direction: codec.Export})
	if kindOf(err) != errors.KindDuplicateName {
		t.Fatalf("expected duplicate_name, got %v", err)
	}
	if fn.ParameterCount() != 1 {
		t.Errorf("rejected parameter was added")
	}
}

func TestAddParameterInvalid(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		kind  errors.Kind
	}{
		{"empty name", Parameter{Type: codec.TypeInt4, Direction: codec.Import}, errors.KindInvalidInput},
		{"char without length", Parameter{Name: "P", Type: codec.TypeChar, Direction: codec.Import}, errors.KindInvalidInput},
		{"bcd without length", Parameter{Name: "P", Type: codec.TypeBCD, Direction: codec.Import}, errors.KindInvalidInput},
		{"decimals on int", Parameter{Name: "P", Type: codec.TypeInt4, Decimals: 2, Direction: codec.Import}, errors.KindInvalidInput},
		{"too many decimals", Parameter{Name: "P", Type: codec.TypeBCD, Length: 2, Decimals: 4, Direction: codec.Import}, errors.KindInvalidInput},
		{"no direction", Parameter{Name: "P", Type: codec.TypeInt4}, errors.KindInvalidInput},
		{"tables not a table", Parameter{Name: "P", Type: codec.TypeInt4, Direction: codec.Tables}, errors.KindInvalidInput},
		{"structure without fields", Parameter{Name: "P", Type: codec.TypeStructure, Direction: codec.Import}, errors.KindInvalidInput},
		{"scalar with fields", Parameter{Name: "P", Type: codec.TypeInt4, Direction: codec.Import, Children: rowParams()}, errors.KindInvalidInput},
		{"duplicate field", Parameter{Name: "P", Type: codec.TypeTable, Direction: codec.Tables, Children: []Parameter{
			{Name: "X", Type: codec.TypeInt4},
			{Name: "x", Type: codec.TypeInt2},
		}}, errors.KindDuplicateName},
		{"bad nested field", Parameter{Name: "P", Type: codec.TypeStructure, Direction: codec.Export, Children: []Parameter{
			{Name: "X", Type: codec.TypeNum},
		}}, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := NewFunction("F")
			err := fn.AddParameter(tt.param)
			if kindOf(err) != tt.kind {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestXStringLengthOptional(t *testing.T) {
	fn := NewFunction("F")
	if err := fn.AddParameter(Parameter{Name: "X", Type: codec.TypeXString, Direction: codec.Import}); err != nil {
		t.Fatalf("XSTRING without length should be accepted: %v", err)
	}
}

func TestSealedFunction(t *testing.T) {
	fn := testFunction(t)
	if fn.Sealed() {
		t.Fatal("fresh function should not be sealed")
	}
	fn.NewCall()
	if !fn.Sealed() {
		t.Fatal("NewCall should seal the function")
	}
	err := fn.AddParameter(Parameter{Name: "LATE", Type: codec.TypeInt4, Direction: codec.Import})
	if kindOf(err) != errors.KindIllegalState {
		t.Errorf("expected illegal_state, got %v", err)
	}
}

func TestParametersIsCopy(t *testing.T) {
	fn := testFunction(t)
	params := fn.Parameters()
	params[0].Name = "CHANGED"
	params[4].Children[0].Name = "CHANGED"

	if p, _ := fn.Parameter("DATA"); p.Children[0].Name != "FLAG" {
		t.Errorf("Parameters() leaked internal state")
	}
	if _, ok := fn.Parameter("TEXT"); !ok {
		t.Errorf("Parameters() leaked internal state")
	}
	if p, _ := fn.Parameter("DATA"); p.TypeName != "ZTEST_DATA" {
		t.Errorf("TypeName = %q, want upper case", p.TypeName)
	}
}

func TestFunctionFields(t *testing.T) {
	fn := testFunction(t)
	fields := fn.Fields()
	if len(fields) != 6 {
		t.Fatalf("got %d fields", len(fields))
	}
	if fields[0].Name != "TEXT" || fields[0].UcLength != 8 || fields[0].NucLength != 4 {
		t.Errorf("TEXT = %+v", fields[0])
	}
	if fields[1].Decimals != 3 || fields[1].Direction != codec.Import {
		t.Errorf("AMOUNT = %+v", fields[1])
	}
	if len(fields[5].Children) != 4 {
		t.Errorf("ROWS children = %+v", fields[5].Children)
	}
}

func TestBind(t *testing.T) {
	fn := testFunction(t)
	bound := fn.Bind(echoCaller(fn))
	if bound.Caller() == nil || fn.Caller() != nil {
		t.Fatal("Bind must only affect the copy")
	}
	if !fn.Sealed() || !bound.Sealed() {
		t.Error("Bind seals both functions")
	}
	if bound.ParameterCount() != fn.ParameterCount() {
		t.Error("bound copy lost parameters")
	}
}
