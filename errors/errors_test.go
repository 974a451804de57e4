package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseEncode,
				Kind:     KindTypeMismatch,
				Path:     []string{"IMPORTSTRUCT", "RFCINT4"},
				GoType:   "string",
				AbapType: "RFCTYPE_INT4",
				Detail:   "not an integer",
			},
			contains: []string{"[encode]", "type_mismatch", "IMPORTSTRUCT.RFCINT4", "string", "RFCTYPE_INT4", "not an integer"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInvoke,
				Kind:   KindInvalidData,
				Detail: "short buffer",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[invoke]", "invalid_data", "short buffer", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("sentinel without phase should match any phase")
	}
}

func TestIsTypeMismatch(t *testing.T) {
	if !IsTypeMismatch(TypeMismatch(PhaseEncode, nil, "string", "RFCTYPE_INT4")) {
		t.Error("type mismatch not recognized")
	}
	if !IsTypeMismatch(Overflow(PhaseEncode, nil, 40000, "RFCTYPE_INT2")) {
		t.Error("overflow should count as type mismatch")
	}
	if IsTypeMismatch(FieldUnknown(PhaseEncode, nil, "X")) {
		t.Error("unknown field is not a type mismatch")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("IS", "RFCINT1").
		GoType("string").
		AbapType("RFCTYPE_INT1").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "text").
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindTypeMismatch {
		t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[0] != "IS" || err.Path[1] != "RFCINT1" {
		t.Errorf("Path = %v, want [IS RFCINT1]", err.Path)
	}
	if err.GoType != "string" || err.AbapType != "RFCTYPE_INT1" {
		t.Errorf("GoType=%v AbapType=%v", err.GoType, err.AbapType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected integer, got text" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{TypeMismatch(PhaseEncode, []string{"f"}, "int", "RFCTYPE_STRING"), KindTypeMismatch},
		{Overflow(PhaseEncode, []string{"f"}, 300, "RFCTYPE_INT1"), KindOverflow},
		{FieldUnknown(PhaseEncode, nil, "NOPE"), KindFieldUnknown},
		{DuplicateName(nil, "MY_PARAM"), KindDuplicateName},
		{Unsupported(PhaseEncode, "DECF16"), KindUnsupported},
		{OutOfBounds(PhaseDecode, nil, 10, 5), KindOutOfBounds},
		{InvalidData(PhaseDecode, nil, "bad"), KindInvalidData},
		{InvalidInput(PhaseSchema, "bad"), KindInvalidInput},
		{NotInitialized(PhaseInvoke, "caller"), KindNotInitialized},
		{NotFound(PhaseGateway, "function", "X"), KindNotFound},
		{IllegalState(PhaseSchema, "sealed"), KindIllegalState},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}

	if d := DuplicateName(nil, "MY_PARAM"); d.Phase != PhaseSchema || !strings.Contains(d.Detail, "MY_PARAM") {
		t.Errorf("DuplicateName = %+v", d)
	}
}
