// Package errors provides the error taxonomy of the RFC parameter model.
//
// Local failures use *Error, categorized by Phase (where it occurred) and
// Kind (what went wrong), with the field path, Go/ABAP type names and cause:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("IMPORTSTRUCT", "RFCINT4").
//		GoType("string").
//		AbapType("RFCTYPE_INT4").
//		Detail("not an integer").
//		Build()
//
// Failures reported by the gateway come in two disjoint shapes:
//
//	*CommunicationError    protocol level: logon, connectivity, remote aborts (Code + Group)
//	*ApplicationException  the remote function raised one of its declared exceptions
//
// Callers branch with AsCommunication / AsApplication, or errors.Is against
// a template value:
//
//	errors.Is(err, &errors.CommunicationError{Code: errors.CodeLogonFailure})
//	errors.Is(err, &errors.ApplicationException{Name: "EXAMPLE"})
//
// Nothing in this module retries; every failure reaches the immediate caller.
package errors
