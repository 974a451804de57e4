package nwrfc

import "context"

// Caller invokes a named remote function with a serialized request buffer
// and returns the serialized response buffer.
//
// Failures are reported as *errors.CommunicationError for protocol and
// logon problems, or *errors.ApplicationException when the remote
// function raised one of its declared exceptions.
type Caller interface {
	Call(ctx context.Context, function string, request []byte) ([]byte, error)
}

// CallerFunc adapts a function to the Caller interface
type CallerFunc func(ctx context.Context, function string, request []byte) ([]byte, error)

func (f CallerFunc) Call(ctx context.Context, function string, request []byte) ([]byte, error) {
	return f(ctx, function, request)
}
