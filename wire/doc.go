// Package wire implements the framing of RFC request and response buffers.
//
// Buffers are sequences of unsigned LEB128 varints and length prefixed
// byte strings. The package knows nothing about parameters; see package
// rfc for the layout of a call on top of this framing.
package wire
