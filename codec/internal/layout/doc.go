// Package layout computes the non-unicode and unicode lengths and offsets of
// fields inside an ABAP structure, the way the NW RFC SDK reports them in
// field descriptors.
//
// # Layout Rules
//
//   - CHAR/NUMC/DATE/TIME: one byte per character non-unicode, two unicode (aligned 2)
//   - BYTE/BCD: declared length in both, alignment 1
//   - INT1=1, INT2=2, INT4=4, FLOAT/DECF16=8, DECF34=16; size equals alignment
//   - STRING/XSTRING/TABLE: 8 byte reference slot, content stored elsewhere
//   - STRUCTURE: children inline with padding; size rounded to the largest alignment
//
// This package is internal to the codec.
package layout
