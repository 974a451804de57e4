// Package types defines the ABAP type tags and parameter directions.
//
// Each Type fixes the image a scalar is stored as and the host values
// it accepts. Names follow the NW RFC SDK (RFCTYPE_CHAR, RFC_IMPORT, ...).
//
// This package is internal to the codec.
package types
