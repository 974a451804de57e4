// Package abi provides host value coercion helpers for the codec.
//
// # Contents
//
//   - coerce.go: Go numeric and text values to int64 / uint64 / float64 / decimal text
//   - helpers.go: type names and digit checks shared by encoders
//
// This package is internal to the codec.
package abi
