// Package rfc models remote function modules and their invocations.
//
// A Function is an ordered set of Parameters. Calls are created from a
// Function with NewCall and hold one value per parameter:
//
//	Function ──NewCall──▶ Call
//	   │                   ├── scalar fields (codec images)
//	   └── []Parameter     ├── *Record  (STRUCTURE)
//	                       └── *Table   (TABLE, rows of *Record)
//
// Values are read and written by parameter name; names are case
// insensitive. Every assignment goes through package codec, so a value
// that does not fit the ABAP type is rejected at Set time.
//
// # Invocation
//
// Invoke serializes the active IMPORT, CHANGING and TABLES parameters,
// hands the buffer to a Caller and stores the returned EXPORT, CHANGING
// and TABLES parameters. Parameters deactivated with Deactivate are
// neither sent nor decoded; receiving parameters hold their zero value
// after the call.
//
// The serving side uses DecodeRequest and EncodeResponse with the same
// Function description.
//
// # Tables
//
// NewRow returns the live row it appended. Append stores a copy, so the
// same Record can be filled and appended repeatedly:
//
//	row := tbl.NewRow()  // row 0
//	_ = row.Set("I", 1)
//	_ = tbl.Append(row)  // row 1 holds 1
//	_ = row.Set("I", 2)  // changes row 0 only
//	_ = tbl.Append(row)  // row 2 holds 2
package rfc
