// Package nwrfc provides the ABAP RFC parameter model and type marshalling in Go.
//
// The library converts Go values to and from the ABAP type system used by
// remote function calls (CHAR, NUMC, BCD, INT1/2/4, FLOAT, DATE, TIME,
// STRING, XSTRING, structures and tables) and models functions, their
// parameters and per-invocation call state. Network transport is left to
// a gateway collaborator.
//
// # Architecture Overview
//
//	nwrfc/               Root package with the Caller interface
//	├── codec/           ABAP type tags, scalar images, field layout
//	├── rfc/             Function, Parameter, Call, Record, Table, buffers
//	├── wire/            Varint framing of request and response buffers
//	├── errors/          Structured errors, RFC codes and groups
//	├── gateway/         Collaborator contract for connections
//	│   └── loopback/    In-process gateway with demo function modules
//	├── client/          Connection lifecycle and logging
//	├── repository/      Function description cache
//	├── funcdef/         YAML function definitions
//	├── config/          Logon parameters
//	└── cmd/nwrfc/       Command line tool
//
// # Quick Start
//
// Open a connection and call a function module:
//
//	sys := loopback.New(loopback.WithUser("DEVELOPER", "secret"))
//	conn, err := client.Open(ctx, sys, params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close(ctx)
//
//	fn, err := conn.Function(ctx, "STFC_CONNECTION")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	call := fn.NewCall()
//	_ = call.Set("REQUTEXT", "Hello SAP!")
//	if err := call.Invoke(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	echo, _ := call.Text("ECHOTEXT")
//	fmt.Println(echo) // "Hello SAP!"
//
// # Ad-hoc Functions
//
// Functions can be described without metadata from the remote system:
//
//	fn := rfc.NewFunction("MY_FUNCTION")
//	_ = fn.AddParameter(rfc.Parameter{
//	    Name:      "MY_PARAM",
//	    Type:      codec.TypeChar,
//	    Length:    20,
//	    Direction: codec.Import,
//	})
//
// # Error Handling
//
// Conversion and schema errors are *errors.Error values carrying a phase,
// a kind and the path of the offending field:
//
//	if err := call.Set("RFCINT2", 40000); errors.IsTypeMismatch(err) {
//	    // out of range for INT2
//	}
//
// Remote failures are either *errors.CommunicationError with a code and
// a group, or *errors.ApplicationException naming the ABAP exception.
//
// # Thread Safety
//
// A Function is safe for concurrent readers once its first Call has been
// created. Calls, Records and Tables belong to a single goroutine.
package nwrfc
