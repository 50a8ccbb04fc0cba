// Package errors provides the structured errors reported by the nestroute
// tooling: the target scanner, the validator, the code generator, the
// configuration loader and the CLI.
//
// Routing itself never produces these errors. A failed parse is reported as
// absence, never as an error value.
//
// # Error Categories
//
//   - generate: source files could not be parsed or generated code could not
//     be formatted or written
//   - validation: an annotated declaration breaks the routing grammar
//   - config: nestroute.json is malformed
//   - cli: command usage problems
//
// # Error Codes
//
// Each error has a unique code (e.g., "E200") that maps to a short message,
// a detailed explanation and a documentation URL.
//
// # Usage
//
// The validator attaches the go/token position of the offending
// declaration; the error then carries the surrounding source lines:
//
//	err := errors.New("E200").
//	    WithMessagef("Variants %s and %s of %s both use segment %q", "Users", "UserList", "Page", "users").
//	    At(pos)
//
// A Printer writes errors for the terminal, either in full or one line each:
//
//	errors.Printer{Color: true}.Fprint(os.Stderr, err)
//	// ERROR E200: Variants Users and UserList of Page both use segment "users"
//	//
//	//   pages/pages.go:7:6
//	//
//	//        5 │
//	//        6 │ //nestroute:variant Page segment=users
//	//   →    7 │ type UserList struct{}
//	//          │      ^
//	//   ...
//
//	errors.Printer{Compact: true}.Fprint(os.Stderr, err)
//	// pages/pages.go:7:6: E200: Variants Users and UserList of Page both use segment "users"
package errors
