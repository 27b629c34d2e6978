// Package errors defines the structured error types surfaced by the
// nvvm library.
//
// Three kinds exist: status errors (a native call returned a non-success
// code), unsupported-feature errors (a version-gated entry point was
// requested from a library that predates it, detected before any native
// call), and closed-session errors (an operation on a destroyed
// program). Compiler diagnostics are NOT errors; they ride along as log
// text on both success and failure, and on a failed compile the log is
// embedded in the error message so callers see the compiler's actual
// reason rather than a bare status code.
package errors
