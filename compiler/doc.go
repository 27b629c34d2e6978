// Package compiler provides the high-level API for compiling NVVM IR to
// PTX through a loaded libNVVM library.
//
// A Compiler wraps a *bindings.Library. Programs are single-use
// compilation sessions: create, add modules, run exactly one of Compile
// or Verify, retrieve the outputs, destroy. The convenience entry points
// CompileModule and CompileModules hide the session entirely and
// guarantee teardown on every exit path.
package compiler
