// Package bindings exposes the raw libNVVM C ABI to Go.
//
// The shared library is located and loaded at runtime with purego (dlopen
// on unix, LoadLibrary on Windows); no cgo is involved. Every entry point
// is bound into a function table on a Library value, which higher layers
// (package compiler) drive through thin typed wrappers.
//
// This package intentionally stays very low-level: raw status codes, raw
// handles, raw byte pointers. Safety and ergonomics belong in compiler.
package bindings
