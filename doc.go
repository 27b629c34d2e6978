// Package nvvm provides Go bindings for NVIDIA's libNVVM compiler library.
//
// libNVVM compiles NVVM IR (a subset of LLVM IR) into PTX assembly for
// NVIDIA GPUs. This library wraps the native engine behind a safe,
// resource-disciplined session API: create a program, add IR modules,
// compile or verify, collect the PTX and the diagnostic log, and tear the
// session down on every exit path.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	nvvm/            Root package with shared value types (Module, Version, ...)
//	├── compiler/    High-level API: programs, options, compile and verify
//	├── bindings/    Low-level libNVVM ABI loaded via purego
//	├── errors/      Structured error types for debugging
//	├── cmd/nvvmc/   Command-line compile/verify front-end
//	└── examples/    Runnable examples
//
// # Quick Start
//
// Compile a single textual IR module to PTX:
//
//	lib, err := bindings.Open(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cc := compiler.New(lib)
//
//	res, err := cc.CompileModule("kernel", irBytes, []compiler.Option{
//	    compiler.Target(nvvm.ComputeCapability{Major: 7, Minor: 5}),
//	    compiler.OptLevel(3),
//	})
//	if err != nil {
//	    log.Fatal(err) // error text includes the native compiler log
//	}
//	fmt.Printf("%s", res.PTX)
//
// # Sessions
//
// A compiler.Program is single-use: create it, add zero or more modules,
// run exactly one of Compile or Verify, retrieve the outputs, and destroy
// it. Destruction is guaranteed by the convenience API; manual users must
// defer Destroy themselves. A destroyed program rejects every further
// operation with a deterministic error.
//
// # Thread Safety
//
// A *bindings.Library is immutable after Open and safe for concurrent
// use. A Program is NOT thread-safe; callers wanting parallel compilation
// use one Program per goroutine. Every call into the native engine is
// synchronous and cannot be cancelled, so no API takes a context.
//
// # Diagnostics
//
// The native compiler writes warnings and errors to a per-program log on
// both success and failure. The log is always retrieved; never assume an
// empty log on success or a populated one only on failure.
package nvvm
