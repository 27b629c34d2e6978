package compiler

import (
	"unsafe"

	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/bindings"
)

// fakeNative is an in-process stand-in for *bindings.Library so the
// session machinery can be exercised without a GPU toolkit installed.
// It records every call and mimics the native engine's observable
// behavior: handles, the no-module failure, and the size-then-fill
// buffer protocol with trailing NUL sentinels.
type fakeNative struct {
	version nvvm.Version
	lazy    bool

	createSt  bindings.Status
	addSt     bindings.Status
	compileSt bindings.Status
	verifySt  bindings.Status

	logText string // diagnostic log content, no sentinel
	ptxText string // compiled result content, no sentinel

	created    int
	destroyed  int
	modules    []addedModule
	compiles   int
	verifies   int
	lazyCalls  int
	lastOpts   []string
	nextHandle bindings.ProgramHandle
}

type addedModule struct {
	name string
	size uintptr
	lazy bool
}

func newFake() *fakeNative {
	return &fakeNative{version: nvvm.Version{Major: 2, Minor: 0}, lazy: true}
}

func (f *fakeNative) Version() nvvm.Version     { return f.version }
func (f *fakeNative) SupportsLazyModules() bool { return f.lazy }

func (f *fakeNative) CreateProgram(prog *bindings.ProgramHandle) bindings.Status {
	if !f.createSt.OK() {
		return f.createSt
	}
	f.created++
	f.nextHandle++
	*prog = f.nextHandle
	return bindings.StatusSuccess
}

func (f *fakeNative) DestroyProgram(prog *bindings.ProgramHandle) bindings.Status {
	f.destroyed++
	*prog = 0
	return bindings.StatusSuccess
}

func (f *fakeNative) AddModuleToProgram(_ bindings.ProgramHandle, _ *byte, size uintptr, name *byte) bindings.Status {
	if !f.addSt.OK() {
		return f.addSt
	}
	f.modules = append(f.modules, addedModule{name: goString(name), size: size})
	return bindings.StatusSuccess
}

func (f *fakeNative) LazyAddModuleToProgram(_ bindings.ProgramHandle, _ *byte, size uintptr, name *byte) bindings.Status {
	f.lazyCalls++
	if !f.addSt.OK() {
		return f.addSt
	}
	f.modules = append(f.modules, addedModule{name: goString(name), size: size, lazy: true})
	return bindings.StatusSuccess
}

func (f *fakeNative) CompileProgram(_ bindings.ProgramHandle, n int32, argv **byte) bindings.Status {
	f.compiles++
	f.lastOpts = decodeArgs(n, argv)
	if len(f.modules) == 0 {
		f.logText = "error: no module in program"
		return bindings.StatusNoModuleInProgram
	}
	return f.compileSt
}

func (f *fakeNative) VerifyProgram(_ bindings.ProgramHandle, n int32, argv **byte) bindings.Status {
	f.verifies++
	f.lastOpts = decodeArgs(n, argv)
	if len(f.modules) == 0 {
		f.logText = "error: no module in program"
		return bindings.StatusNoModuleInProgram
	}
	return f.verifySt
}

func (f *fakeNative) GetCompiledResultSize(_ bindings.ProgramHandle, size *uintptr) bindings.Status {
	*size = sentinelSize(f.ptxText)
	return bindings.StatusSuccess
}

func (f *fakeNative) GetCompiledResult(_ bindings.ProgramHandle, buf *byte) bindings.Status {
	fillCString(buf, f.ptxText)
	return bindings.StatusSuccess
}

func (f *fakeNative) GetProgramLogSize(_ bindings.ProgramHandle, size *uintptr) bindings.Status {
	*size = sentinelSize(f.logText)
	return bindings.StatusSuccess
}

func (f *fakeNative) GetProgramLog(_ bindings.ProgramHandle, buf *byte) bindings.Status {
	fillCString(buf, f.logText)
	return bindings.StatusSuccess
}

// sentinelSize reports len(s)+1 as the native side would: content plus
// trailing NUL, collapsing to 1 when there is nothing to report.
func sentinelSize(s string) uintptr {
	return uintptr(len(s)) + 1
}

func fillCString(buf *byte, s string) {
	out := unsafe.Slice(buf, len(s)+1)
	copy(out, s)
	out[len(s)] = 0
}

// goString reads a NUL-terminated C string, verifying the scratch-copy
// discipline the session layer must follow for module names.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	var out []byte
	for ptr := unsafe.Pointer(p); ; ptr = unsafe.Add(ptr, 1) {
		b := *(*byte)(ptr)
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out)
}

func decodeArgs(n int32, argv **byte) []string {
	if n == 0 || argv == nil {
		return nil
	}
	ptrs := unsafe.Slice(argv, int(n))
	out := make([]string, 0, n)
	for _, p := range ptrs {
		out = append(out, goString(p))
	}
	return out
}

func newTestCompiler(f *fakeNative) *Compiler {
	return &Compiler{lib: f}
}
