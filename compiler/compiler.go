package compiler

import (
	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/bindings"
)

// native is the slice of the libNVVM surface the compiler drives. It is
// satisfied by *bindings.Library; tests substitute an in-process fake.
type native interface {
	Version() nvvm.Version
	SupportsLazyModules() bool
	CreateProgram(prog *bindings.ProgramHandle) bindings.Status
	DestroyProgram(prog *bindings.ProgramHandle) bindings.Status
	AddModuleToProgram(prog bindings.ProgramHandle, buffer *byte, size uintptr, name *byte) bindings.Status
	LazyAddModuleToProgram(prog bindings.ProgramHandle, buffer *byte, size uintptr, name *byte) bindings.Status
	CompileProgram(prog bindings.ProgramHandle, numOptions int32, options **byte) bindings.Status
	VerifyProgram(prog bindings.ProgramHandle, numOptions int32, options **byte) bindings.Status
	GetCompiledResultSize(prog bindings.ProgramHandle, size *uintptr) bindings.Status
	GetCompiledResult(prog bindings.ProgramHandle, buffer *byte) bindings.Status
	GetProgramLogSize(prog bindings.ProgramHandle, size *uintptr) bindings.Status
	GetProgramLog(prog bindings.ProgramHandle, buffer *byte) bindings.Status
}

// Compiler compiles NVVM IR through an opened libNVVM library. It is
// stateless apart from the library reference and safe for concurrent
// use; the Programs it creates are not.
type Compiler struct {
	lib native
}

// New creates a Compiler on top of an opened library.
func New(lib *bindings.Library) *Compiler {
	return &Compiler{lib: lib}
}

// CompileModule compiles a single named IR module with the given options
// and returns the PTX and diagnostic log. On failure the returned error
// embeds the full native log text. The program is destroyed on every
// exit path.
func (c *Compiler) CompileModule(name string, ir []byte, opts []Option) (*nvvm.Result, error) {
	return c.CompileModules([]nvvm.Module{{Name: name, IR: ir}}, opts)
}

// CompileModules compiles the given IR modules, added eagerly in order,
// with the given options. The program is destroyed on every exit path,
// including failures during module addition.
func (c *Compiler) CompileModules(modules []nvvm.Module, opts []Option) (res *nvvm.Result, err error) {
	prog, err := c.CreateProgram()
	if err != nil {
		return nil, err
	}
	defer func() {
		if derr := prog.Destroy(); derr != nil && err == nil {
			res, err = nil, derr
		}
	}()

	for _, m := range modules {
		if err := prog.AddModule(m.Name, m.IR); err != nil {
			return nil, err
		}
	}

	ptx, log, err := prog.Compile(opts)
	if err != nil {
		return nil, err
	}
	return &nvvm.Result{PTX: ptx, Log: log}, nil
}

// VerifyModules verifies (without code generation) the given IR modules
// and returns the raw native status alongside the diagnostic log, so
// callers can distinguish a clean verification from each failure kind.
func (c *Compiler) VerifyModules(modules []nvvm.Module, opts []Option) (st bindings.Status, log []byte, err error) {
	prog, err := c.CreateProgram()
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if derr := prog.Destroy(); derr != nil && err == nil {
			st, log, err = 0, nil, derr
		}
	}()

	for _, m := range modules {
		if err := prog.AddModule(m.Name, m.IR); err != nil {
			return 0, nil, err
		}
	}
	return prog.Verify(opts)
}
