package compiler

import (
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/nvvm/bindings"
	"github.com/wippyai/nvvm/errors"
)

// Program is one native compilation session. It exclusively owns its
// native handle until Destroy. A Program is single-use: add zero or more
// modules, run exactly one of Compile or Verify, retrieve outputs,
// destroy. It is not safe for concurrent use.
type Program struct {
	lib    native
	handle bindings.ProgramHandle
	closed bool
}

// CreateProgram allocates a new native compilation session. The caller
// must Destroy it on every exit path; prefer CompileModules, which does
// this automatically.
func (c *Compiler) CreateProgram() (*Program, error) {
	var h bindings.ProgramHandle
	if err := errors.FromStatus(errors.PhaseCreate, c.lib.CreateProgram(&h)); err != nil {
		return nil, err
	}
	log().Debug("program created", zap.Uint64("handle", uint64(h)))
	return &Program{lib: c.lib, handle: h}, nil
}

// Destroy releases the native session. It must be called exactly once;
// every later operation on the program, Destroy included, returns a
// closed-session error instead of touching the native handle.
func (p *Program) Destroy() error {
	if p.closed {
		return errors.Closed(errors.PhaseDestroy)
	}
	p.closed = true
	h := p.handle
	p.handle = 0
	err := errors.FromStatus(errors.PhaseDestroy, p.lib.DestroyProgram(&h))
	log().Debug("program destroyed", zap.Uint64("handle", uint64(h)), zap.Error(err))
	return err
}

// AddModule eagerly adds an IR module: all of its symbols take part in
// compilation. The ir bytes are borrowed only for the duration of the
// call. An empty name gets a native-side placeholder. Malformed IR may
// be reported here or deferred to compile/verify time; this call does
// not guarantee syntactic validation.
func (p *Program) AddModule(name string, ir []byte) error {
	if p.closed {
		return errors.Closed(errors.PhaseAddModule)
	}
	var buf *byte
	if len(ir) > 0 {
		buf = &ir[0]
	}
	st := p.addEager(buf, uintptr(len(ir)), name)
	runtime.KeepAlive(ir)
	return errors.FromStatus(errors.PhaseAddModule, st)
}

// AddModuleFromPointer is AddModule for IR held outside Go-managed
// memory. ptr must stay valid for the duration of the call only.
func (p *Program) AddModuleFromPointer(name string, size uintptr, ptr unsafe.Pointer) error {
	if p.closed {
		return errors.Closed(errors.PhaseAddModule)
	}
	st := p.addEager((*byte)(ptr), size, name)
	return errors.FromStatus(errors.PhaseAddModule, st)
}

// AddModuleLazy adds an IR module whose symbols are resolved only when
// referenced by an eagerly added module. Requires libNVVM 1.6 or newer;
// against an older library it fails fast with an unsupported-feature
// error before any native call.
func (p *Program) AddModuleLazy(name string, ir []byte) error {
	if p.closed {
		return errors.Closed(errors.PhaseAddModule)
	}
	if err := p.checkLazy(); err != nil {
		return err
	}
	var buf *byte
	if len(ir) > 0 {
		buf = &ir[0]
	}
	st := p.addLazy(buf, uintptr(len(ir)), name)
	runtime.KeepAlive(ir)
	return errors.FromStatus(errors.PhaseAddModule, st)
}

// AddModuleLazyFromPointer is AddModuleLazy for IR held outside
// Go-managed memory.
func (p *Program) AddModuleLazyFromPointer(name string, size uintptr, ptr unsafe.Pointer) error {
	if p.closed {
		return errors.Closed(errors.PhaseAddModule)
	}
	if err := p.checkLazy(); err != nil {
		return err
	}
	st := p.addLazy((*byte)(ptr), size, name)
	return errors.FromStatus(errors.PhaseAddModule, st)
}

func (p *Program) checkLazy() error {
	if p.lib.SupportsLazyModules() {
		return nil
	}
	return errors.Unsupported(errors.PhaseAddModule, "lazy module loading",
		p.lib.Version(), bindings.LazyMinVersion)
}

func (p *Program) addEager(buf *byte, size uintptr, name string) bindings.Status {
	cname := cstring(name)
	st := p.lib.AddModuleToProgram(p.handle, buf, size, &cname[0])
	runtime.KeepAlive(cname)
	return st
}

func (p *Program) addLazy(buf *byte, size uintptr, name string) bindings.Status {
	cname := cstring(name)
	st := p.lib.LazyAddModuleToProgram(p.handle, buf, size, &cname[0])
	runtime.KeepAlive(cname)
	return st
}
