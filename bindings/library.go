package bindings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wippyai/nvvm"
)

// ProgramHandle is the opaque native compilation-session identifier.
// Zero is never a valid handle.
type ProgramHandle uintptr

// Config controls how the native library is located.
type Config struct {
	// Path is an explicit path to the libNVVM shared object. When set,
	// the usual environment and install-directory search is skipped.
	Path string
}

// Library is an opened libNVVM shared library with every entry point
// bound. It is immutable after Open and safe for concurrent use.
type Library struct {
	handle  uintptr
	path    string
	version nvvm.Version
	ir      nvvm.Version
	dbg     nvvm.Version

	nvvmVersion               func(major, minor *int32) Status
	nvvmIRVersion             func(majorIR, minorIR, majorDbg, minorDbg *int32) Status
	nvvmCreateProgram         func(prog *ProgramHandle) Status
	nvvmDestroyProgram        func(prog *ProgramHandle) Status
	nvvmAddModuleToProgram    func(prog ProgramHandle, buffer *byte, size uintptr, name *byte) Status
	nvvmLazyAddModule         func(prog ProgramHandle, buffer *byte, size uintptr, name *byte) Status
	nvvmCompileProgram        func(prog ProgramHandle, numOptions int32, options **byte) Status
	nvvmVerifyProgram         func(prog ProgramHandle, numOptions int32, options **byte) Status
	nvvmGetCompiledResultSize func(prog ProgramHandle, size *uintptr) Status
	nvvmGetCompiledResult     func(prog ProgramHandle, buffer *byte) Status
	nvvmGetProgramLogSize     func(prog ProgramHandle, size *uintptr) Status
	nvvmGetProgramLog         func(prog ProgramHandle, buffer *byte) Status
}

// requiredSymbols are bound unconditionally; a library missing any of
// them is rejected at Open. nvvmLazyAddModuleToProgram is optional (it
// appeared in libNVVM 1.6 / CUDA 10.0) and gates lazy module loading.
var requiredSymbols = []string{
	"nvvmVersion",
	"nvvmIRVersion",
	"nvvmCreateProgram",
	"nvvmDestroyProgram",
	"nvvmAddModuleToProgram",
	"nvvmCompileProgram",
	"nvvmVerifyProgram",
	"nvvmGetCompiledResultSize",
	"nvvmGetCompiledResult",
	"nvvmGetProgramLogSize",
	"nvvmGetProgramLog",
}

const lazySymbol = "nvvmLazyAddModuleToProgram"

// LazyMinVersion is the first libNVVM version shipping the lazy
// module-add entry points.
var LazyMinVersion = nvvm.Version{Major: 1, Minor: 6}

// Open locates, loads and binds the libNVVM shared library. A nil cfg
// uses the default search: the NVVM_LIBRARY environment variable, then
// the nvvm directory of CUDA_HOME / CUDA_PATH, then conventional CUDA
// install locations.
func Open(cfg *Config) (*Library, error) {
	var candidates []string
	if cfg != nil && cfg.Path != "" {
		candidates = []string{cfg.Path}
	} else {
		candidates = searchCandidates()
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("bindings: no libNVVM candidates to try; set NVVM_LIBRARY or CUDA_HOME")
	}

	var (
		handle  uintptr
		path    string
		lastErr error
	)
	for _, c := range candidates {
		h, err := openLibrary(c)
		if err != nil {
			lastErr = err
			continue
		}
		handle, path = h, c
		break
	}
	if handle == 0 {
		return nil, fmt.Errorf("bindings: load libNVVM (tried %d locations): %w", len(candidates), lastErr)
	}

	lib := &Library{handle: handle, path: path}
	if err := lib.bind(); err != nil {
		return nil, err
	}
	if err := lib.probeVersions(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) bind() error {
	for _, sym := range requiredSymbols {
		if _, err := lookupSymbol(l.handle, sym); err != nil {
			return fmt.Errorf("bindings: %s: missing symbol %s: %w", l.path, sym, err)
		}
	}

	registerFunc(&l.nvvmVersion, l.handle, "nvvmVersion")
	registerFunc(&l.nvvmIRVersion, l.handle, "nvvmIRVersion")
	registerFunc(&l.nvvmCreateProgram, l.handle, "nvvmCreateProgram")
	registerFunc(&l.nvvmDestroyProgram, l.handle, "nvvmDestroyProgram")
	registerFunc(&l.nvvmAddModuleToProgram, l.handle, "nvvmAddModuleToProgram")
	registerFunc(&l.nvvmCompileProgram, l.handle, "nvvmCompileProgram")
	registerFunc(&l.nvvmVerifyProgram, l.handle, "nvvmVerifyProgram")
	registerFunc(&l.nvvmGetCompiledResultSize, l.handle, "nvvmGetCompiledResultSize")
	registerFunc(&l.nvvmGetCompiledResult, l.handle, "nvvmGetCompiledResult")
	registerFunc(&l.nvvmGetProgramLogSize, l.handle, "nvvmGetProgramLogSize")
	registerFunc(&l.nvvmGetProgramLog, l.handle, "nvvmGetProgramLog")

	// Optional: absent on libNVVM older than 1.6.
	if _, err := lookupSymbol(l.handle, lazySymbol); err == nil {
		registerFunc(&l.nvvmLazyAddModule, l.handle, lazySymbol)
	}
	return nil
}

func (l *Library) probeVersions() error {
	var major, minor int32
	if st := l.nvvmVersion(&major, &minor); !st.OK() {
		return fmt.Errorf("bindings: nvvmVersion: %s (%s)", st, st.Message())
	}
	l.version = nvvm.Version{Major: int(major), Minor: int(minor)}

	var irMaj, irMin, dbgMaj, dbgMin int32
	if st := l.nvvmIRVersion(&irMaj, &irMin, &dbgMaj, &dbgMin); !st.OK() {
		return fmt.Errorf("bindings: nvvmIRVersion: %s (%s)", st, st.Message())
	}
	l.ir = nvvm.Version{Major: int(irMaj), Minor: int(irMin)}
	l.dbg = nvvm.Version{Major: int(dbgMaj), Minor: int(dbgMin)}
	return nil
}

// Path returns the filesystem path the library was loaded from.
func (l *Library) Path() string { return l.path }

// Version returns the libNVVM API version reported by nvvmVersion.
func (l *Library) Version() nvvm.Version { return l.version }

// IRVersion returns the NVVM IR version the library accepts.
func (l *Library) IRVersion() nvvm.Version { return l.ir }

// DebugVersion returns the NVVM debug-metadata version.
func (l *Library) DebugVersion() nvvm.Version { return l.dbg }

// SupportsLazyModules reports whether nvvmLazyAddModuleToProgram was
// present in the loaded library.
func (l *Library) SupportsLazyModules() bool { return l.nvvmLazyAddModule != nil }

// CreateProgram allocates a new native compilation session.
func (l *Library) CreateProgram(prog *ProgramHandle) Status {
	return l.nvvmCreateProgram(prog)
}

// DestroyProgram releases a native compilation session. Calling it twice
// on the same handle is undefined on the native side; package compiler
// guards against it.
func (l *Library) DestroyProgram(prog *ProgramHandle) Status {
	return l.nvvmDestroyProgram(prog)
}

// AddModuleToProgram eagerly adds size bytes of IR under a NUL-terminated
// name. The buffer is only borrowed for the duration of the call.
func (l *Library) AddModuleToProgram(prog ProgramHandle, buffer *byte, size uintptr, name *byte) Status {
	return l.nvvmAddModuleToProgram(prog, buffer, size, name)
}

// LazyAddModuleToProgram adds IR whose symbols are only resolved when
// referenced by an eagerly added module. Callers must check
// SupportsLazyModules first; invoking this on an older library panics.
func (l *Library) LazyAddModuleToProgram(prog ProgramHandle, buffer *byte, size uintptr, name *byte) Status {
	if l.nvvmLazyAddModule == nil {
		panic("bindings: " + lazySymbol + " not available; check SupportsLazyModules")
	}
	return l.nvvmLazyAddModule(prog, buffer, size, name)
}

// CompileProgram compiles every module in the session. options is an
// array of numOptions NUL-terminated flag strings, or nil when empty.
func (l *Library) CompileProgram(prog ProgramHandle, numOptions int32, options **byte) Status {
	return l.nvvmCompileProgram(prog, numOptions, options)
}

// VerifyProgram checks the session's modules without generating code.
func (l *Library) VerifyProgram(prog ProgramHandle, numOptions int32, options **byte) Status {
	return l.nvvmVerifyProgram(prog, numOptions, options)
}

// GetCompiledResultSize reports the PTX size in bytes, trailing NUL
// included.
func (l *Library) GetCompiledResultSize(prog ProgramHandle, size *uintptr) Status {
	return l.nvvmGetCompiledResultSize(prog, size)
}

// GetCompiledResult copies the PTX into buffer, which must hold exactly
// the size reported by GetCompiledResultSize.
func (l *Library) GetCompiledResult(prog ProgramHandle, buffer *byte) Status {
	return l.nvvmGetCompiledResult(prog, buffer)
}

// GetProgramLogSize reports the diagnostic log size in bytes, trailing
// NUL included.
func (l *Library) GetProgramLogSize(prog ProgramHandle, size *uintptr) Status {
	return l.nvvmGetProgramLogSize(prog, size)
}

// GetProgramLog copies the diagnostic log into buffer, which must hold
// exactly the size reported by GetProgramLogSize.
func (l *Library) GetProgramLog(prog ProgramHandle, buffer *byte) Status {
	return l.nvvmGetProgramLog(prog, buffer)
}

// searchCandidates builds the ordered list of library paths to try.
func searchCandidates() []string {
	var dirs []string
	if p := os.Getenv("NVVM_LIBRARY"); p != "" {
		// Explicit file, not a directory.
		return []string{p}
	}
	for _, env := range []string{"CUDA_HOME", "CUDA_PATH"} {
		if root := os.Getenv(env); root != "" {
			dirs = append(dirs, filepath.Join(root, "nvvm", libSubdir))
		}
	}
	dirs = append(dirs, defaultLibDirs...)

	var out []string
	for _, d := range dirs {
		for _, name := range libNames {
			out = append(out, filepath.Join(d, name))
		}
	}
	return out
}
