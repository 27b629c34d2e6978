package compiler

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/nvvm/bindings"
	"github.com/wippyai/nvvm/errors"
)

// Compile compiles every module added to the program so far. The
// diagnostic log is retrieved and returned regardless of outcome, since
// the native compiler emits warnings on success and explanations on
// failure.
// ptx is non-nil only when the native status is success; a non-success
// status becomes the returned error, which carries the log.
func (p *Program) Compile(opts []Option) (ptx, logBytes []byte, err error) {
	st, logBytes, err := p.run(errors.PhaseCompile, p.lib.CompileProgram, opts)
	if err != nil {
		return nil, nil, err
	}
	if !st.OK() {
		return nil, logBytes, errors.FromStatusLog(errors.PhaseCompile, st, logBytes)
	}

	ptx, err = retrieve(errors.PhaseRetrieve,
		func(size *uintptr) bindings.Status { return p.lib.GetCompiledResultSize(p.handle, size) },
		func(buf *byte) bindings.Status { return p.lib.GetCompiledResult(p.handle, buf) },
	)
	if err != nil {
		return nil, logBytes, err
	}
	log().Debug("program compiled",
		zap.Int("ptx_bytes", len(ptx)),
		zap.Int("log_bytes", len(logBytes)))
	return ptx, logBytes, nil
}

// Verify checks the program's modules without generating code. The raw
// native status is returned uncollapsed so callers can tell a clean
// verification apart from each specific failure kind; err covers only
// session misuse (closed program) and log-retrieval failures.
func (p *Program) Verify(opts []Option) (st bindings.Status, logBytes []byte, err error) {
	return p.run(errors.PhaseVerify, p.lib.VerifyProgram, opts)
}

// run invokes one of the two terminal native operations with the encoded
// option array, then always retrieves the log.
func (p *Program) run(phase errors.Phase, fn func(bindings.ProgramHandle, int32, **byte) bindings.Status, opts []Option) (bindings.Status, []byte, error) {
	if p.closed {
		return 0, nil, errors.Closed(phase)
	}

	ptrs, scratch := encodeOptionArgs(opts)
	var argv **byte
	if len(ptrs) > 0 {
		argv = &ptrs[0]
	}
	st := fn(p.handle, int32(len(ptrs)), argv)
	runtime.KeepAlive(ptrs)
	runtime.KeepAlive(scratch)

	logBytes, err := retrieve(errors.PhaseRetrieve,
		func(size *uintptr) bindings.Status { return p.lib.GetProgramLogSize(p.handle, size) },
		func(buf *byte) bindings.Status { return p.lib.GetProgramLog(p.handle, buf) },
	)
	if err != nil {
		return 0, nil, err
	}
	return st, logBytes, nil
}
