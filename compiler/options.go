package compiler

import (
	"fmt"

	"github.com/wippyai/nvvm"
)

// Option is one libNVVM compile option. The set is closed; each variant
// renders to exactly one flag token. Options are passed to the native
// compiler in the order given, without deduplication; for conflicting
// flags the native behavior (last wins) governs.
//
// Native defaults when a flag is omitted: optimisation level 3, target
// compute_20, FTZ off, FMA on, precise sqrt and division, no debug info.
type Option interface {
	// Flag returns the flag token passed to the native compiler.
	Flag() string

	isOption()
}

// OptLevel selects the optimisation level, 0 through 3. Out-of-range
// values are passed through unchecked; the native compiler rejects them.
type OptLevel int

func (o OptLevel) Flag() string { return fmt.Sprintf("-opt=%d", int(o)) }
func (OptLevel) isOption()      {}

// Target selects the target architecture by compute capability.
func Target(cc nvvm.ComputeCapability) Option {
	return targetOption(cc)
}

type targetOption nvvm.ComputeCapability

func (t targetOption) Flag() string {
	return fmt.Sprintf("-arch=compute_%d%d", t.Major, t.Minor)
}
func (targetOption) isOption() {}

// toggle is a fixed single-flag option.
type toggle string

func (t toggle) Flag() string { return string(t) }
func (toggle) isOption()      {}

const (
	// FlushToZero flushes denormal values to zero when performing
	// single-precision floating-point operations.
	FlushToZero toggle = "-ftz=1"

	// NoFMA disables fusing multiply-add operations.
	NoFMA toggle = "-fma=0"

	// FastSqrt uses a faster approximation for single-precision square
	// root.
	FastSqrt toggle = "-prec-sqrt=0"

	// FastDiv uses a faster approximation for single-precision division
	// and reciprocal.
	FastDiv toggle = "-prec-div=0"

	// DebugInfo generates debugging information.
	DebugInfo toggle = "-g"
)

// encodeOptions renders opts to flag tokens, preserving order. The
// mapping is total and pure.
func encodeOptions(opts []Option) []string {
	if len(opts) == 0 {
		return nil
	}
	flags := make([]string, len(opts))
	for i, o := range opts {
		flags[i] = o.Flag()
	}
	return flags
}

// encodeOptionArgs renders opts to the NUL-terminated C string array the
// native compiler expects. ptrs addresses the first byte of each flag;
// scratch owns the backing buffers and must be kept alive across the
// native call.
func encodeOptionArgs(opts []Option) (ptrs []*byte, scratch [][]byte) {
	flags := encodeOptions(opts)
	if len(flags) == 0 {
		return nil, nil
	}
	ptrs = make([]*byte, len(flags))
	scratch = make([][]byte, len(flags))
	for i, f := range flags {
		buf := cstring(f)
		scratch[i] = buf
		ptrs[i] = &buf[0]
	}
	return ptrs, scratch
}
