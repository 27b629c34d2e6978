package nvvm

import "fmt"

// Module is a named, immutable chunk of NVVM IR in textual or binary
// (bitcode) form. An empty Name is allowed; the native side substitutes a
// placeholder. The IR bytes are only borrowed for the duration of the call
// that adds the module to a program.
type Module struct {
	Name string
	IR   []byte
}

// ComputeCapability identifies a target GPU architecture as a
// major.minor compute capability pair, e.g. {7, 5} for compute_75.
type ComputeCapability struct {
	Major int
	Minor int
}

func (cc ComputeCapability) String() string {
	return fmt.Sprintf("compute_%d%d", cc.Major, cc.Minor)
}

// Version is a major.minor version pair reported by the native library,
// used both for the libNVVM API version and the NVVM IR version.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1 ordering v against other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor != other.Minor:
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Result is the outcome of a successful compilation: the generated PTX
// assembly and the (possibly empty) diagnostic log. Both buffers are
// owned by the caller and are byte-for-byte what the native side
// produced; non-empty buffers keep the trailing NUL the native C
// strings carry.
type Result struct {
	PTX []byte
	Log []byte
}
