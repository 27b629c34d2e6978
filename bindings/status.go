package bindings

import "fmt"

// Status is the native result code returned by every libNVVM entry point.
// StatusSuccess is the only non-error value.
type Status int32

const (
	StatusSuccess                Status = 0
	StatusOutOfMemory            Status = 1
	StatusProgramCreationFailure Status = 2
	StatusIRVersionMismatch      Status = 3
	StatusInvalidInput           Status = 4
	StatusInvalidProgram         Status = 5
	StatusInvalidIR              Status = 6
	StatusInvalidOption          Status = 7
	StatusNoModuleInProgram      Status = 8
	StatusCompilation            Status = 9
	StatusNoTargetISA            Status = 10
	StatusUnrecognizedOption     Status = 11
	StatusUnrecognizedTarget     Status = 12
	StatusTimeout                Status = 13
)

var statusNames = map[Status]string{
	StatusSuccess:                "NVVM_SUCCESS",
	StatusOutOfMemory:            "NVVM_ERROR_OUT_OF_MEMORY",
	StatusProgramCreationFailure: "NVVM_ERROR_PROGRAM_CREATION_FAILURE",
	StatusIRVersionMismatch:      "NVVM_ERROR_IR_VERSION_MISMATCH",
	StatusInvalidInput:           "NVVM_ERROR_INVALID_INPUT",
	StatusInvalidProgram:         "NVVM_ERROR_INVALID_PROGRAM",
	StatusInvalidIR:              "NVVM_ERROR_INVALID_IR",
	StatusInvalidOption:          "NVVM_ERROR_INVALID_OPTION",
	StatusNoModuleInProgram:      "NVVM_ERROR_NO_MODULE_IN_PROGRAM",
	StatusCompilation:            "NVVM_ERROR_COMPILATION",
	StatusNoTargetISA:            "NVVM_ERROR_NO_TARGET_ISA",
	StatusUnrecognizedOption:     "NVVM_ERROR_UNRECOGNIZED_OPTION",
	StatusUnrecognizedTarget:     "NVVM_ERROR_UNRECOGNIZED_TARGET",
	StatusTimeout:                "NVVM_ERROR_TIMEOUT",
}

var statusMessages = map[Status]string{
	StatusSuccess:                "success",
	StatusOutOfMemory:            "out of memory",
	StatusProgramCreationFailure: "failed to create the compilation unit",
	StatusIRVersionMismatch:      "IR version mismatch",
	StatusInvalidInput:           "invalid input",
	StatusInvalidProgram:         "invalid program usage",
	StatusInvalidIR:              "invalid IR",
	StatusInvalidOption:          "invalid compiler option",
	StatusNoModuleInProgram:      "no module in the compilation unit",
	StatusCompilation:            "compilation error",
	StatusNoTargetISA:            "no target ISA selected",
	StatusUnrecognizedOption:     "unrecognized compiler option",
	StatusUnrecognizedTarget:     "unrecognized target ISA",
	StatusTimeout:                "compilation timed out",
}

// String returns the C enumerator name, or a numeric form for codes this
// binding does not know about.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("NVVM_ERROR_UNKNOWN(%d)", int32(s))
}

// Message returns the fixed human-readable description for s.
func (s Status) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("unknown status code %d", int32(s))
}

// OK reports whether s is the distinguished success value.
func (s Status) OK() bool {
	return s == StatusSuccess
}
