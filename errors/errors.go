package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/bindings"
)

// Phase indicates where in the session lifecycle the error occurred.
type Phase string

const (
	PhaseLoad      Phase = "load"       // locating/loading the native library
	PhaseCreate    Phase = "create"     // program creation
	PhaseAddModule Phase = "add-module" // module ingestion
	PhaseCompile   Phase = "compile"    // compilation
	PhaseVerify    Phase = "verify"     // verification
	PhaseRetrieve  Phase = "retrieve"   // log/result buffer retrieval
	PhaseDestroy   Phase = "destroy"    // program destruction
)

// Kind categorizes the error.
type Kind string

const (
	// KindStatus is a native call returning a non-success status.
	KindStatus Kind = "status"
	// KindUnsupported is a version-gated operation against a library
	// below the required version, caught before any native call.
	KindUnsupported Kind = "unsupported"
	// KindClosed is any operation on an already destroyed program.
	KindClosed Kind = "closed"
)

// Error is the structured error type used throughout the library.
type Error struct {
	Phase  Phase
	Kind   Kind
	Status bindings.Status // meaningful only for KindStatus
	Detail string
	Log    []byte // native diagnostic log, if one was retrieved
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")

	switch e.Kind {
	case KindStatus:
		b.WriteString(e.Status.String())
		b.WriteString(": ")
		b.WriteString(e.Status.Message())
	default:
		b.WriteString(string(e.Kind))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if log := LogText(e.Log); log != "" {
		b.WriteByte('\n')
		b.WriteString(log)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two *Error values match
// on Kind; for status errors the Status must also agree, and a zero
// Phase in target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if t.Kind == KindStatus && e.Status != t.Status {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return true
}

// FromStatus converts a native status into an error. The success status
// yields nil; this is the single point where a bad status aborts an
// operation.
func FromStatus(phase Phase, st bindings.Status) error {
	if st.OK() {
		return nil
	}
	return &Error{Phase: phase, Kind: KindStatus, Status: st}
}

// FromStatusLog is FromStatus carrying the diagnostic log retrieved for
// the failed operation.
func FromStatusLog(phase Phase, st bindings.Status, log []byte) error {
	if st.OK() {
		return nil
	}
	return &Error{Phase: phase, Kind: KindStatus, Status: st, Log: log}
}

// Unsupported creates the error for a version-gated operation against an
// old native library.
func Unsupported(phase Phase, feature string, have, need nvvm.Version) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("%s requires libNVVM %s or newer (library reports %s)", feature, need, have),
	}
}

// Closed creates the error for an operation on a destroyed program.
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "program already destroyed",
	}
}

// IsUnsupported reports whether err is an unsupported-feature error.
func IsUnsupported(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindUnsupported
}

// IsClosed reports whether err is a closed-session error.
func IsClosed(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == KindClosed
}

// StatusOf extracts the native status from a status error.
func StatusOf(err error) (bindings.Status, bool) {
	var e *Error
	if !stderrors.As(err, &e) || e.Kind != KindStatus {
		return bindings.StatusSuccess, false
	}
	return e.Status, true
}

// LogText renders a raw native log buffer as trimmed text: the trailing
// NUL sentinel and surrounding whitespace are stripped. An empty or
// sentinel-only log renders as "".
func LogText(log []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(log), "\x00"))
}
