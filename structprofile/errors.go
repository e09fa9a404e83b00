package structprofile

import "errors"

// Sentinel errors for the system-boundary error kinds named in the error
// handling design: InputIo and BadOption are reported by the CLI layer;
// TooShortSequence is returned by the engine itself so callers can choose
// their own safe-fallback policy. NumericalDrift is deliberately not an
// error — it is always just a diagnostic (see Engine.Run).
var (
	// ErrInputIO wraps failures opening/reading/writing the FASTA streams.
	ErrInputIO = errors.New("structprofile: input/output error")
	// ErrBadOption wraps an unknown flag or an invalid flag value.
	ErrBadOption = errors.New("structprofile: bad option")
	// ErrTooShortSequence is returned by Run when N <= Turn. The caller
	// decides policy; the CLI's safe default is to emit a zero profile and
	// log a warning rather than abort the whole batch.
	ErrTooShortSequence = errors.New("structprofile: sequence too short")
)
