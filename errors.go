package decima

import (
	"errors"
	"fmt"
)

var (
	ErrCorruptContainer      = errors.New("decima: corrupt container")
	ErrSizeMismatch          = errors.New("decima: size mismatch")
	ErrDanglingReference     = errors.New("decima: dangling reference")
	ErrMissingExternalFile   = errors.New("decima: missing external file")
	ErrUnrecognizedAssertion = errors.New("decima: unrecognized assertion")
	ErrNotEncodable          = errors.New("decima: resource type has no encoder")
	ErrUnexpectedType        = errors.New("decima: unexpected resource type")
	ErrInvalidPath           = errors.New("decima: invalid path")
	ErrLimitExceeded         = errors.New("decima: limit exceeded")
)

// RecordError locates a failure inside a container. It unwraps to one of the
// sentinel errors above.
type RecordError struct {
	Path     string // container file, empty for in-memory buffers
	Offset   int64  // offset of the record header, -1 when not tied to a record
	TypeName string
	ID       ID
	HasID    bool
	Err      error
}

func (e *RecordError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<buffer>"
	}
	msg := loc
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s@%#x", loc, e.Offset)
	}
	if e.TypeName != "" {
		msg += " " + e.TypeName
	}
	if e.HasID {
		msg += " " + e.ID.String()
	}
	return msg + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error { return e.Err }

// assertf reports a structural invariant that did not hold.
func assertf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnrecognizedAssertion}, args...)...)
}

// withPath attaches a file path to a RecordError produced from a buffer scan.
func withPath(err error, path string) error {
	var re *RecordError
	if errors.As(err, &re) && re.Path == "" {
		re.Path = path
		return re
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
