package collect

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

type ErrorKind int

const (
	// KindNotFound means the requested block or transaction does not exist (yet).
	KindNotFound ErrorKind = iota
	// KindFetch is a transport or node failure. Retrying the chunk may succeed.
	KindFetch
	// KindMalformed means the node returned an object missing a required field.
	KindMalformed
	// KindMissingSchema means no table was registered for the datatype.
	KindMissingSchema
	// KindInvalidRequest means a request lacks a dimension the stage needs.
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindFetch:
		return "fetch"
	case KindMalformed:
		return "malformed"
	case KindMissingSchema:
		return "missing schema"
	case KindInvalidRequest:
		return "invalid request"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type CollectError struct {
	Kind     ErrorKind
	Datatype schema.Datatype
	Err      error
}

func (e *CollectError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Datatype, e.Kind, e.Err)
}

func (e *CollectError) Unwrap() error {
	return e.Err
}

// StackTrace exposes the stack of the wrapped error to zerolog's pkgerrors marshaler.
func (e *CollectError) StackTrace() pkgerrors.StackTrace {
	var tracer interface{ StackTrace() pkgerrors.StackTrace }
	if errors.As(e.Err, &tracer) {
		return tracer.StackTrace()
	}
	return nil
}

func newError(kind ErrorKind, datatype schema.Datatype, format string, args ...interface{}) *CollectError {
	return &CollectError{Kind: kind, Datatype: datatype, Err: pkgerrors.Errorf(format, args...)}
}

func notFound(datatype schema.Datatype, format string, args ...interface{}) *CollectError {
	return newError(KindNotFound, datatype, format, args...)
}

func malformed(datatype schema.Datatype, format string, args ...interface{}) *CollectError {
	return newError(KindMalformed, datatype, format, args...)
}

func missingSchema(datatype schema.Datatype) *CollectError {
	return newError(KindMissingSchema, datatype, "no schema registered for %s", datatype)
}

// errMissingDimension is returned by Request accessors.
var errMissingDimension = errors.New("request is missing a dimension")

// classify turns an arbitrary stage error into a CollectError. Errors that are
// already classified keep their kind.
func classify(datatype schema.Datatype, err error, fallback ErrorKind) error {
	if err == nil {
		return nil
	}
	var collectErr *CollectError
	if errors.As(err, &collectErr) {
		return collectErr
	}
	switch {
	case errors.Is(err, errMissingDimension):
		return &CollectError{Kind: KindInvalidRequest, Datatype: datatype, Err: pkgerrors.WithStack(err)}
	case errors.Is(err, rpc.ErrNotFound):
		return &CollectError{Kind: KindNotFound, Datatype: datatype, Err: pkgerrors.WithStack(err)}
	}
	return &CollectError{Kind: fallback, Datatype: datatype, Err: pkgerrors.WithStack(err)}
}

func kindOf(err error) (ErrorKind, bool) {
	var collectErr *CollectError
	if errors.As(err, &collectErr) {
		return collectErr.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsRetryable reports whether re-running the chunk may succeed. Unclassified
// errors such as context cancellation are not retryable.
func IsRetryable(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindFetch
}

func IsFatal(err error) bool {
	kind, ok := kindOf(err)
	if !ok {
		return err != nil
	}
	return kind == KindMalformed || kind == KindMissingSchema || kind == KindInvalidRequest
}

func IsMissingSchema(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindMissingSchema
}
