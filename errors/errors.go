package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes below 1000 are reserved for
// this package.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg marks a message that fails validation or cannot be routed
	ErrMsg       = Register(4, "invalid message")
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman is a code path that correct callers never reach
	ErrHuman = Register(7, "coding error")
	ErrEmpty = Register(9, "value is empty")
	ErrState = Register(10, "invalid state")
	ErrType  = Register(11, "invalid type")

	// ErrInsufficientAmount means a holding balance or a native deposit
	// cannot cover the requested amount.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrAmount   = Register(13, "invalid amount")
	ErrInput    = Register(14, "invalid input")
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")
	ErrDatabase = Register(17, "database")

	// ErrAssetMismatch means a holding or a decimals value does not match
	// the declared mint.
	ErrAssetMismatch = Register(18, "asset mismatch")

	// ErrIteratorDone ends an iteration, it is not a failure.
	ErrIteratorDone = Register(19, "iterator done")

	// ErrPanic wraps a recovered panic. Its message is never shown outside
	// of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every root error by code. Code 1 is kept for errors that
// carry no code at all.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error. It panics if code is taken, so call it
// only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Any error produced at runtime wraps exactly one of
// them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is shorthand for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Is reports whether e is the root of err. A nil root matches only a nil
// error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return walk(err, func(cur error) bool {
		return cur == e
	})
}

// Wrap adds description to err. The first wrap of a chain records the
// stack. A nil err stays nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the whole chain and the innermost stack for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// walk calls fn on err and every error it wraps until fn returns true.
func walk(err error, fn func(error) bool) bool {
	for err != nil {
		if fn(err) {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		t, ok := cur.(interface{ StackTrace() errors.StackTrace })
		if ok {
			st = t.StackTrace()
		}
		return ok
	})
	return st
}

// isNilErr also treats a typed nil pointer as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
