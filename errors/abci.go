package errors

import "fmt"

const (
	// SuccessABCICode is the code of a successful response.
	SuccessABCICode uint32 = 0

	// errors without a registered root are reported under code 1
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// An error without a registered root gets code 1. Outside of debug mode its
// message is replaced by "internal error", and so is the message of a
// recovered panic. Debug mode logs the full chain with its stack.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, code == ErrPanic.code:
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the chain that has one.
func abciCode(err error) uint32 {
	code := internalABCICode
	walk(err, func(cur error) bool {
		c, ok := cur.(coder)
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}
