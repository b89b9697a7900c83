package parser

import "fmt"

// ParamError is a user-facing rejection of a command's parameters. Its
// message is sent back to the chat as-is; it is never treated as a failure.
type ParamError struct {
	msg string
}

func (e *ParamError) Error() string {
	return e.msg
}

func paramErrorf(format string, args ...any) *ParamError {
	return &ParamError{msg: fmt.Sprintf(format, args...)}
}
