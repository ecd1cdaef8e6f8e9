package rpc

import "fmt"

// ParseError reports a malformed envelope line. It affects only the
// offending line; the connection stays open.
type ParseError struct {
	Line  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid json: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// UnknownMethodError reports a request for a method the server does not
// implement.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method: %s", e.Method)
}

// ServerError is an error envelope received by the client.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
