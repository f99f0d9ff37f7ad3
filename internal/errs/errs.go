// Package errs defines the small error taxonomy the matrix resolver and
// template-tree expander use to report failures: configuration, IO and
// render errors, each discoverable with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap one of these with Config/IO/Render to build a
// concrete error; callers test the kind with errors.Is(err, errs.Configuration).
var (
	Configuration = errors.New("configuration error")
	IO            = errors.New("io error")
	Render        = errors.New("render error")
)

type kindError struct {
	kind error
	msg  string
	err  error
}

func (e *kindError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *kindError) Unwrap() []error {
	if e.err != nil {
		return []error{e.kind, e.err}
	}
	return []error{e.kind}
}

// Config builds a configuration error with the given context message.
func Config(format string, args ...interface{}) error {
	return &kindError{kind: Configuration, msg: fmt.Sprintf(format, args...)}
}

// ConfigWrap builds a configuration error wrapping a lower-level cause.
func ConfigWrap(cause error, format string, args ...interface{}) error {
	return &kindError{kind: Configuration, msg: fmt.Sprintf(format, args...), err: cause}
}

// IOErr builds an IO error wrapping a lower-level cause.
func IOErr(cause error, format string, args ...interface{}) error {
	return &kindError{kind: IO, msg: fmt.Sprintf(format, args...), err: cause}
}

// RenderErr builds a render error wrapping a lower-level cause.
func RenderErr(cause error, format string, args ...interface{}) error {
	return &kindError{kind: Render, msg: fmt.Sprintf(format, args...), err: cause}
}
