package core

import (
	"errors"
	"fmt"
	"io"
)

// Error codes of the layout and drawing passes. A pass which cannot handle
// an element skips it and records an error carrying one of these codes.
const (
	NOERROR      int = 0
	EMISSING     int = 122 // required ancestor or anchor does not exist
	EINVALID     int = 123 // malformed membership or attribute
	EUNSUPPORTED int = 124 // configuration cannot be laid out or drawn
	EINTERNAL    int = 125 // internal error
)

var codeText = map[int]string{
	NOERROR:      "OK",
	EMISSING:     "not found",
	EINVALID:     "invalid",
	EUNSUPPORTED: "unsupported",
	EINTERNAL:    "internal error",
}

// CodeText returns a short description of an error code.
func CodeText(code int) string {
	if text, ok := codeText[code]; ok {
		return text
	}
	return "undefined error"
}

// codedError attaches a code and a message for the user to a cause.
type codedError struct {
	cause error
	code  int
	msg   string
}

func (e codedError) Error() string {
	if e.msg == "" || e.msg == e.cause.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %v: %s", e.code, e.cause, e.msg)
}

func (e codedError) Unwrap() error {
	return e.cause
}

// Error creates an error with an error code and a message for the user.
func Error(code int, format string, v ...interface{}) error {
	return WrapError(nil, code, format, v...)
}

// WrapError wraps err, adding an error code and a message for the user.
// If err is nil, the code's description is used as the cause.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(CodeText(code))
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code returns the code of the outermost coded error in err's chain.
// Errors without a code are EINTERNAL; a nil error is NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e codedError
	if errors.As(err, &e) {
		return e.code
	}
	return EINTERNAL
}

// UserMessage returns the message for the user of the outermost coded
// error in err's chain, falling back to the code's description.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e codedError
	if errors.As(err, &e) && e.msg != "" {
		return e.msg
	}
	return CodeText(Code(err))
}

// Report writes a one-line description of err to w, of the form
// "[code] message". Errors without a code print their own text.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var e codedError
	if errors.As(err, &e) {
		fmt.Fprintf(w, "[%d] %s\n", e.code, UserMessage(err))
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
