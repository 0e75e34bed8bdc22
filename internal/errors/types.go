package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a run failure with the stage it happened in. Extraction misses are
// never reported as errors; only configuration, input and output problems
// are.
type Error struct {
	Type ErrorType `json:"type"`
	Op   string    `json:"operation"`
	Path string    `json:"path,omitempty"`
	Err  error     `json:"error"`
}

// ErrorType categorises run failures.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeConfig
	ErrorTypeInput
	ErrorTypeOutput
)

// Exit codes per error type.
const (
	ExitUnknown = 1
	ExitConfig  = 2
	ExitInput   = 3
	ExitOutput  = 4
)

// Error implements the error interface
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s %s: %v", e.Type.String(), e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Type.String(), e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeInput:
		return "INPUT"
	case ErrorTypeOutput:
		return "OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// Config wraps a configuration failure.
func Config(op string, err error) error {
	return &Error{Type: ErrorTypeConfig, Op: op, Err: err}
}

// Input wraps a failure to open, validate or render the input document.
func Input(op, path string, err error) error {
	return &Error{Type: ErrorTypeInput, Op: op, Path: path, Err: err}
}

// Output wraps a failure to write a result file.
func Output(op, path string, err error) error {
	return &Error{Type: ErrorTypeOutput, Op: op, Path: path, Err: err}
}

// TypeOf returns the type of the first *Error in err's chain.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// ExitCode maps err to a process exit status. A nil error exits 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch TypeOf(err) {
	case ErrorTypeConfig:
		return ExitConfig
	case ErrorTypeInput:
		return ExitInput
	case ErrorTypeOutput:
		return ExitOutput
	default:
		return ExitUnknown
	}
}
