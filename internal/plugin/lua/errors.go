package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution exceeds its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)

// ScriptError is a failure raised while running a script.
type ScriptError struct {
	Source string // File name or "<string>"
	Kind   string // "syntax" or "runtime"
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Source, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// wrapError converts a gopher-lua error into a ScriptError.
func wrapError(source string, err error) error {
	if err == nil {
		return nil
	}
	kind := "runtime"
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Type == lua.ApiErrorSyntax {
		kind = "syntax"
	}
	return &ScriptError{Source: source, Kind: kind, Err: err}
}
