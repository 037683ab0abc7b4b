package expand

import (
	"fmt"
	"time"
)

// ArgumentError reports malformed call-time arguments. Recoverable.
type ArgumentError struct {
	Command string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for command %q: %s", e.Command, e.Message)
}

// UserMessage returns a rendering suitable for direct display.
func (e *ArgumentError) UserMessage() string {
	return fmt.Sprintf("The arguments for %q are not valid: %s", e.Command, e.Message)
}

// ExecutionError reports a failed inline shell snippet: spawn failure,
// non-zero exit (Stderr carries the captured diagnostics), or a snippet
// denied by the command's permission grants.
type ExecutionError struct {
	Snippet string
	Message string
	Stderr  string
}

func (e *ExecutionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to execute shell snippet %q: %s: %s", e.Snippet, e.Message, e.Stderr)
	}
	return fmt.Sprintf("failed to execute shell snippet %q: %s", e.Snippet, e.Message)
}

// UserMessage returns a rendering suitable for direct display.
func (e *ExecutionError) UserMessage() string {
	return fmt.Sprintf("The inline command `%s` failed: %s", e.Snippet, e.Message)
}

// TimeoutError reports an inline shell snippet that exceeded its bound.
type TimeoutError struct {
	Snippet string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("shell snippet %q timed out after %s", e.Snippet, e.Timeout)
}

// UserMessage returns a rendering suitable for direct display.
func (e *TimeoutError) UserMessage() string {
	return fmt.Sprintf("The inline command `%s` did not finish within %s.", e.Snippet, e.Timeout)
}

// FileReferenceError reports a missing, oversized, or unreadable
// referenced file.
type FileReferenceError struct {
	File    string
	Message string
	Err     error
}

func (e *FileReferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to resolve file reference %q: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("failed to resolve file reference %q: %s", e.File, e.Message)
}

func (e *FileReferenceError) Unwrap() error { return e.Err }

// UserMessage returns a rendering suitable for direct display.
func (e *FileReferenceError) UserMessage() string {
	return fmt.Sprintf("Could not include @%s: %s", e.File, e.Message)
}
