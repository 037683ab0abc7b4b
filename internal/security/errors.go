package security

import "fmt"

// SecurityError reports a denylisted pattern or unsafe path under an
// enforcing policy. It is fatal to the expansion that raised it and is
// never downgraded.
type SecurityError struct {
	// Command names the command (or pipeline stage) being validated.
	Command string
	Message string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security violation in command %q: %s", e.Command, e.Message)
}

// UserMessage returns a rendering suitable for direct display.
func (e *SecurityError) UserMessage() string {
	return fmt.Sprintf("Command %q was blocked for security reasons: %s", e.Command, e.Message)
}

// ConfigError reports a policy store I/O or format failure. A corrupt
// policy file is fatal since silently defaulting would hide user intent.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UserMessage returns a rendering suitable for direct display.
func (e *ConfigError) UserMessage() string {
	return fmt.Sprintf("Configuration problem: %s", e.Message)
}
