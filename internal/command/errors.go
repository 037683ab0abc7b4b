package command

import "fmt"

// NotFoundError reports an unknown command name. Recoverable: the caller
// should suggest listing available commands.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("custom command %q not found", e.Name)
}

// UserMessage returns a rendering suitable for direct display.
func (e *NotFoundError) UserMessage() string {
	return fmt.Sprintf("Command %q not found. Run the list command to see what is available.", e.Name)
}

// InvalidDefinitionError reports a structurally invalid command file:
// empty or malformed name, empty body. Logged and skipped during
// discovery; a hard error when the file is explicitly requested.
type InvalidDefinitionError struct {
	Path   string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid command definition %q: %s", e.Path, e.Reason)
}

// UserMessage returns a rendering suitable for direct display.
func (e *InvalidDefinitionError) UserMessage() string {
	return fmt.Sprintf("The command file %s is invalid: %s", e.Path, e.Reason)
}
