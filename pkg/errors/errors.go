package errors

import (
	"fmt"
	"strings"
)

// Error types for tracestack
var (
	ErrInvalidEngine  = fmt.Errorf("INVALID_ENGINE")
	ErrNoActiveError  = fmt.Errorf("NO_ACTIVE_ERROR")
	ErrNotPanicOutput = fmt.Errorf("NOT_PANIC_OUTPUT")
)

// ConfigurationError reports an option value that cannot be used to build a handler
type ConfigurationError struct {
	Option  string
	Value   interface{}
	Choices []string
	Err     error
}

func (e *ConfigurationError) Error() string {
	quoted := make([]string, len(e.Choices))
	for i, c := range e.Choices {
		quoted[i] = fmt.Sprintf("'%s'", c)
	}
	return fmt.Sprintf("'%v' is not a valid %s option (choose between %s): %v",
		e.Value, e.Option, joinChoices(quoted), e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// joinChoices renders "a, b, and c"
func joinChoices(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
