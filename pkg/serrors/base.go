package serrors

import "fmt"

// Base is a coded error carried across service boundaries. Code is stable and
// machine-readable; Message is a developer-facing default.
type Base struct {
	Code    string
	Message string
	Field   string
}

func (e *Base) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, field string) *Base {
	return &Base{Code: code, Message: message, Field: field}
}
