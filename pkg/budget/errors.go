package budget

import (
	"errors"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindParse      ErrorKind = "parse"
	KindStorage    ErrorKind = "storage"
	KindSuggestion ErrorKind = "suggestion"
)

var ErrBudgetEntryNotFound = errors.New("Budget entry not found")

// Error classifies a failure of a budget operation. Its message is the message of the wrapped error,
// so clients see the underlying text unchanged.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func validationError(message string) *Error {
	return newError(KindValidation, errors.New(message))
}

// KindOf returns the kind of a budget error, or an empty kind for any other error.
func KindOf(err error) ErrorKind {
	var budgetErr *Error
	if errors.As(err, &budgetErr) {
		return budgetErr.Kind
	}
	return ""
}
