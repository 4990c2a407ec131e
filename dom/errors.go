package dom

import (
	"errors"
	"fmt"
)

// DOMError names.
const (
	HierarchyRequestErr = "HierarchyRequestError"
	NotFoundErr         = "NotFoundError"
	InvalidCharacterErr = "InvalidCharacterError"
	NotSupportedErr     = "NotSupportedError"
	InvalidStateErr     = "InvalidStateError"
	WrongDocumentErr    = "WrongDocumentError"
	InUseAttributeErr   = "InUseAttributeError"
)

// DOMError represents a DOM exception with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is a *DOMError with the same name, so that
// errors.Is(err, ErrNotFound("")) matches any NotFoundError.
func (e *DOMError) Is(target error) bool {
	t, ok := target.(*DOMError)
	return ok && t.Name == e.Name
}

// IsDOMError reports whether err is or wraps a DOMError with the given name.
func IsDOMError(err error, name string) bool {
	var domErr *DOMError
	return errors.As(err, &domErr) && domErr.Name == name
}

// Common DOM error constructors

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: HierarchyRequestErr, Message: message}
}

// ErrNotFound creates a NotFoundError.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: NotFoundErr, Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *DOMError {
	return &DOMError{Name: InvalidCharacterErr, Message: message}
}

// ErrNotSupported creates a NotSupportedError.
func ErrNotSupported(message string) *DOMError {
	return &DOMError{Name: NotSupportedErr, Message: message}
}

// ErrInvalidState creates an InvalidStateError.
func ErrInvalidState(message string) *DOMError {
	return &DOMError{Name: InvalidStateErr, Message: message}
}

// ErrWrongDocument creates a WrongDocumentError.
func ErrWrongDocument(message string) *DOMError {
	return &DOMError{Name: WrongDocumentErr, Message: message}
}

// ErrInUseAttribute creates an InUseAttributeError.
func ErrInUseAttribute(message string) *DOMError {
	return &DOMError{Name: InUseAttributeErr, Message: message}
}
