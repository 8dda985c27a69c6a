package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource == "":
		return "not found"
	case e.ID == "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// WriteError reports that the store rejected a mutation.
type WriteError struct {
	Op  string
	Err error
}

func (e WriteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s could not be recorded", e.Op)
	}
	return fmt.Sprintf("%s could not be recorded: %v", e.Op, e.Err)
}

func (e WriteError) Unwrap() error { return e.Err }

// TransientError reports a timeout or a lost connection. Callers may retry.
type TransientError struct {
	Op  string
	Err error
}

func (e TransientError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: store temporarily unavailable", e.Op)
	}
	return fmt.Sprintf("%s: store temporarily unavailable: %v", e.Op, e.Err)
}

func (e TransientError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsWrite(err error) bool {
	var target WriteError
	return errors.As(err, &target)
}

func IsTransient(err error) bool {
	var target TransientError
	return errors.As(err, &target)
}

// NotFoundResource returns the resource name of a NotFoundError in the chain.
func NotFoundResource(err error) string {
	var target NotFoundError
	if errors.As(err, &target) {
		return target.Resource
	}
	return ""
}
