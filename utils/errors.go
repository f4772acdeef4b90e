// Package utils contains small helpers shared by the splitters packages.
package utils

import (
	"github.com/pkg/errors"
)

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// NewUnimplementedInterfaceError is used when there is a failed interface check.
func NewUnimplementedInterfaceError(expected string, actual interface{}) error {
	return errors.Errorf("expected implementation of %s but got %T", expected, actual)
}

// NewLengthMismatchError is used when two collections that must line up have different lengths.
func NewLengthMismatchError(what string, expected, actual int) error {
	return errors.Errorf("%s has length %d but %d was expected", what, actual, expected)
}
