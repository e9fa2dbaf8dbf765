/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package errors exposes the interface of github.com/pkg/errors and allows
// for SDK customizations. The current implementation is a plain wrapper but
// we envision adding structured context and error codes.
package errors

import (
	perrors "github.com/pkg/errors"
)

// New returns an error with the supplied message.
func New(message string) error {
	return perrors.New(message)
}

// Errorf formats according to a format specifier and returns an error.
func Errorf(format string, args ...interface{}) error {
	return perrors.Errorf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return perrors.WithStack(err)
}

// Wrap returns an error annotating err with a stack trace and message.
func Wrap(err error, message string) error {
	return perrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and format specifier.
func Wrapf(err error, format string, args ...interface{}) error {
	return perrors.Wrapf(err, format, args...)
}

// WithMessage annotates err with a new message.
func WithMessage(err error, message string) error {
	return perrors.WithMessage(err, message)
}

// WithMessagef annotates err with the format specifier.
func WithMessagef(err error, format string, args ...interface{}) error {
	return perrors.WithMessagef(err, format, args...)
}

// Cause returns the underlying cause of the error, if possible.
func Cause(err error) error {
	return perrors.Cause(err)
}
