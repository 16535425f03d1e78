// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import "fmt"

// CapabilityError is returned when an operation is invoked on a model that
// does not declare the required capability. It is always returned before any
// network call.
type CapabilityError struct {
	// Model is the publisher model name.
	Model string

	// Capability is the capability the operation requires.
	Capability Capability
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("model %s does not support %s", e.Model, e.Capability)
}

// EmptyResponseError is returned when the service responds successfully but
// the response carries no usable predictions or candidates.
type EmptyResponseError struct{}

// Error implements the error interface.
func (e *EmptyResponseError) Error() string {
	return "prediction response contained no candidates"
}

// MalformedPredictionError is returned when a prediction payload lacks a
// field the surface requires.
type MalformedPredictionError struct {
	// Field is the missing or malformed field.
	Field string
}

// Error implements the error interface.
func (e *MalformedPredictionError) Error() string {
	return fmt.Sprintf("prediction payload missing or malformed field %q", e.Field)
}
