// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"fmt"
	"strings"
)

// UnsupportedAcceleratorError is returned when a tuning request names an
// accelerator outside the supported set.
type UnsupportedAcceleratorError struct {
	// Accelerator is the rejected value.
	Accelerator AcceleratorType
}

// Error implements the error interface.
func (e *UnsupportedAcceleratorError) Error() string {
	return fmt.Sprintf("unsupported accelerator type %q, must be one of TPU, GPU", string(e.Accelerator))
}

// UnsupportedLocationError is returned when a tuning request names a location
// the tuning pipeline does not run in.
type UnsupportedLocationError struct {
	// Kind names the location field, "tuning job" or "tuned model".
	Kind string

	// Location is the rejected value.
	Location string

	// Supported lists the accepted locations.
	Supported []string
}

// Error implements the error interface.
func (e *UnsupportedLocationError) Error() string {
	return fmt.Sprintf("unsupported %s location %q, must be one of %s",
		e.Kind, e.Location, strings.Join(e.Supported, ", "))
}

// InvalidDataURIError is returned when a dataset reference is neither a
// gs:// URI nor a readable local file.
type InvalidDataURIError struct {
	// Field names the dataset field.
	Field string

	// URI is the rejected value.
	URI string
}

// Error implements the error interface.
func (e *InvalidDataURIError) Error() string {
	return fmt.Sprintf("%s must be a gs:// URI, got %q", e.Field, e.URI)
}

// UnusedEvaluationFieldError is returned when an RLHF tuning request sets an
// evaluation spec field the RLHF pipeline does not honor.
type UnusedEvaluationFieldError struct {
	// Field is the offending evaluation spec field.
	Field string
}

// Error implements the error interface.
func (e *UnusedEvaluationFieldError) Error() string {
	return fmt.Sprintf("evaluation spec field %s is not supported for RLHF tuning", e.Field)
}

// JobNotFoundError is returned when a job name does not exist.
type JobNotFoundError struct {
	// Name is the unknown job name.
	Name string
}

// Error implements the error interface.
func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("tuning job %s not found", e.Name)
}
