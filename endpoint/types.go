// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"fmt"
	"iter"
)

// PredictResponse is one response from the prediction service.
//
// Predictions holds the raw prediction dictionaries exactly as the service
// returned them; parsing into typed results is the caller's concern.
type PredictResponse struct {
	// Predictions are the raw prediction payloads, one map per prediction.
	Predictions []map[string]any

	// DeployedModelID is the ID of the deployed model that served the request.
	DeployedModelID string

	// ModelVersionID is the version of the model that served the request.
	ModelVersionID string
}

// CountTokensResponse reports token usage for a set of instances without
// running a prediction.
type CountTokensResponse struct {
	// TotalTokens is the total number of tokens counted across all instances.
	TotalTokens int32

	// TotalBillableCharacters is the total number of billable characters
	// counted across all instances.
	TotalBillableCharacters int32
}

// Client is the remote prediction collaborator used by the model packages.
//
// Implementations must be safe for concurrent use by independent sessions.
type Client interface {
	// Predict sends instances and parameters to the service and returns the
	// full response.
	Predict(ctx context.Context, instances []map[string]any, parameters map[string]any) (*PredictResponse, error)

	// PredictStream sends a single instance and returns a lazy, single-pass
	// sequence of partial responses. The sequence is exhausted exactly once;
	// abandoning iteration cancels the underlying stream.
	PredictStream(ctx context.Context, instance map[string]any, parameters map[string]any) iter.Seq2[*PredictResponse, error]

	// CountTokens counts tokens and billable characters for the given
	// instances without running a prediction.
	CountTokens(ctx context.Context, instances []map[string]any) (*CountTokensResponse, error)

	// Close releases the underlying transport resources.
	Close() error
}

// ResourceName returns the publisher model resource name used as the predict
// endpoint for a foundation model.
func ResourceName(projectID, location, model string) string {
	return fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s", projectID, location, model)
}
