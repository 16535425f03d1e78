// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package endpoint provides access to the remote prediction service that
// serves the language models.
//
// The package exposes a narrow [Client] interface — synchronous prediction,
// server-streaming prediction, and token counting — together with
// [PredictionEndpoint], the production implementation backed by the Vertex AI
// PredictionService. Model packages depend only on the interface, so tests
// substitute in-memory fakes.
//
// Requests and responses cross this boundary as plain instance/parameter maps;
// conversion to and from the service's protobuf representation (structpb
// values for unary calls, tensors for the streaming surface) happens entirely
// inside this package.
//
// The endpoint performs no retries and no result caching: transport failures
// are wrapped with call context and returned to the caller unmodified in
// cause. Retry and backoff policy belongs to the underlying transport client.
package endpoint
