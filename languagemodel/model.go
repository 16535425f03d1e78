// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"log/slog"

	"google.golang.org/api/option"

	"github.com/go-a2a/vertexlm/endpoint"
	"github.com/go-a2a/vertexlm/pkg/logging"
)

// Model is the shared state of every concrete model type: the publisher
// model name, the prediction endpoint, and the declared capability set.
type Model struct {
	name         string
	projectID    string
	location     string
	endpoint     endpoint.Client
	capabilities Capability
	logger       *slog.Logger
}

// Name returns the publisher model name, for example "text-bison@002".
func (m *Model) Name() string {
	return m.name
}

// Capabilities returns the capability set declared at construction time.
func (m *Model) Capabilities() Capability {
	return m.capabilities
}

// Close releases the underlying endpoint resources.
func (m *Model) Close() error {
	return m.endpoint.Close()
}

// checkCapability returns a [*CapabilityError] when the model does not
// declare the required capability.
func (m *Model) checkCapability(required Capability) error {
	if !m.capabilities.Has(required) {
		return &CapabilityError{Model: m.name, Capability: required}
	}
	return nil
}

// ModelOption configures model construction.
type ModelOption func(*modelOptions)

type modelOptions struct {
	endpoint   endpoint.Client
	logger     *slog.Logger
	clientOpts []option.ClientOption
}

// WithEndpoint uses the given endpoint client instead of dialing the
// prediction service. Intended for tests and custom transports.
func WithEndpoint(client endpoint.Client) ModelOption {
	return func(o *modelOptions) { o.endpoint = client }
}

// WithLogger sets the logger used by the model and its sessions.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(o *modelOptions) { o.logger = logger }
}

// WithClientOptions passes transport options through to the underlying
// prediction service client.
func WithClientOptions(opts ...option.ClientOption) ModelOption {
	return func(o *modelOptions) { o.clientOpts = opts }
}

func newModel(ctx context.Context, projectID, location, model string, capabilities Capability, opts []ModelOption) (*Model, error) {
	o := &modelOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.FromContext(ctx)
	}

	client := o.endpoint
	if client == nil {
		var err error
		client, err = endpoint.NewPredictionEndpoint(ctx, projectID, location, model, o.clientOpts...)
		if err != nil {
			return nil, err
		}
	}

	return &Model{
		name:         model,
		projectID:    projectID,
		location:     location,
		endpoint:     client,
		capabilities: capabilities,
		logger:       o.logger,
	}, nil
}

// TextGenerationModel generates text from a single prompt.
type TextGenerationModel struct {
	*Model
}

// NewTextGenerationModel creates a client for a text generation model.
//
// Parameters:
//   - ctx: Context for initialization
//   - projectID: Google Cloud project ID
//   - location: Geographic location (e.g., "us-central1")
//   - model: Publisher model ID (e.g., "text-bison@002")
//   - opts: Optional configuration
func NewTextGenerationModel(ctx context.Context, projectID, location, model string, opts ...ModelOption) (*TextGenerationModel, error) {
	m, err := newModel(ctx, projectID, location, model,
		CapabilityTextGeneration|CapabilityCountTokens, opts)
	if err != nil {
		return nil, err
	}
	return &TextGenerationModel{Model: m}, nil
}

// ChatModel holds multi-turn conversations through [ChatSession].
type ChatModel struct {
	*Model
}

// NewChatModel creates a client for a conversational model.
func NewChatModel(ctx context.Context, projectID, location, model string, opts ...ModelOption) (*ChatModel, error) {
	m, err := newModel(ctx, projectID, location, model,
		CapabilityChat|CapabilityCountTokens, opts)
	if err != nil {
		return nil, err
	}
	return &ChatModel{Model: m}, nil
}

// CodeGenerationModel generates code from a natural language description or
// completes code between a prefix and an optional suffix.
type CodeGenerationModel struct {
	*Model
}

// NewCodeGenerationModel creates a client for a code generation model.
func NewCodeGenerationModel(ctx context.Context, projectID, location, model string, opts ...ModelOption) (*CodeGenerationModel, error) {
	m, err := newModel(ctx, projectID, location, model,
		CapabilityCodeGeneration|CapabilityCountTokens, opts)
	if err != nil {
		return nil, err
	}
	return &CodeGenerationModel{Model: m}, nil
}

// CodeChatModel holds multi-turn conversations about code through
// [CodeChatSession].
type CodeChatModel struct {
	*Model
}

// NewCodeChatModel creates a client for a conversational code model.
func NewCodeChatModel(ctx context.Context, projectID, location, model string, opts ...ModelOption) (*CodeChatModel, error) {
	m, err := newModel(ctx, projectID, location, model,
		CapabilityChat|CapabilityCountTokens, opts)
	if err != nil {
		return nil, err
	}
	return &CodeChatModel{Model: m}, nil
}

// TextEmbeddingModel computes dense vector embeddings for text.
type TextEmbeddingModel struct {
	*Model
}

// NewTextEmbeddingModel creates a client for a text embedding model.
func NewTextEmbeddingModel(ctx context.Context, projectID, location, model string, opts ...ModelOption) (*TextEmbeddingModel, error) {
	m, err := newModel(ctx, projectID, location, model,
		CapabilityEmbedding|CapabilityCountTokens, opts)
	if err != nil {
		return nil, err
	}
	return &TextEmbeddingModel{Model: m}, nil
}
