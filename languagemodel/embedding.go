// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/vertexlm/endpoint"
)

// embeddingBatchSize is the maximum number of instances per prediction call
// accepted by the embedding surface.
const embeddingBatchSize = 5

// embeddingMaxInFlight bounds the number of concurrent batch calls.
const embeddingMaxInFlight = 4

// TaskType hints the embedding model at the downstream use of the vector.
type TaskType string

const (
	TaskTypeRetrievalQuery     TaskType = "RETRIEVAL_QUERY"
	TaskTypeRetrievalDocument  TaskType = "RETRIEVAL_DOCUMENT"
	TaskTypeSemanticSimilarity TaskType = "SEMANTIC_SIMILARITY"
	TaskTypeClassification     TaskType = "CLASSIFICATION"
	TaskTypeClustering         TaskType = "CLUSTERING"
)

// TextEmbeddingInput is one text to embed, with optional task hints.
type TextEmbeddingInput struct {
	// Text is the text to embed.
	Text string

	// TaskType optionally hints at the downstream use of the vector.
	TaskType TaskType

	// Title optionally names the document; only valid with
	// [TaskTypeRetrievalDocument].
	Title string
}

// TextEmbeddingStatistics reports how the service tokenized one input.
type TextEmbeddingStatistics struct {
	// TokenCount is the number of tokens in the input.
	TokenCount int

	// Truncated reports whether the input exceeded the model limit and was
	// truncated before embedding.
	Truncated bool
}

// TextEmbedding is the embedding vector for one input.
type TextEmbedding struct {
	// Values is the dense embedding vector.
	Values []float64

	// Statistics reports tokenization details when the service returned
	// them.
	Statistics *TextEmbeddingStatistics
}

// EmbeddingOption configures an embedding call.
type EmbeddingOption func(*embeddingParams)

type embeddingParams struct {
	autoTruncate         bool
	outputDimensionality *int
}

// WithAutoTruncate controls whether over-length inputs are truncated by the
// service instead of rejected. The default is true.
func WithAutoTruncate(autoTruncate bool) EmbeddingOption {
	return func(p *embeddingParams) { p.autoTruncate = autoTruncate }
}

// WithOutputDimensionality requests vectors of the given dimension.
func WithOutputDimensionality(dimension int) EmbeddingOption {
	return func(p *embeddingParams) { p.outputDimensionality = &dimension }
}

// GetEmbeddings computes embeddings for the given inputs.
//
// Inputs beyond the per-call batch limit are split into batches issued
// concurrently. Results are returned in input order regardless of batch
// completion order; any batch failure fails the whole call.
func (m *TextEmbeddingModel) GetEmbeddings(ctx context.Context, inputs []TextEmbeddingInput, opts ...EmbeddingOption) ([]*TextEmbedding, error) {
	if err := m.checkCapability(CapabilityEmbedding); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	p := &embeddingParams{autoTruncate: true}
	for _, opt := range opts {
		opt(p)
	}

	parameters := map[string]any{"autoTruncate": p.autoTruncate}
	if p.outputDimensionality != nil {
		parameters["outputDimensionality"] = *p.outputDimensionality
	}

	results := make([]*TextEmbedding, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(embeddingMaxInFlight)
	for start := 0; start < len(inputs); start += embeddingBatchSize {
		batch := inputs[start:min(start+embeddingBatchSize, len(inputs))]
		eg.Go(func() error {
			instances := make([]map[string]any, 0, len(batch))
			for _, input := range batch {
				instances = append(instances, embeddingInstance(input))
			}

			resp, err := m.endpoint.Predict(ctx, instances, parameters)
			if err != nil {
				return err
			}
			if len(resp.Predictions) != len(batch) {
				return fmt.Errorf("embedding batch returned %d predictions for %d instances", len(resp.Predictions), len(batch))
			}

			for i, prediction := range resp.Predictions {
				embedding, err := parseEmbeddingPrediction(prediction)
				if err != nil {
					return err
				}
				results[start+i] = embedding
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "embeddings computed",
		slog.String("model", m.name),
		slog.Int("inputs", len(inputs)),
	)

	return results, nil
}

// CountTokens counts the tokens and billable characters of the given texts
// without computing embeddings.
func (m *TextEmbeddingModel) CountTokens(ctx context.Context, texts []string) (*endpoint.CountTokensResponse, error) {
	if err := m.checkCapability(CapabilityCountTokens); err != nil {
		return nil, err
	}
	instances := make([]map[string]any, 0, len(texts))
	for _, text := range texts {
		instances = append(instances, map[string]any{"content": text})
	}
	return m.endpoint.CountTokens(ctx, instances)
}

func embeddingInstance(input TextEmbeddingInput) map[string]any {
	instance := map[string]any{"content": input.Text}
	if input.TaskType != "" {
		instance["task_type"] = string(input.TaskType)
	}
	if input.Title != "" {
		instance["title"] = input.Title
	}
	return instance
}

func parseEmbeddingPrediction(prediction map[string]any) (*TextEmbedding, error) {
	payload := anyMap(prediction["embeddings"])
	if payload == nil {
		return nil, &MalformedPredictionError{Field: "embeddings"}
	}

	rawValues := anySlice(payload["values"])
	values := make([]float64, 0, len(rawValues))
	for _, raw := range rawValues {
		v, ok := anyToFloat(raw)
		if !ok {
			return nil, &MalformedPredictionError{Field: "embeddings.values"}
		}
		values = append(values, v)
	}

	embedding := &TextEmbedding{Values: values}
	if stats := anyMap(payload["statistics"]); stats != nil {
		tokenCount, _ := anyToInt(stats["token_count"])
		truncated, _ := stats["truncated"].(bool)
		embedding.Statistics = &TextEmbeddingStatistics{
			TokenCount: tokenCount,
			Truncated:  truncated,
		}
	}
	return embedding, nil
}
