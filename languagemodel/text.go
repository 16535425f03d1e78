// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"iter"
	"log/slog"

	"github.com/go-a2a/vertexlm/endpoint"
)

// Predict generates text from a single prompt.
//
// When no token limit is set the surface default of 128 output tokens is
// applied. The first candidate is mirrored onto the returned response; the
// full candidate list is available under Candidates.
func (m *TextGenerationModel) Predict(ctx context.Context, prompt string, opts ...GenerationOption) (*MultiCandidateResponse, error) {
	if err := m.checkCapability(CapabilityTextGeneration); err != nil {
		return nil, err
	}

	req := m.buildRequest(prompt, opts)
	resp, err := m.endpoint.Predict(ctx, []map[string]any{req.Instance}, req.Parameters)
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "text prediction completed",
		slog.String("model", m.name),
		slog.Int("candidates", len(resp.Predictions)),
	)

	return parseTextPredictions(resp.Predictions)
}

// PredictStream generates text from a single prompt, yielding partial
// responses as they arrive. The sequence is lazy and single-pass.
//
// Candidate count and grounding are not supported on the streaming surface
// and are ignored when set.
func (m *TextGenerationModel) PredictStream(ctx context.Context, prompt string, opts ...GenerationOption) iter.Seq2[*GenerationResponse, error] {
	return func(yield func(*GenerationResponse, error) bool) {
		if err := m.checkCapability(CapabilityTextGeneration); err != nil {
			yield(nil, err)
			return
		}

		req := m.buildRequest(prompt, opts)
		delete(req.Parameters, "candidateCount")
		delete(req.Parameters, "groundingConfig")

		for resp, err := range m.endpoint.PredictStream(ctx, req.Instance, req.Parameters) {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, prediction := range resp.Predictions {
				if !yield(parseTextPrediction(prediction), nil) {
					return
				}
			}
		}
	}
}

// CountTokens counts the tokens and billable characters of a prompt without
// running a prediction.
func (m *TextGenerationModel) CountTokens(ctx context.Context, prompt string) (*endpoint.CountTokensResponse, error) {
	if err := m.checkCapability(CapabilityCountTokens); err != nil {
		return nil, err
	}
	return m.endpoint.CountTokens(ctx, []map[string]any{{"content": prompt}})
}

func (m *TextGenerationModel) buildRequest(prompt string, opts []GenerationOption) *PredictionRequest {
	p := applyGenerationOptions(opts)
	if p.MaxOutputTokens == nil {
		tokens := defaultTextMaxOutputTokens
		p.MaxOutputTokens = &tokens
	}
	return buildTextRequest(prompt, p)
}
