// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"iter"
	"log/slog"

	"github.com/go-a2a/vertexlm/endpoint"
)

// Predict generates code from a natural language description, or completes
// code when a suffix is given.
//
// The prefix is the text before the insertion point; the suffix, when
// non-empty, is the text after it. The code surface accepts only the token
// limit, temperature, stop sequence, and candidate count controls; other
// options are ignored.
func (m *CodeGenerationModel) Predict(ctx context.Context, prefix, suffix string, opts ...GenerationOption) (*MultiCandidateResponse, error) {
	if err := m.checkCapability(CapabilityCodeGeneration); err != nil {
		return nil, err
	}

	req := buildCodeRequest(prefix, suffix, applyGenerationOptions(opts))
	resp, err := m.endpoint.Predict(ctx, []map[string]any{req.Instance}, req.Parameters)
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "code prediction completed",
		slog.String("model", m.name),
		slog.Int("candidates", len(resp.Predictions)),
	)

	return parseTextPredictions(resp.Predictions)
}

// PredictStream generates code from a natural language description, yielding
// partial responses as they arrive. Completion with a suffix is not supported
// on the streaming surface.
func (m *CodeGenerationModel) PredictStream(ctx context.Context, prefix string, opts ...GenerationOption) iter.Seq2[*GenerationResponse, error] {
	return func(yield func(*GenerationResponse, error) bool) {
		if err := m.checkCapability(CapabilityCodeGeneration); err != nil {
			yield(nil, err)
			return
		}

		req := buildCodeRequest(prefix, "", applyGenerationOptions(opts))
		delete(req.Parameters, "candidateCount")

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

// CountTokens counts the tokens and billable characters of a code prompt
// without running a prediction.
func (m *CodeGenerationModel) CountTokens(ctx context.Context, prefix string) (*endpoint.CountTokensResponse, error) {
	if err := m.checkCapability(CapabilityCountTokens); err != nil {
		return nil, err
	}
	return m.endpoint.CountTokens(ctx, []map[string]any{{"prefix": prefix}})
}

// CodeChatSession is a [ChatSession] restricted to the controls the code
// chat surface accepts: context, token limit, temperature, and stop
// sequences.
type CodeChatSession struct {
	*ChatSession
}

// StartChat starts a new code chat session.
func (m *CodeChatModel) StartChat(opts ...ChatOption) *CodeChatSession {
	return &CodeChatSession{
		ChatSession: newChatSession(m.Model, true, opts),
	}
}
