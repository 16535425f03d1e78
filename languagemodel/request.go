// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Parameter keys differ between the text/chat surface and the code surface
// for the token limit. Everything else is shared.
const (
	maxTokensKeyText = "maxDecodeSteps"
	maxTokensKeyCode = "maxOutputTokens"
)

// defaultTextMaxOutputTokens is applied by the text generation surface when
// the caller does not set a limit.
const defaultTextMaxOutputTokens = 128

// PredictionRequest is a fully shaped request for one prediction call: a
// single instance plus the shared parameters dictionary.
type PredictionRequest struct {
	Instance   map[string]any `json:"instance"`
	Parameters map[string]any `json:"parameters"`
}

// ToJSON converts the PredictionRequest to its JSON representation.
func (r *PredictionRequest) ToJSON() (string, error) {
	data, err := sonic.ConfigFastest.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal PredictionRequest: %w", err)
	}
	return string(data), nil
}

// buildGenerationParameters assembles the parameters dictionary from the
// generation controls.
//
// Omission policy: a field that was never set does not appear in the output
// at all. Temperature, candidate count, logprobs, and the penalty family are
// included whenever explicitly set, zero included; the token limit, topP, and
// topK follow the service convention of treating zero as unset.
func buildGenerationParameters(p *GenerationParams, maxTokensKey string) map[string]any {
	params := make(map[string]any)
	if p.MaxOutputTokens != nil && *p.MaxOutputTokens != 0 {
		params[maxTokensKey] = *p.MaxOutputTokens
	}
	if p.Temperature != nil {
		params["temperature"] = *p.Temperature
	}
	if p.TopP != nil && *p.TopP != 0 {
		params["topP"] = *p.TopP
	}
	if p.TopK != nil && *p.TopK != 0 {
		params["topK"] = *p.TopK
	}
	if len(p.StopSequences) > 0 {
		params["stopSequences"] = toAnySlice(p.StopSequences)
	}
	if p.CandidateCount != nil {
		params["candidateCount"] = *p.CandidateCount
	}
	if p.GroundingSource != nil {
		params["groundingConfig"] = p.GroundingSource.groundingConfig()
	}
	if p.Logprobs != nil {
		params["logprobs"] = *p.Logprobs
	}
	if p.PresencePenalty != nil {
		params["presencePenalty"] = *p.PresencePenalty
	}
	if p.FrequencyPenalty != nil {
		params["frequencyPenalty"] = *p.FrequencyPenalty
	}
	if p.LogitBias != nil {
		params["logitBias"] = logitBiasValue(p.LogitBias)
	}
	return params
}

// buildTextRequest shapes a single-prompt text generation request.
func buildTextRequest(prompt string, p *GenerationParams) *PredictionRequest {
	return &PredictionRequest{
		Instance:   map[string]any{"content": prompt},
		Parameters: buildGenerationParameters(p, maxTokensKeyText),
	}
}

// buildChatRequest folds the session state and the pending user message into
// one chat instance.
func buildChatRequest(context string, examples []InputOutputTextPair, history []ChatMessage, message string, userAuthor string, p *GenerationParams) *PredictionRequest {
	instance := make(map[string]any)
	if context != "" {
		instance["context"] = context
	}
	if len(examples) > 0 {
		exampleList := make([]any, 0, len(examples))
		for _, pair := range examples {
			exampleList = append(exampleList, map[string]any{
				"input":  map[string]any{"content": pair.InputText},
				"output": map[string]any{"content": pair.OutputText},
			})
		}
		instance["examples"] = exampleList
	}

	messages := make([]any, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, map[string]any{
			"author":  m.Author,
			"content": m.Content,
		})
	}
	messages = append(messages, map[string]any{
		"author":  userAuthor,
		"content": message,
	})
	instance["messages"] = messages

	return &PredictionRequest{
		Instance:   instance,
		Parameters: buildGenerationParameters(p, maxTokensKeyText),
	}
}

// buildCodeRequest shapes a code generation or completion request. The code
// surface accepts only a subset of the generation controls and names its
// token limit differently.
func buildCodeRequest(prefix, suffix string, p *GenerationParams) *PredictionRequest {
	instance := map[string]any{"prefix": prefix}
	if suffix != "" {
		instance["suffix"] = suffix
	}

	params := make(map[string]any)
	if p.Temperature != nil {
		params["temperature"] = *p.Temperature
	}
	if p.MaxOutputTokens != nil && *p.MaxOutputTokens != 0 {
		params[maxTokensKeyCode] = *p.MaxOutputTokens
	}
	if len(p.StopSequences) > 0 {
		params["stopSequences"] = toAnySlice(p.StopSequences)
	}
	if p.CandidateCount != nil {
		params["candidateCount"] = *p.CandidateCount
	}

	return &PredictionRequest{
		Instance:   instance,
		Parameters: params,
	}
}

// logitBiasValue converts the token ID keyed bias map to a JSON-safe object.
func logitBiasValue(bias map[int]float64) map[string]any {
	out := make(map[string]any, len(bias))
	for token, value := range bias {
		out[strconv.Itoa(token)] = value
	}
	return out
}

// toAnySlice widens a string slice for structpb encoding.
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
