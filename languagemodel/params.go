// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

// GenerationParams carries the per-call generation controls.
//
// Numeric fields are pointers so an explicitly set zero is distinguishable
// from an unset field. An unset field is omitted from the request entirely and
// the service applies its own default.
type GenerationParams struct {
	// MaxOutputTokens limits the number of tokens generated.
	MaxOutputTokens *int

	// Temperature controls sampling randomness. Zero is a valid setting and
	// is sent to the service.
	Temperature *float64

	// TopP is the nucleus sampling cutoff.
	TopP *float64

	// TopK limits sampling to the K most likely tokens.
	TopK *int

	// StopSequences stop generation when any sequence is produced.
	StopSequences []string

	// CandidateCount requests multiple candidates per prediction.
	CandidateCount *int

	// GroundingSource configures retrieval grounding.
	GroundingSource GroundingSource

	// Logprobs requests per-token log probabilities for the top tokens.
	Logprobs *int

	// PresencePenalty penalizes tokens that already appeared in the output.
	PresencePenalty *float64

	// FrequencyPenalty penalizes tokens proportionally to their output
	// frequency.
	FrequencyPenalty *float64

	// LogitBias adjusts the likelihood of specific token IDs.
	LogitBias map[int]float64
}

// GenerationOption mutates the generation controls for a single call.
type GenerationOption func(*GenerationParams)

// WithMaxOutputTokens limits the number of tokens generated.
func WithMaxOutputTokens(n int) GenerationOption {
	return func(p *GenerationParams) { p.MaxOutputTokens = &n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) GenerationOption {
	return func(p *GenerationParams) { p.Temperature = &t }
}

// WithTopP sets the nucleus sampling cutoff.
func WithTopP(topP float64) GenerationOption {
	return func(p *GenerationParams) { p.TopP = &topP }
}

// WithTopK limits sampling to the K most likely tokens.
func WithTopK(topK int) GenerationOption {
	return func(p *GenerationParams) { p.TopK = &topK }
}

// WithStopSequences stops generation when any of the sequences is produced.
func WithStopSequences(sequences ...string) GenerationOption {
	return func(p *GenerationParams) { p.StopSequences = sequences }
}

// WithCandidateCount requests multiple candidates per prediction.
func WithCandidateCount(n int) GenerationOption {
	return func(p *GenerationParams) { p.CandidateCount = &n }
}

// WithGroundingSource grounds the request on the given source.
func WithGroundingSource(source GroundingSource) GenerationOption {
	return func(p *GenerationParams) { p.GroundingSource = source }
}

// WithLogprobs requests per-token log probabilities for the top n tokens.
func WithLogprobs(n int) GenerationOption {
	return func(p *GenerationParams) { p.Logprobs = &n }
}

// WithPresencePenalty penalizes tokens that already appeared in the output.
func WithPresencePenalty(penalty float64) GenerationOption {
	return func(p *GenerationParams) { p.PresencePenalty = &penalty }
}

// WithFrequencyPenalty penalizes tokens proportionally to their output
// frequency.
func WithFrequencyPenalty(penalty float64) GenerationOption {
	return func(p *GenerationParams) { p.FrequencyPenalty = &penalty }
}

// WithLogitBias adjusts the likelihood of specific token IDs.
func WithLogitBias(bias map[int]float64) GenerationOption {
	return func(p *GenerationParams) { p.LogitBias = bias }
}

func applyGenerationOptions(opts []GenerationOption) *GenerationParams {
	p := &GenerationParams{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// merge fills unset fields of p from defaults. Only the fields a session can
// carry as defaults participate; candidate count, grounding, and the penalty
// family are strictly per-call.
func (p *GenerationParams) merge(defaults *GenerationParams) {
	if defaults == nil {
		return
	}
	if p.MaxOutputTokens == nil {
		p.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if p.Temperature == nil {
		p.Temperature = defaults.Temperature
	}
	if p.TopP == nil {
		p.TopP = defaults.TopP
	}
	if p.TopK == nil {
		p.TopK = defaults.TopK
	}
	if len(p.StopSequences) == 0 {
		p.StopSequences = defaults.StopSequences
	}
}
