// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildGenerationParameters(t *testing.T) {
	tests := map[string]struct {
		opts []GenerationOption
		want map[string]any
	}{
		"empty": {
			opts: nil,
			want: map[string]any{},
		},
		"all_basic": {
			opts: []GenerationOption{
				WithMaxOutputTokens(256),
				WithTemperature(0.5),
				WithTopP(0.9),
				WithTopK(40),
				WithStopSequences("STOP"),
				WithCandidateCount(2),
			},
			want: map[string]any{
				"maxDecodeSteps": 256,
				"temperature":    0.5,
				"topP":           0.9,
				"topK":           40,
				"stopSequences":  []any{"STOP"},
				"candidateCount": 2,
			},
		},
		"explicit_zero_temperature_survives": {
			opts: []GenerationOption{WithTemperature(0)},
			want: map[string]any{"temperature": float64(0)},
		},
		"zero_token_limit_omitted": {
			opts: []GenerationOption{WithMaxOutputTokens(0)},
			want: map[string]any{},
		},
		"zero_candidate_count_survives": {
			opts: []GenerationOption{WithCandidateCount(0)},
			want: map[string]any{"candidateCount": 0},
		},
		"penalties": {
			opts: []GenerationOption{
				WithLogprobs(5),
				WithPresencePenalty(0.1),
				WithFrequencyPenalty(0.2),
				WithLogitBias(map[int]float64{1001: -100, 5: 2.5}),
			},
			want: map[string]any{
				"logprobs":         5,
				"presencePenalty":  0.1,
				"frequencyPenalty": 0.2,
				"logitBias": map[string]any{
					"1001": float64(-100),
					"5":    2.5,
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := buildGenerationParameters(applyGenerationOptions(tt.opts), maxTokensKeyText)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildTextRequest(t *testing.T) {
	req := buildTextRequest("What is life?", applyGenerationOptions([]GenerationOption{
		WithTemperature(0.2),
	}))

	wantInstance := map[string]any{"content": "What is life?"}
	if diff := cmp.Diff(wantInstance, req.Instance); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}
	wantParams := map[string]any{"temperature": 0.2}
	if diff := cmp.Diff(wantParams, req.Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildChatRequest(t *testing.T) {
	history := []ChatMessage{
		{Content: "Are my favorite movies based on a book series?", Author: UserAuthor},
		{Content: "Yes, your favorite movies are based on a book series.", Author: ModelAuthor},
	}
	examples := []InputOutputTextPair{
		{InputText: "Who do you work for?", OutputText: "I work for Ned."},
	}

	req := buildChatRequest(
		"My name is Ned.",
		examples,
		history,
		"When were these books published?",
		UserAuthor,
		applyGenerationOptions(nil),
	)

	want := map[string]any{
		"context": "My name is Ned.",
		"examples": []any{
			map[string]any{
				"input":  map[string]any{"content": "Who do you work for?"},
				"output": map[string]any{"content": "I work for Ned."},
			},
		},
		"messages": []any{
			map[string]any{"author": "user", "content": "Are my favorite movies based on a book series?"},
			map[string]any{"author": "bot", "content": "Yes, your favorite movies are based on a book series."},
			map[string]any{"author": "user", "content": "When were these books published?"},
		},
	}
	if diff := cmp.Diff(want, req.Instance); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildChatRequestOmitsEmptySessionState(t *testing.T) {
	req := buildChatRequest("", nil, nil, "2+2?", UserAuthor, applyGenerationOptions(nil))

	if _, ok := req.Instance["context"]; ok {
		t.Error("empty context must be omitted from the instance")
	}
	if _, ok := req.Instance["examples"]; ok {
		t.Error("empty examples must be omitted from the instance")
	}
	want := []any{map[string]any{"author": "user", "content": "2+2?"}}
	if diff := cmp.Diff(want, req.Instance["messages"]); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCodeRequest(t *testing.T) {
	tests := map[string]struct {
		prefix string
		suffix string
		opts   []GenerationOption
		want   *PredictionRequest
	}{
		"generation": {
			prefix: "Write a function that checks if a year is a leap year.",
			opts:   []GenerationOption{WithMaxOutputTokens(256)},
			want: &PredictionRequest{
				Instance:   map[string]any{"prefix": "Write a function that checks if a year is a leap year."},
				Parameters: map[string]any{"maxOutputTokens": 256},
			},
		},
		"completion_with_suffix": {
			prefix: "def reverse_string(s):",
			suffix: "    return reversed",
			want: &PredictionRequest{
				Instance: map[string]any{
					"prefix": "def reverse_string(s):",
					"suffix": "    return reversed",
				},
				Parameters: map[string]any{},
			},
		},
		"unsupported_controls_dropped": {
			prefix: "print(",
			opts:   []GenerationOption{WithTopK(40), WithTopP(0.9), WithTemperature(0.1)},
			want: &PredictionRequest{
				Instance:   map[string]any{"prefix": "print("},
				Parameters: map[string]any{"temperature": 0.1},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := buildCodeRequest(tt.prefix, tt.suffix, applyGenerationOptions(tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroundingConfig(t *testing.T) {
	tests := map[string]struct {
		source GroundingSource
		want   map[string]any
	}{
		"web_search": {
			source: WebSearch{},
			want: map[string]any{
				"sources":            []any{map[string]any{"type": "WEB"}},
				"disableAttribution": false,
			},
		},
		"web_search_without_attribution": {
			source: WebSearch{DisableAttribution: true},
			want: map[string]any{
				"sources":            []any{map[string]any{"type": "WEB"}},
				"disableAttribution": true,
			},
		},
		"inline_context": {
			source: InlineContext{Text: "The sky is blue."},
			want: map[string]any{
				"sources": []any{map[string]any{
					"type":          "INLINE",
					"inlineContext": "The sky is blue.",
				}},
			},
		},
		"vertex_ai_search": {
			source: VertexAISearch{
				DataStoreID: "my-datastore",
				Location:    "global",
				ProjectID:   "my-project",
			},
			want: map[string]any{
				"sources": []any{map[string]any{
					"type":                    "VERTEX_AI_SEARCH",
					"vertexAiSearchDatastore": "projects/my-project/locations/global/collections/default_collection/dataStores/my-datastore",
				}},
				"disableAttribution": false,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.source.groundingConfig()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("grounding config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerationParamsMerge(t *testing.T) {
	sessionTemp := 0.8
	sessionTokens := 100
	defaults := &GenerationParams{
		Temperature:     &sessionTemp,
		MaxOutputTokens: &sessionTokens,
		StopSequences:   []string{"\n"},
	}

	callTemp := 0.1
	p := &GenerationParams{Temperature: &callTemp}
	p.merge(defaults)

	if *p.Temperature != 0.1 {
		t.Errorf("per-call temperature must win, got %v", *p.Temperature)
	}
	if *p.MaxOutputTokens != 100 {
		t.Errorf("session token limit must apply, got %v", *p.MaxOutputTokens)
	}
	if diff := cmp.Diff([]string{"\n"}, p.StopSequences); diff != "" {
		t.Errorf("session stop sequences must apply (-want +got):\n%s", diff)
	}
}
