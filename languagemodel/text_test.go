// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/vertexlm/endpoint"
)

func newTestTextModel(t *testing.T, fake *fakeEndpoint) *TextGenerationModel {
	t.Helper()
	model, err := NewTextGenerationModel(t.Context(), "test-project", "us-central1", "text-bison@002", WithEndpoint(fake))
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestTextPredict(t *testing.T) {
	fake := &fakeEndpoint{
		predictFunc: func(ctx context.Context, instances []map[string]any, parameters map[string]any) (*endpoint.PredictResponse, error) {
			return &endpoint.PredictResponse{
				Predictions: []map[string]any{{"content": "Life is a journey."}},
			}, nil
		},
	}
	model := newTestTextModel(t, fake)

	resp, err := model.Predict(t.Context(), "What is life?", WithTemperature(0))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "Life is a journey." {
		t.Errorf("Text = %q, want %q", resp.Text, "Life is a journey.")
	}

	wantInstance := map[string]any{"content": "What is life?"}
	if diff := cmp.Diff(wantInstance, fake.lastInstances[0]); diff != "" {
		t.Errorf("instance mismatch (-want +got):\n%s", diff)
	}
	// Unset token limit falls back to the surface default; explicit zero
	// temperature is sent, not dropped.
	wantParams := map[string]any{
		"maxDecodeSteps": 128,
		"temperature":    float64(0),
	}
	if diff := cmp.Diff(wantParams, fake.lastParameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestTextPredictMultipleCandidates(t *testing.T) {
	fake := &fakeEndpoint{
		predictFunc: func(ctx context.Context, instances []map[string]any, parameters map[string]any) (*endpoint.PredictResponse, error) {
			return &endpoint.PredictResponse{
				Predictions: []map[string]any{
					{"content": "first"},
					{"content": "second"},
				},
			}, nil
		},
	}
	model := newTestTextModel(t, fake)

	resp, err := model.Predict(t.Context(), "What is life?", WithCandidateCount(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(resp.Candidates))
	}
	if resp.Text != resp.Candidates[0].Text {
		t.Error("response must mirror the first candidate")
	}
	if fake.lastParameters["candidateCount"] != 2 {
		t.Errorf("candidateCount missing: %v", fake.lastParameters)
	}
}

func TestTextPredictStreamDropsUnsupportedControls(t *testing.T) {
	fake := &fakeEndpoint{
		streamFunc: func(ctx context.Context, instance map[string]any, parameters map[string]any) iter.Seq2[*endpoint.PredictResponse, error] {
			return func(yield func(*endpoint.PredictResponse, error) bool) {
				yield(&endpoint.PredictResponse{
					Predictions: []map[string]any{{"content": "partial"}},
				}, nil)
			}
		},
	}
	model := newTestTextModel(t, fake)

	var texts []string
	for resp, err := range model.PredictStream(t.Context(), "Tell me a story.", WithCandidateCount(3), WithGroundingSource(WebSearch{})) {
		if err != nil {
			t.Fatal(err)
		}
		texts = append(texts, resp.Text)
	}

	if diff := cmp.Diff([]string{"partial"}, texts); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}
	if _, ok := fake.lastParameters["candidateCount"]; ok {
		t.Error("streaming must drop candidateCount")
	}
	if _, ok := fake.lastParameters["groundingConfig"]; ok {
		t.Error("streaming must drop groundingConfig")
	}
}

func TestTextPredictGrounded(t *testing.T) {
	fake := &fakeEndpoint{
		predictFunc: func(ctx context.Context, instances []map[string]any, parameters map[string]any) (*endpoint.PredictResponse, error) {
			return &endpoint.PredictResponse{
				Predictions: []map[string]any{{
					"content": "The sky is blue.",
					"groundingMetadata": map[string]any{
						"citations": []any{map[string]any{"url": "https://example.com"}},
					},
				}},
			}, nil
		},
	}
	model := newTestTextModel(t, fake)

	resp, err := model.Predict(t.Context(), "What color is the sky?", WithGroundingSource(WebSearch{}))
	if err != nil {
		t.Fatal(err)
	}

	config, ok := fake.lastParameters["groundingConfig"].(map[string]any)
	if !ok {
		t.Fatalf("groundingConfig missing: %v", fake.lastParameters)
	}
	if diff := cmp.Diff([]any{map[string]any{"type": "WEB"}}, config["sources"]); diff != "" {
		t.Errorf("grounding sources mismatch (-want +got):\n%s", diff)
	}
	if len(resp.GroundingMetadata.Citations) != 1 {
		t.Fatalf("len(Citations) = %d, want 1", len(resp.GroundingMetadata.Citations))
	}
	if resp.GroundingMetadata.Citations[0].URL != "https://example.com" {
		t.Errorf("unexpected citation: %+v", resp.GroundingMetadata.Citations[0])
	}
}

func TestTextCountTokens(t *testing.T) {
	fake := &fakeEndpoint{
		countFunc: func(ctx context.Context, instances []map[string]any) (*endpoint.CountTokensResponse, error) {
			return &endpoint.CountTokensResponse{TotalTokens: 5, TotalBillableCharacters: 18}, nil
		},
	}
	model := newTestTextModel(t, fake)

	resp, err := model.CountTokens(t.Context(), "What is life?")
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalTokens != 5 {
		t.Errorf("TotalTokens = %d, want 5", resp.TotalTokens)
	}
	want := []map[string]any{{"content": "What is life?"}}
	if diff := cmp.Diff(want, fake.lastInstances); diff != "" {
		t.Errorf("instances mismatch (-want +got):\n%s", diff)
	}
}

func TestCodePredict(t *testing.T) {
	fake := &fakeEndpoint{
		predictFunc: func(ctx context.Context, instances []map[string]any, parameters map[string]any) (*endpoint.PredictResponse, error) {
			return &endpoint.PredictResponse{
				Predictions: []map[string]any{{"content": "func IsLeapYear(year int) bool {"}},
			}, nil
		},
	}
	model, err := NewCodeGenerationModel(t.Context(), "test-project", "us-central1", "code-bison@002", WithEndpoint(fake))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := model.Predict(t.Context(), "Write a leap year check.", "", WithMaxOutputTokens(256))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text == "" {
		t.Error("empty response text")
	}

	// The code surface names its token limit differently.
	if fake.lastParameters["maxOutputTokens"] != 256 {
		t.Errorf("maxOutputTokens missing: %v", fake.lastParameters)
	}
	if _, ok := fake.lastParameters["maxDecodeSteps"]; ok {
		t.Error("code surface must not use maxDecodeSteps")
	}
}
