// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTextPrediction(t *testing.T) {
	prediction := map[string]any{
		"content": "Life is a journey.",
		"safetyAttributes": map[string]any{
			"blocked":    false,
			"categories": []any{"Violent", "Toxic"},
			"scores":     []any{0.1, 0.2},
		},
	}

	got := parseTextPrediction(prediction)

	if got.Text != "Life is a journey." {
		t.Errorf("Text = %q, want %q", got.Text, "Life is a journey.")
	}
	if got.IsBlocked {
		t.Error("IsBlocked = true, want false")
	}
	wantScores := map[string]float64{"Violent": 0.1, "Toxic": 0.2}
	if diff := cmp.Diff(wantScores, got.SafetyAttributes); diff != "" {
		t.Errorf("SafetyAttributes mismatch (-want +got):\n%s", diff)
	}
	if got.GroundingMetadata == nil {
		t.Fatal("GroundingMetadata must never be nil")
	}
	if len(got.GroundingMetadata.Citations) != 0 {
		t.Errorf("Citations = %v, want empty", got.GroundingMetadata.Citations)
	}
}

func TestParseTextPredictionBlocked(t *testing.T) {
	prediction := map[string]any{
		"content": "",
		"safetyAttributes": map[string]any{
			"blocked": true,
			"errors":  []any{float64(153), float64(154)},
		},
	}

	got := parseTextPrediction(prediction)

	if !got.IsBlocked {
		t.Error("IsBlocked = false, want true")
	}
	if diff := cmp.Diff([]int{153, 154}, got.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTextPredictionsFlattensFirstCandidate(t *testing.T) {
	predictions := []map[string]any{
		{"content": "first"},
		{"content": "second"},
	}

	got, err := parseTextPredictions(predictions)
	if err != nil {
		t.Fatal(err)
	}

	if got.Text != "first" {
		t.Errorf("Text = %q, want the first candidate's text", got.Text)
	}
	if len(got.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(got.Candidates))
	}
	if got.Candidates[0].Text != "first" || got.Candidates[1].Text != "second" {
		t.Errorf("candidate order not preserved: %q, %q", got.Candidates[0].Text, got.Candidates[1].Text)
	}
}

func TestParseTextPredictionsEmpty(t *testing.T) {
	if _, err := parseTextPredictions(nil); err == nil {
		t.Fatal("expected error for empty predictions")
	}
}

func TestParseChatPrediction(t *testing.T) {
	prediction := map[string]any{
		"candidates": []any{
			map[string]any{"author": "bot", "content": "4."},
			map[string]any{"author": "bot", "content": "It is 4."},
		},
		"safetyAttributes": []any{
			map[string]any{
				"blocked":    false,
				"categories": []any{"Toxic"},
				"scores":     []any{0.05},
			},
			map[string]any{"blocked": false},
		},
	}

	got, err := parseChatPrediction(prediction)
	if err != nil {
		t.Fatal(err)
	}

	if got.Text != "4." {
		t.Errorf("Text = %q, want %q", got.Text, "4.")
	}
	if len(got.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(got.Candidates))
	}
	if diff := cmp.Diff(map[string]float64{"Toxic": 0.05}, got.Candidates[0].SafetyAttributes); diff != "" {
		t.Errorf("first candidate safety mismatch (-want +got):\n%s", diff)
	}
	if len(got.Candidates[1].SafetyAttributes) != 0 {
		t.Errorf("second candidate safety = %v, want empty", got.Candidates[1].SafetyAttributes)
	}
}

// The grounding array is positional and the service may omit it entirely,
// truncate it, or return nil entries. None of those may fail the parse.
func TestParseChatPredictionGroundingFallback(t *testing.T) {
	tests := map[string]struct {
		grounding any
	}{
		"absent":        {grounding: nil},
		"shorter":       {grounding: []any{map[string]any{"citations": []any{map[string]any{"url": "https://example.com"}}}}},
		"nil_entry":     {grounding: []any{nil, nil}},
		"not_a_list":    {grounding: "bogus"},
		"empty_entries": {grounding: []any{map[string]any{}, map[string]any{}}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			prediction := map[string]any{
				"candidates": []any{
					map[string]any{"content": "a"},
					map[string]any{"content": "b"},
				},
			}
			if tt.grounding != nil {
				prediction["groundingMetadata"] = tt.grounding
			}

			got, err := parseChatPrediction(prediction)
			if err != nil {
				t.Fatal(err)
			}
			for i, candidate := range got.Candidates {
				if candidate.GroundingMetadata == nil {
					t.Errorf("candidate %d: GroundingMetadata must never be nil", i)
				}
			}
		})
	}
}

func TestParseChatPredictionNoCandidates(t *testing.T) {
	if _, err := parseChatPrediction(map[string]any{"candidates": []any{}}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestParseGroundingMetadata(t *testing.T) {
	raw := map[string]any{
		"citations": []any{
			map[string]any{
				"startIndex":      float64(10),
				"endIndex":        float64(42),
				"url":             "https://example.com/source",
				"title":           "Example Source",
				"license":         "CC-BY",
				"publicationDate": "2023-04-01",
			},
			map[string]any{
				"url": "https://example.com/other",
			},
		},
		"searchQueries": []any{"example query"},
	}

	got := parseGroundingMetadata(raw)

	if len(got.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2", len(got.Citations))
	}
	first := got.Citations[0]
	if first.StartIndex == nil || *first.StartIndex != 10 {
		t.Errorf("StartIndex = %v, want 10", first.StartIndex)
	}
	if first.EndIndex == nil || *first.EndIndex != 42 {
		t.Errorf("EndIndex = %v, want 42", first.EndIndex)
	}
	if first.URL != "https://example.com/source" || first.Title != "Example Source" {
		t.Errorf("unexpected citation: %+v", first)
	}
	second := got.Citations[1]
	if second.StartIndex != nil || second.EndIndex != nil {
		t.Errorf("absent indices must stay nil: %+v", second)
	}
	if diff := cmp.Diff([]string{"example query"}, got.SearchQueries); diff != "" {
		t.Errorf("SearchQueries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSafetyAttributesZip(t *testing.T) {
	tests := map[string]struct {
		raw  any
		want map[string]float64
	}{
		"nil":               {raw: nil, want: map[string]float64{}},
		"empty":             {raw: map[string]any{}, want: map[string]float64{}},
		"categories_only":   {raw: map[string]any{"categories": []any{"Toxic"}}, want: map[string]float64{}},
		"scores_only":       {raw: map[string]any{"scores": []any{0.5}}, want: map[string]float64{}},
		"shorter_scores":    {raw: map[string]any{"categories": []any{"A", "B"}, "scores": []any{0.1}}, want: map[string]float64{"A": 0.1}},
		"shorter_categories": {
			raw:  map[string]any{"categories": []any{"A"}, "scores": []any{0.1, 0.2}},
			want: map[string]float64{"A": 0.1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, got := parseSafetyAttributes(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scores mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
