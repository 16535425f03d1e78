// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// GroundingCitation is one attributed source span inside a grounded response.
type GroundingCitation struct {
	// StartIndex is the index of the first grounded character, when reported.
	StartIndex *int `json:"startIndex,omitempty"`

	// EndIndex is the index one past the last grounded character, when
	// reported.
	EndIndex *int `json:"endIndex,omitempty"`

	// URL is the source document URL.
	URL string `json:"url,omitempty"`

	// Title is the source document title.
	Title string `json:"title,omitempty"`

	// License is the source document license.
	License string `json:"license,omitempty"`

	// PublicationDate is the source publication date.
	PublicationDate string `json:"publicationDate,omitempty"`
}

// GroundingMetadata carries the attribution data of a grounded response.
type GroundingMetadata struct {
	// Citations attribute spans of the response text to sources.
	Citations []GroundingCitation `json:"citations,omitempty"`

	// SearchQueries are the queries the service issued while grounding.
	SearchQueries []string `json:"searchQueries,omitempty"`
}

// GenerationResponse is one generated candidate.
type GenerationResponse struct {
	// Text is the generated text.
	Text string `json:"text"`

	// IsBlocked reports whether the candidate was blocked by safety filters.
	IsBlocked bool `json:"isBlocked"`

	// Errors are the service error codes attached to the candidate.
	Errors []int `json:"errors,omitempty"`

	// SafetyAttributes maps safety category names to scores.
	SafetyAttributes map[string]float64 `json:"safetyAttributes,omitempty"`

	// GroundingMetadata carries attribution data when grounding was
	// requested. It is non-nil but empty when the service omitted it.
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`

	// Raw is the prediction payload exactly as the service returned it.
	Raw map[string]any `json:"-"`
}

// String returns the generated text.
func (r *GenerationResponse) String() string {
	return r.Text
}

// ToJSON converts the GenerationResponse to its JSON representation.
func (r *GenerationResponse) ToJSON() (string, error) {
	data, err := sonic.ConfigFastest.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal GenerationResponse: %w", err)
	}
	return string(data), nil
}

// MultiCandidateResponse is a generation response that may carry several
// candidates. The embedded [GenerationResponse] mirrors the first candidate
// so single-candidate callers can ignore the distinction.
type MultiCandidateResponse struct {
	GenerationResponse

	// Candidates holds every candidate, first included.
	Candidates []*GenerationResponse `json:"candidates"`
}

// parseTextPrediction parses one prediction from the text generation surface,
// where each candidate arrives as its own prediction with top-level fields.
func parseTextPrediction(prediction map[string]any) *GenerationResponse {
	blocked, errCodes, scores := parseSafetyAttributes(prediction["safetyAttributes"])
	return &GenerationResponse{
		Text:              anyToString(prediction["content"]),
		IsBlocked:         blocked,
		Errors:            errCodes,
		SafetyAttributes:  scores,
		GroundingMetadata: parseGroundingMetadata(prediction["groundingMetadata"]),
		Raw:               prediction,
	}
}

// parseTextPredictions wraps every prediction of a text response into a
// multi-candidate view.
func parseTextPredictions(predictions []map[string]any) (*MultiCandidateResponse, error) {
	if len(predictions) == 0 {
		return nil, &EmptyResponseError{}
	}
	candidates := make([]*GenerationResponse, 0, len(predictions))
	for _, prediction := range predictions {
		candidates = append(candidates, parseTextPrediction(prediction))
	}
	return &MultiCandidateResponse{
		GenerationResponse: *candidates[0],
		Candidates:         candidates,
	}, nil
}

// parseChatPrediction parses one prediction from the chat surface, where all
// candidates live under a "candidates" list with parallel safety and
// grounding arrays.
//
// The grounding array is positional and may be absent, shorter than the
// candidate list, or carry nil entries; any of those yields empty metadata
// for the affected candidate rather than an error. The safety array behaves
// the same way.
func parseChatPrediction(prediction map[string]any) (*MultiCandidateResponse, error) {
	rawCandidates := anySlice(prediction["candidates"])
	if len(rawCandidates) == 0 {
		return nil, &EmptyResponseError{}
	}

	rawSafety := anySlice(prediction["safetyAttributes"])
	rawGrounding := anySlice(prediction["groundingMetadata"])

	candidates := make([]*GenerationResponse, 0, len(rawCandidates))
	for i, rawCandidate := range rawCandidates {
		candidate := anyMap(rawCandidate)

		var safety any
		if i < len(rawSafety) {
			safety = rawSafety[i]
		}
		blocked, errCodes, scores := parseSafetyAttributes(safety)

		var grounding any
		if i < len(rawGrounding) {
			grounding = rawGrounding[i]
		}

		candidates = append(candidates, &GenerationResponse{
			Text:              anyToString(candidate["content"]),
			IsBlocked:         blocked,
			Errors:            errCodes,
			SafetyAttributes:  scores,
			GroundingMetadata: parseGroundingMetadata(grounding),
			Raw:               prediction,
		})
	}

	return &MultiCandidateResponse{
		GenerationResponse: *candidates[0],
		Candidates:         candidates,
	}, nil
}

// parseSafetyAttributes zips the parallel category and score arrays into a
// map. Either array may be absent or shorter than the other; the zip stops at
// the shorter one and an empty map is returned rather than an error.
func parseSafetyAttributes(raw any) (blocked bool, errCodes []int, scores map[string]float64) {
	scores = make(map[string]float64)
	attrs := anyMap(raw)
	if attrs == nil {
		return false, nil, scores
	}

	blocked, _ = attrs["blocked"].(bool)

	for _, code := range anySlice(attrs["errors"]) {
		if n, ok := anyToInt(code); ok {
			errCodes = append(errCodes, n)
		}
	}

	categories := anySlice(attrs["categories"])
	values := anySlice(attrs["scores"])
	n := min(len(categories), len(values))
	for i := range n {
		category := anyToString(categories[i])
		if score, ok := anyToFloat(values[i]); ok {
			scores[category] = score
		}
	}
	return blocked, errCodes, scores
}

// parseGroundingMetadata parses the per-candidate grounding payload. A
// missing or malformed payload yields empty metadata, never an error.
func parseGroundingMetadata(raw any) *GroundingMetadata {
	md := &GroundingMetadata{}
	m := anyMap(raw)
	if m == nil {
		return md
	}

	for _, rawCitation := range anySlice(m["citations"]) {
		citation := anyMap(rawCitation)
		if citation == nil {
			continue
		}
		c := GroundingCitation{
			URL:             anyToString(citation["url"]),
			Title:           anyToString(citation["title"]),
			License:         anyToString(citation["license"]),
			PublicationDate: anyToString(citation["publicationDate"]),
		}
		if n, ok := anyToInt(citation["startIndex"]); ok {
			c.StartIndex = &n
		}
		if n, ok := anyToInt(citation["endIndex"]); ok {
			c.EndIndex = &n
		}
		md.Citations = append(md.Citations, c)
	}

	for _, query := range anySlice(m["searchQueries"]) {
		md.SearchQueries = append(md.SearchQueries, anyToString(query))
	}
	return md
}

func anyMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func anyToString(v any) string {
	s, _ := v.(string)
	return s
}

// anyToInt accepts the shapes structpb decoding produces. The service
// serializes numbers as doubles, and error codes occasionally as strings.
func anyToInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func anyToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
