// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import "fmt"

// GroundingSource configures retrieval grounding for a generation request.
//
// The set of sources is closed: [WebSearch], [VertexAISearch], and
// [InlineContext] are the only implementations.
type GroundingSource interface {
	// groundingConfig returns the wire form of the source, ready to be
	// embedded under the "groundingConfig" request parameter.
	groundingConfig() map[string]any
}

// WebSearch grounds generation on public web search results.
type WebSearch struct {
	// DisableAttribution disables source attribution in the response.
	DisableAttribution bool
}

var _ GroundingSource = WebSearch{}

func (s WebSearch) groundingConfig() map[string]any {
	return map[string]any{
		"sources": []any{
			map[string]any{"type": "WEB"},
		},
		"disableAttribution": s.DisableAttribution,
	}
}

// VertexAISearch grounds generation on a Vertex AI Search data store.
type VertexAISearch struct {
	// DataStoreID is the data store ID within the default collection.
	DataStoreID string

	// Location is the data store location, for example "global".
	Location string

	// ProjectID is the project that owns the data store.
	ProjectID string

	// DisableAttribution disables source attribution in the response.
	DisableAttribution bool
}

var _ GroundingSource = VertexAISearch{}

// DataStorePath returns the fully qualified data store resource name.
func (s VertexAISearch) DataStorePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/default_collection/dataStores/%s",
		s.ProjectID, s.Location, s.DataStoreID)
}

func (s VertexAISearch) groundingConfig() map[string]any {
	return map[string]any{
		"sources": []any{
			map[string]any{
				"type":                    "VERTEX_AI_SEARCH",
				"vertexAiSearchDatastore": s.DataStorePath(),
			},
		},
		"disableAttribution": s.DisableAttribution,
	}
}

// InlineContext grounds generation on caller-supplied text.
type InlineContext struct {
	// Text is the grounding context.
	Text string
}

var _ GroundingSource = InlineContext{}

// Attribution cannot be disabled for inline context; the wire form carries no
// disableAttribution field.
func (s InlineContext) groundingConfig() map[string]any {
	return map[string]any{
		"sources": []any{
			map[string]any{
				"type":          "INLINE",
				"inlineContext": s.Text,
			},
		},
	}
}
