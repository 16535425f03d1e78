// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import "strings"

// Capability describes one operation family a model supports.
//
// Capabilities are declared explicitly at construction time for each concrete
// model; operations check the set and fail synchronously with a
// [*CapabilityError] before any network call when the model does not support
// them.
type Capability uint8

const (
	// CapabilityTextGeneration is single-prompt text generation.
	CapabilityTextGeneration Capability = 1 << iota

	// CapabilityChat is multi-turn conversational generation.
	CapabilityChat

	// CapabilityCodeGeneration is code generation and completion.
	CapabilityCodeGeneration

	// CapabilityEmbedding is text embedding computation.
	CapabilityEmbedding

	// CapabilityCountTokens is token counting without prediction.
	CapabilityCountTokens
)

var capabilityNames = map[Capability]string{
	CapabilityTextGeneration: "text_generation",
	CapabilityChat:           "chat",
	CapabilityCodeGeneration: "code_generation",
	CapabilityEmbedding:      "embedding",
	CapabilityCountTokens:    "count_tokens",
}

// Has reports whether c includes all capabilities in want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// String returns the names of the capabilities in the set.
func (c Capability) String() string {
	var names []string
	for cap := CapabilityTextGeneration; cap <= CapabilityCountTokens; cap <<= 1 {
		if c.Has(cap) {
			names = append(names, capabilityNames[cap])
		}
	}
	return strings.Join(names, "|")
}
