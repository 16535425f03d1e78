// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package vertexlm is a Go client SDK for the hosted language model family
// served through Vertex AI prediction endpoints: text generation, multi-turn
// chat, code generation and completion, text embeddings, token counting, and
// model tuning.
package vertexlm

// Version is the version of the language model SDK.
var Version = "v0.0.0"
