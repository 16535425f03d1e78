// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ToGenAIContents converts chat history to genai content for callers
// migrating between the two surfaces. The model author label maps to the
// genai model role; every other author maps to the user role.
func ToGenAIContents(messages []ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Author == ModelAuthor {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

// FromGenAIContent converts one genai content into a chat message. Text
// parts are concatenated; non-text parts are rejected.
func FromGenAIContent(content *genai.Content) (ChatMessage, error) {
	var sb strings.Builder
	for _, part := range content.Parts {
		if part.Text == "" && (part.InlineData != nil || part.FileData != nil || part.FunctionCall != nil || part.FunctionResponse != nil) {
			return ChatMessage{}, fmt.Errorf("content part is not text")
		}
		sb.WriteString(part.Text)
	}

	author := UserAuthor
	if content.Role == genai.RoleModel {
		author = ModelAuthor
	}
	return ChatMessage{Content: sb.String(), Author: author}, nil
}
