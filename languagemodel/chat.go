// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package languagemodel

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	deepcopy "github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/vertexlm/endpoint"
)

// Author labels used in the chat wire format.
const (
	// UserAuthor labels turns authored by the caller.
	UserAuthor = "user"

	// ModelAuthor labels turns authored by the model.
	ModelAuthor = "bot"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	// Content is the text of the turn.
	Content string `json:"content"`

	// Author is the turn author, [UserAuthor] or [ModelAuthor].
	Author string `json:"author"`
}

// InputOutputTextPair is one few-shot example for a chat session.
type InputOutputTextPair struct {
	// InputText is the example user input.
	InputText string `json:"input_text"`

	// OutputText is the expected model output.
	OutputText string `json:"output_text"`
}

// ChatOption configures a new chat session.
type ChatOption func(*chatConfig)

type chatConfig struct {
	context  string
	examples []InputOutputTextPair
	history  []ChatMessage
	defaults GenerationParams
}

// WithChatContext shapes how the model responds throughout the session, for
// example by assigning it a persona or constraining its answers.
func WithChatContext(context string) ChatOption {
	return func(c *chatConfig) { c.context = context }
}

// WithExamples primes the session with few-shot examples.
func WithExamples(examples ...InputOutputTextPair) ChatOption {
	return func(c *chatConfig) { c.examples = examples }
}

// WithMessageHistory seeds the session with prior turns.
func WithMessageHistory(history []ChatMessage) ChatOption {
	return func(c *chatConfig) { c.history = history }
}

// WithDefaults sets session-wide generation defaults. A per-call option on
// SendMessage overrides the session default for that call only.
//
// Only the token limit, temperature, topP, topK, and stop sequences can be
// session defaults; the remaining controls are strictly per-call.
func WithDefaults(opts ...GenerationOption) ChatOption {
	return func(c *chatConfig) {
		for _, opt := range opts {
			opt(&c.defaults)
		}
	}
}

// ChatSession is one multi-turn conversation with a chat model.
//
// The session owns an append-only message history. A user/model turn pair is
// committed atomically, and only after a response has been fully
// materialized; a failed call leaves the history exactly as it was, so
// retrying is safe.
//
// A session must be used from a single goroutine.
type ChatSession struct {
	id       string
	model    *Model
	endpoint endpoint.Client
	config   chatConfig
	history  []ChatMessage
	logger   *slog.Logger

	// userAuthor and modelAuthor label committed turns. The code chat
	// surface reuses the session with the same labels.
	userAuthor  string
	modelAuthor string

	// restricted marks sessions whose surface accepts only a subset of the
	// generation controls.
	restricted bool
}

// StartChat starts a new chat session.
func (m *ChatModel) StartChat(opts ...ChatOption) *ChatSession {
	return newChatSession(m.Model, false, opts)
}

func newChatSession(model *Model, restricted bool, opts []ChatOption) *ChatSession {
	config := chatConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	if restricted {
		// The code chat surface takes no few-shot examples.
		config.examples = nil
	}

	history := make([]ChatMessage, len(config.history))
	copy(history, config.history)

	return &ChatSession{
		id:          uuid.NewString(),
		model:       model,
		endpoint:    model.endpoint,
		config:      config,
		history:     history,
		logger:      model.logger,
		userAuthor:  UserAuthor,
		modelAuthor: ModelAuthor,
		restricted:  restricted,
	}
}

// ID returns the session's unique identifier.
func (s *ChatSession) ID() string {
	return s.id
}

// MessageHistory returns a deep copy of the committed turns. Mutating the
// returned slice does not affect the session.
func (s *ChatSession) MessageHistory() []ChatMessage {
	var out []ChatMessage
	if err := deepcopy.Copy(&out, s.history); err != nil {
		// ChatMessage is a plain value type; copying cannot fail.
		panic(fmt.Sprintf("copy message history: %v", err))
	}
	return out
}

// SendMessage sends a message and returns the model's response.
//
// On success the user message and the model's primary response text are
// appended to the history as one atomic turn pair. On any error the history
// is left untouched.
func (s *ChatSession) SendMessage(ctx context.Context, message string, opts ...GenerationOption) (*MultiCandidateResponse, error) {
	if err := s.model.checkCapability(CapabilityChat); err != nil {
		return nil, err
	}

	req := s.prepareRequest(message, opts)
	resp, err := s.endpoint.Predict(ctx, []map[string]any{req.Instance}, req.Parameters)
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 {
		return nil, &EmptyResponseError{}
	}

	parsed, err := parseChatPrediction(resp.Predictions[0])
	if err != nil {
		return nil, err
	}

	s.commitTurn(message, parsed.Text)

	s.logger.DebugContext(ctx, "chat turn committed",
		slog.String("session_id", s.id),
		slog.Int("history_len", len(s.history)),
	)

	return parsed, nil
}

// SendMessageStream sends a message and yields partial responses as they
// arrive.
//
// The turn pair is committed only after the stream is drained to completion;
// the committed model text is the concatenation of all partial texts. A
// transport error or abandoned iteration leaves the history untouched.
func (s *ChatSession) SendMessageStream(ctx context.Context, message string, opts ...GenerationOption) iter.Seq2[*GenerationResponse, error] {
	return func(yield func(*GenerationResponse, error) bool) {
		if err := s.model.checkCapability(CapabilityChat); err != nil {
			yield(nil, err)
			return
		}

		req := s.prepareRequest(message, opts)
		delete(req.Parameters, "candidateCount")
		delete(req.Parameters, "groundingConfig")

		var full strings.Builder
		for resp, err := range s.endpoint.PredictStream(ctx, req.Instance, req.Parameters) {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, prediction := range resp.Predictions {
				parsed, err := parseChatPrediction(prediction)
				if err != nil {
					yield(nil, err)
					return
				}
				full.WriteString(parsed.Text)
				if !yield(&parsed.GenerationResponse, nil) {
					return
				}
			}
		}
		if ctx.Err() != nil {
			return
		}

		s.commitTurn(message, full.String())
	}
}

// CountTokens counts the tokens of the full chat instance the pending message
// would produce: context, examples, history, and the message itself.
func (s *ChatSession) CountTokens(ctx context.Context, message string) (*endpoint.CountTokensResponse, error) {
	if err := s.model.checkCapability(CapabilityCountTokens); err != nil {
		return nil, err
	}
	req := s.prepareRequest(message, nil)
	return s.endpoint.CountTokens(ctx, []map[string]any{req.Instance})
}

// prepareRequest folds session state and the pending message into a request.
// Per-call options win over session defaults field by field.
func (s *ChatSession) prepareRequest(message string, opts []GenerationOption) *PredictionRequest {
	p := applyGenerationOptions(opts)
	p.merge(&s.config.defaults)
	if s.restricted {
		p.TopP = nil
		p.TopK = nil
		p.GroundingSource = nil
		p.Logprobs = nil
		p.PresencePenalty = nil
		p.FrequencyPenalty = nil
		p.LogitBias = nil
	}
	return buildChatRequest(s.config.context, s.config.examples, s.history, message, s.userAuthor, p)
}

// commitTurn appends the user/model pair in one step.
func (s *ChatSession) commitTurn(userText, modelText string) {
	s.history = append(s.history,
		ChatMessage{Content: userText, Author: s.userAuthor},
		ChatMessage{Content: modelText, Author: s.modelAuthor},
	)
}
