// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package languagemodel provides typed clients for the hosted language model
// family: text generation, multi-turn chat, code generation and completion,
// and text embeddings.
//
// Every model speaks to the remote prediction service through the
// [endpoint.Client] collaborator. The package itself owns only request
// shaping, response parsing, and conversation state; inference always happens
// in the remote service.
//
// # Models
//
// Each concrete model is constructed for one publisher model and declares its
// capability set explicitly:
//
//	model, err := languagemodel.NewTextGenerationModel(ctx, "my-project", "us-central1", "text-bison@002")
//	if err != nil { ... }
//	resp, err := model.Predict(ctx, "What is life?", languagemodel.WithTemperature(0.2))
//
// # Chat sessions
//
// A chat session owns an append-only message history. History is committed in
// user/model pairs, atomically, and only after a response has been fully
// materialized; a failed or abandoned call never leaves a partial turn behind:
//
//	chat := chatModel.StartChat(
//		languagemodel.WithChatContext("My name is Ned. You are my personal assistant."),
//		languagemodel.WithExamples(languagemodel.InputOutputTextPair{
//			InputText:  "Who do you work for?",
//			OutputText: "I work for Ned.",
//		}),
//	)
//	resp, err := chat.SendMessage(ctx, "Do you know any cool events this weekend?")
//
// A session is exclusively owned by one goroutine. The package performs no
// internal locking against concurrent calls on the same session; independent
// sessions may share one endpoint client freely.
//
// # Streaming
//
// Streaming calls return a lazy, single-pass iter.Seq2. Partial responses are
// yielded as they arrive; chat history is committed only once the stream is
// drained to completion.
package languagemodel
