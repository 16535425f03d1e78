// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tuning submits supervised and RLHF tuning jobs for the language
// model family.
//
// All request validation is synchronous and happens before any network call:
// unsupported accelerators, unsupported locations, and malformed evaluation
// data URIs are rejected immediately. Local JSONL training data is staged to
// a Cloud Storage bucket before the job is created.
package tuning
