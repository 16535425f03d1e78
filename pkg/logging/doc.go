// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using
// Go's standard slog package.
//
// Loggers are stored in and retrieved from context.Context values so that a
// caller-configured logger propagates through the SDK without threading a
// logger argument through every call:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//		Level: slog.LevelInfo,
//	}))
//	ctx := logging.NewContext(ctx, logger)
//
//	logger = logging.FromContext(ctx)
//	logger.Info("prediction completed", "model", model, "candidates", n)
//
// When no logger is found in the context, FromContext returns a default JSON
// logger writing to stdout at Info level, so logging always works even when
// nothing was configured.
package logging
