// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package logging provides the process-wide zerolog logger for Fundmatch.
//
// The server and CLI configure it once from LOG_LEVEL, LOG_FORMAT and
// LOG_CALLER:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	    Caller: cfg.Logging.Caller,
//	})
//
// Components take a child logger rather than reading the global one on every
// call; the recommendation engine is handed its logger at construction:
//
//	engine, err := hybrid.NewEngine(engineCfg, logging.WithComponent("recommend"))
//
// # Request Context
//
// The API middleware stores a request ID in the request context. Ctx returns
// a logger that carries it:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation failed")
//
// # Supervisor Integration
//
// Suture reports through log/slog. SlogHandler forwards slog records to
// zerolog so supervisor events land in the same stream:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Formats
//
//   - json: one JSON object per line (default)
//   - console: zerolog.ConsoleWriter, for terminals and the CLI
package logging
