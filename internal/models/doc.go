// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package models defines the HTTP response types of the Fundmatch API.
//
// Every endpoint wraps its payload in APIResponse. Recommendation lists,
// training status and predictions reuse the JSON-tagged types of the
// recommend packages as payloads; this package only adds the envelope,
// error codes and the few payloads that have no home in the engine.
package models
