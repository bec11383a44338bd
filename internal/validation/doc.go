// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata after first use and is safe for concurrent use. Field names in
// messages come from json tags when present, so API clients see the same
// names they sent ("user_id", not "UserID").
//
// # Custom Tags
//
//   - finite: float must not be NaN or infinite
//   - interaction: string must be one of view, like, donate
//
// # Usage
//
//	type recommendParams struct {
//	    UserID int64 `json:"user_id" validate:"gte=0"`
//	    K      int   `json:"k" validate:"gte=0,lte=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Configuration structs are validated through the same entry point.
package validation
