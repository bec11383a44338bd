// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package services provides suture.Service wrappers for Fundmatch components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in event logs.

# Available Services

HTTPServerService:
  - Wraps *http.Server (or any HTTPServer) with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve

RecommendService:
  - Restores the latest model snapshot from the store (optional)
  - Trains on startup (optional) and every TrainInterval (0 disables)
  - Logs training failures instead of returning them; the engine keeps
    serving the previous snapshot

# Return Values

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted by the supervisor
	ctx.Err()   -> shutdown requested
*/
package services
