// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package supervisor provides process supervision for Fundmatch using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("fundmatch")
	├── EngineSupervisor ("engine-layer")
	│   └── RecommendService (restore, startup training, retrain ticker)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing training loop is restarted without touching the HTTP server,
which keeps answering from the last published model snapshot.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddEngineService(services.NewRecommendService(engine, svcCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

Supervisor events (service start, failure, backoff) are logged through
sutureslog into the zerolog-backed slog handler of the logging package.

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Above FailureThreshold the supervisor waits FailureBackoff before the next
restart. Services return ctx.Err() on shutdown and an error to request a
restart.

DuckDB and Badger are not supervised; they are embedded libraries opened
once by the server and closed on exit.
*/
package supervisor
