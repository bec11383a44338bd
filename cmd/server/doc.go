// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package main is the entry point for the Fundmatch recommendation server.

Fundmatch recommends charitable projects to donors by fusing a latent factor
model trained on donation amounts with category-based content similarity.
The server loads its dataset through DuckDB, trains the hybrid engine in the
background and serves recommendations over a JSON REST API.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("fundmatch")
	├── EngineSupervisor ("engine-layer")
	│   └── Recommend service (restore, startup and scheduled training)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB over the interactions, projects and users CSV files
 4. Model store: BadgerDB snapshot store (optional, MODEL_STORE_ENABLED)
 5. Engine: hybrid recommendation engine wired to the database and store
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, the engine service stops its training ticker,
and the database and model store are closed on the way out.

# Example Usage

	export INTERACTIONS_PATH=/data/interactions.csv
	export PROJECTS_PATH=/data/projects.csv
	export USERS_PATH=/data/users.csv
	export MODEL_STORE_ENABLED=true
	./fundmatch-server

	curl http://localhost:8080/api/v1/recommendations/users/1?k=5
*/
package main
