// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Command fundmatch trains the hybrid recommendation model offline and
// prints recommendations for a single user.
//
//	fundmatch train --interactions interactions.csv --projects projects.csv --users users.csv
//	fundmatch train --save --store /data/models
//	fundmatch recommend --user 123 --k 5
//	fundmatch version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
