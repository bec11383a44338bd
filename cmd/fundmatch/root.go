// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/fundmatch/internal/config"
	"github.com/tomtom215/fundmatch/internal/database"
	"github.com/tomtom215/fundmatch/internal/logging"
	"github.com/tomtom215/fundmatch/internal/recommend/hybrid"
	"github.com/tomtom215/fundmatch/internal/recommend/storage"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	interactions string
	projects     string
	users        string
	duckdb       string
	logLevel     string
	jsonOutput   bool

	cfg *config.Config
}

// newRootCmd builds the command tree. Output goes to out so tests can
// capture it.
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "fundmatch",
		Short: "Fundmatch - hybrid project recommendations for donors",
		Long: `Fundmatch trains a latent factor model on donation amounts, fuses it
with category-based content similarity and recommends projects to donors.

Settings come from the same config file and environment variables as the
server; the data flags below override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.load()
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	pf.StringVar(&opts.interactions, "interactions", "", "interactions CSV (overrides INTERACTIONS_PATH)")
	pf.StringVar(&opts.projects, "projects", "", "projects CSV (overrides PROJECTS_PATH)")
	pf.StringVar(&opts.users, "users", "", "users CSV (overrides USERS_PATH)")
	pf.StringVar(&opts.duckdb, "duckdb", "", "DuckDB file holding the tables (overrides DUCKDB_PATH)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newTrainCmd(opts),
		newRecommendCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and applies the flag overrides.
func (o *rootOptions) load() error {
	logging.Init(logging.Config{
		Level:     o.logLevel,
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	})

	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if o.interactions != "" {
		cfg.Data.InteractionsPath = o.interactions
	}
	if o.projects != "" {
		cfg.Data.ProjectsPath = o.projects
	}
	if o.users != "" {
		cfg.Data.UsersPath = o.users
	}
	if o.duckdb != "" {
		cfg.Data.DuckDBPath = o.duckdb
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	o.cfg = cfg
	return nil
}

// session is an opened database plus an engine reading from it.
type session struct {
	db     *database.DB
	store  *storage.Store
	engine *hybrid.Engine
}

// openSession opens the dataset and builds an untrained engine. When
// storePath is not empty, trained snapshots are saved there.
func (o *rootOptions) openSession(storePath string) (*session, error) {
	db, err := database.New(&o.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	engine, err := hybrid.NewEngine(o.cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	engine.SetDataProvider(db)

	s := &session{db: db, engine: engine}
	if storePath != "" {
		store, err := storage.NewStore(storePath)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open model store: %w", err)
		}
		engine.SetStore(store)
		s.store = store
	}
	return s, nil
}

// train runs one synchronous training pass.
func (s *session) train(ctx context.Context) error {
	if err := s.engine.Train(ctx); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	return nil
}

func (s *session) Close() error {
	var storeErr error
	if s.store != nil {
		storeErr = s.store.Close()
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	return storeErr
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
