// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

type trainOptions struct {
	save      bool
	storePath string
	preview   int
}

// previewRow is one normalized rating shown before training.
type previewRow struct {
	UserID     int     `json:"user_id"`
	ProjectID  int     `json:"project_id"`
	Normalized float64 `json:"donation_normalized"`
}

type trainResult struct {
	Preview []previewRow             `json:"preview,omitempty"`
	Status  recommend.TrainingStatus `json:"status"`
	Saved   bool                     `json:"saved"`
}

func newTrainCmd(root *rootOptions) *cobra.Command {
	opts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the model and print its holdout evaluation",
		Long: `Loads the dataset, normalizes donations, trains the hybrid model and
prints the holdout RMSE and MAE. With --save the trained snapshot is written
to the model store so the server can restore it on startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.save, "save", false, "persist the trained snapshot to the model store")
	f.StringVar(&opts.storePath, "store", "", "model store directory (default: MODEL_STORE_PATH)")
	f.IntVar(&opts.preview, "preview", 5, "number of normalized ratings to print before training")
	return cmd
}

func runTrain(cmd *cobra.Command, root *rootOptions, opts *trainOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	storePath := ""
	if opts.save {
		storePath = opts.storePath
		if storePath == "" {
			storePath = root.cfg.Storage.Path
		}
	}

	s, err := root.openSession(storePath)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	result := trainResult{Saved: opts.save}
	if opts.preview > 0 {
		interactions, err := s.db.GetInteractions(ctx)
		if err != nil {
			return fmt.Errorf("load interactions: %w", err)
		}
		ratings, _, err := recommend.Normalize(interactions)
		if err != nil {
			return err
		}
		for i := 0; i < len(ratings) && i < opts.preview; i++ {
			result.Preview = append(result.Preview, previewRow{
				UserID:     ratings[i].UserID,
				ProjectID:  ratings[i].ProjectID,
				Normalized: ratings[i].Value,
			})
		}
	}

	if err := s.train(ctx); err != nil {
		return err
	}
	result.Status = s.engine.Status()

	if root.jsonOutput {
		return writeJSON(out, result)
	}
	printTrainResult(out, &result, storePath)
	return nil
}

func printTrainResult(w io.Writer, result *trainResult, storePath string) {
	for _, row := range result.Preview {
		fmt.Fprintf(w, "User ID: %d, Project ID: %d, Donation (normalized): %g\n",
			row.UserID, row.ProjectID, row.Normalized)
	}
	if len(result.Preview) > 0 {
		fmt.Fprintln(w)
	}

	st := result.Status
	fmt.Fprintf(w, "Model v%d trained in %dms\n", st.ModelVersion, st.LastTrainingDurationMS)
	fmt.Fprintf(w, "  interactions: %d\n", st.InteractionCount)
	fmt.Fprintf(w, "  projects:     %d\n", st.ProjectCount)
	fmt.Fprintf(w, "  users:        %d\n", st.UserCount)
	fmt.Fprintf(w, "  max donation: %g\n", st.MaxDonation)

	if ev := st.Evaluation; ev != nil {
		fmt.Fprintf(w, "  holdout:      %d test / %d train\n", ev.TestCount, ev.TrainCount)
		fmt.Fprintf(w, "  RMSE:         %.4f\n", ev.RMSE)
		fmt.Fprintf(w, "  MAE:          %.4f\n", ev.MAE)
	} else {
		fmt.Fprintln(w, "  holdout:      skipped")
	}

	if result.Saved {
		fmt.Fprintf(w, "Snapshot saved to %s\n", storePath)
	}
}
