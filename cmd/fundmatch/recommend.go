// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

type recommendOptions struct {
	userID int
	k      int
}

type recommendResult struct {
	UserID    int                       `json:"user_id"`
	Hybrid    []recommend.ScoredProject `json:"hybrid"`
	Knowledge []recommend.Project       `json:"knowledge"`

	// KnowledgeError is set when the user is not registered.
	KnowledgeError string `json:"knowledge_error,omitempty"`
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Train, then print hybrid and interest-based recommendations for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.userID, "user", "u", 0, "user id to recommend for")
	f.IntVar(&opts.k, "k", 0, "number of hybrid recommendations (default: RECOMMEND_K)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	if opts.k < 0 {
		return fmt.Errorf("--k must be non-negative, got %d", opts.k)
	}

	ctx := cmd.Context()
	s, err := root.openSession("")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.train(ctx); err != nil {
		return err
	}

	resp, err := s.engine.Recommend(ctx, recommend.Request{UserID: opts.userID, K: opts.k})
	if err != nil {
		return err
	}
	result := recommendResult{UserID: opts.userID, Hybrid: resp.Items}

	knowledge, err := s.engine.RecommendByInterest(ctx, opts.userID)
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		result.KnowledgeError = err.Error()
	case err != nil:
		return err
	default:
		result.Knowledge = knowledge
	}

	if root.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	printRecommendResult(cmd.OutOrStdout(), &result)
	return nil
}

func printRecommendResult(w io.Writer, result *recommendResult) {
	fmt.Fprintf(w, "Hybrid recommendations for user %d:\n", result.UserID)
	if len(result.Hybrid) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, item := range result.Hybrid {
		fmt.Fprintf(w, "  %d. project %d %-14s score=%.4f cf=%.4f content=%g\n",
			i+1, item.ProjectID, categoryLabel(item.Category), item.Score, item.CFScore, item.ContentScore)
	}

	fmt.Fprintf(w, "\nKnowledge-based recommendations for user %d:\n", result.UserID)
	switch {
	case result.KnowledgeError != "":
		fmt.Fprintf(w, "  (%s)\n", result.KnowledgeError)
	case len(result.Knowledge) == 0:
		fmt.Fprintln(w, "  (none)")
	}
	for _, p := range result.Knowledge {
		if p.Title != "" {
			fmt.Fprintf(w, "  - project %d %s %s\n", p.ID, categoryLabel(p.Category), p.Title)
			continue
		}
		fmt.Fprintf(w, "  - project %d %s\n", p.ID, categoryLabel(p.Category))
	}
}

func categoryLabel(category string) string {
	if category == "" {
		return "(uncategorized)"
	}
	return "(" + category + ")"
}
