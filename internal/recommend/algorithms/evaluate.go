// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// RatingPredictor estimates a normalized rating for a user-project pair.
type RatingPredictor interface {
	Predict(userID, projectID int) float64
}

// Evaluate computes RMSE and MAE of model over held-out ratings.
// An empty test set yields a zero Evaluation.
func Evaluate(ctx context.Context, model RatingPredictor, test []recommend.Rating) (recommend.Evaluation, error) {
	if len(test) == 0 {
		return recommend.Evaluation{}, nil
	}

	squared := make([]float64, len(test))
	absolute := make([]float64, len(test))
	for i := range test {
		if i%1024 == 0 && ContextCancelled(ctx) {
			return recommend.Evaluation{}, ctx.Err()
		}
		diff := test[i].Value - model.Predict(test[i].UserID, test[i].ProjectID)
		squared[i] = diff * diff
		absolute[i] = math.Abs(diff)
	}

	return recommend.Evaluation{
		RMSE:      math.Sqrt(stat.Mean(squared, nil)),
		MAE:       stat.Mean(absolute, nil),
		TestCount: len(test),
	}, nil
}
