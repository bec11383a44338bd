// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

type constantPredictor float64

func (c constantPredictor) Predict(int, int) float64 { return float64(c) }

func TestEvaluate(t *testing.T) {
	t.Parallel()

	test := []recommend.Rating{
		{UserID: 1, ProjectID: 1, Value: 1.0},
		{UserID: 2, ProjectID: 1, Value: 0.0},
	}

	eval, err := Evaluate(context.Background(), constantPredictor(0.5), test)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(eval.RMSE-0.5) > 1e-12 {
		t.Errorf("RMSE = %v, want 0.5", eval.RMSE)
	}
	if math.Abs(eval.MAE-0.5) > 1e-12 {
		t.Errorf("MAE = %v, want 0.5", eval.MAE)
	}
	if eval.TestCount != 2 {
		t.Errorf("TestCount = %d, want 2", eval.TestCount)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	t.Parallel()

	eval, err := Evaluate(context.Background(), constantPredictor(0), nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval != (recommend.Evaluation{}) {
		t.Errorf("Evaluate(nil) = %+v, want zero", eval)
	}
}

func TestEvaluate_TrainedModelBeatsWorstCase(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())
	eval, err := Evaluate(context.Background(), m, scenarioRatings())
	if err != nil {
		t.Fatal(err)
	}
	if eval.RMSE <= 0 || eval.RMSE >= 1 {
		t.Errorf("RMSE = %v, want in (0, 1)", eval.RMSE)
	}
	if eval.MAE > eval.RMSE {
		t.Errorf("MAE %v exceeds RMSE %v", eval.MAE, eval.RMSE)
	}
}
