// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// scenarioRatings is the normalized three-interaction example
// (donations 100, 50, 200 over a maximum of 200).
func scenarioRatings() []recommend.Rating {
	return []recommend.Rating{
		{UserID: 1, ProjectID: 1, Value: 0.5},
		{UserID: 1, ProjectID: 2, Value: 0.25},
		{UserID: 2, ProjectID: 1, Value: 1.0},
	}
}

func smallConfig() recommend.LatentFactorConfig {
	cfg := recommend.DefaultLatentFactorConfig()
	cfg.Factors = 4
	return cfg
}

func trainLatent(t *testing.T, cfg recommend.LatentFactorConfig, ratings []recommend.Rating) *LatentFactor {
	t.Helper()
	m, err := NewLatentFactor(cfg)
	if err != nil {
		t.Fatalf("NewLatentFactor() error = %v", err)
	}
	if err := m.Train(context.Background(), ratings); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return m
}

func TestNewLatentFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*recommend.LatentFactorConfig)
		wantErr bool
	}{
		{name: "default config", modify: func(*recommend.LatentFactorConfig) {}},
		{name: "zero epochs kept", modify: func(c *recommend.LatentFactorConfig) { c.Epochs = 0 }},
		{name: "zero factors kept", modify: func(c *recommend.LatentFactorConfig) { c.Factors = 0 }},
		{name: "negative learning rate", modify: func(c *recommend.LatentFactorConfig) { c.LearningRate = -1 }, wantErr: true},
		{name: "negative init std dev", modify: func(c *recommend.LatentFactorConfig) { c.InitStdDev = -0.1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := recommend.DefaultLatentFactorConfig()
			tt.modify(&cfg)

			m, err := NewLatentFactor(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLatentFactor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if m.Config() != cfg {
				t.Errorf("Config() = %+v, want %+v", m.Config(), cfg)
			}
			if m.IsTrained() {
				t.Error("new model reports trained")
			}
			if m.Name() != "latent_factor" {
				t.Errorf("Name() = %q", m.Name())
			}
		})
	}
}

func TestLatentFactor_TrainEmpty(t *testing.T) {
	t.Parallel()

	m, err := NewLatentFactor(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = m.Train(context.Background(), nil)
	if !errors.Is(err, recommend.ErrInsufficientData) {
		t.Errorf("Train(nil) error = %v, want ErrInsufficientData", err)
	}
	if m.IsTrained() {
		t.Error("model trained on empty input")
	}
}

func TestLatentFactor_ZeroEpochsIsIdentity(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.Epochs = 0
	m := trainLatent(t, cfg, scenarioRatings())

	//nolint:gosec // G404: reproduces the model's initialization
	rng := rand.New(rand.NewSource(cfg.Seed))
	draw := func() []float64 {
		row := make([]float64, cfg.Factors)
		for f := range row {
			row[f] = rng.NormFloat64() * cfg.InitStdDev
		}
		return row
	}

	// users 1, 2 then projects 1, 2, each in first-seen order
	wantUsers := [][]float64{draw(), draw()}
	wantProjects := [][]float64{draw(), draw()}

	for i, id := range []int{1, 2} {
		got, ok := m.UserFactors(id)
		if !ok || !reflect.DeepEqual(got, wantUsers[i]) {
			t.Errorf("UserFactors(%d) = %v, want %v", id, got, wantUsers[i])
		}
		if b, _ := m.UserBias(id); b != 0 {
			t.Errorf("UserBias(%d) = %f, want 0", id, b)
		}
	}
	for i, id := range []int{1, 2} {
		got, ok := m.ProjectFactors(id)
		if !ok || !reflect.DeepEqual(got, wantProjects[i]) {
			t.Errorf("ProjectFactors(%d) = %v, want %v", id, got, wantProjects[i])
		}
		if b, _ := m.ProjectBias(id); b != 0 {
			t.Errorf("ProjectBias(%d) = %f, want 0", id, b)
		}
	}
}

func TestLatentFactor_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	a := trainLatent(t, cfg, scenarioRatings()).State()
	b := trainLatent(t, cfg, scenarioRatings()).State()

	if a.GlobalBias != b.GlobalBias {
		t.Errorf("GlobalBias differs: %v vs %v", a.GlobalBias, b.GlobalBias)
	}
	if !reflect.DeepEqual(a.UserBias, b.UserBias) || !reflect.DeepEqual(a.ProjectBias, b.ProjectBias) {
		t.Error("biases differ between identical trainings")
	}
	if !reflect.DeepEqual(a.UserFactors, b.UserFactors) || !reflect.DeepEqual(a.ProjectFactors, b.ProjectFactors) {
		t.Error("factors differ between identical trainings")
	}
}

func TestLatentFactor_Predict(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())
	mu := m.GlobalBias()

	t.Run("global bias is the training mean", func(t *testing.T) {
		want := (0.5 + 0.25 + 1.0) / 3
		if diff := mu - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("GlobalBias() = %v, want %v", mu, want)
		}
	})

	t.Run("both unknown is exactly the global bias", func(t *testing.T) {
		if got := m.Predict(99, 99); got != mu {
			t.Errorf("Predict(99, 99) = %v, want %v", got, mu)
		}
	})

	t.Run("unknown user drops user bias and dot term", func(t *testing.T) {
		bi, _ := m.ProjectBias(1)
		if got := m.Predict(99, 1); got != mu+bi {
			t.Errorf("Predict(99, 1) = %v, want %v", got, mu+bi)
		}
	})

	t.Run("unknown project drops project bias and dot term", func(t *testing.T) {
		bu, _ := m.UserBias(2)
		if got := m.Predict(2, 99); got != mu+bu {
			t.Errorf("Predict(2, 99) = %v, want %v", got, mu+bu)
		}
	})

	t.Run("known pair adds every term", func(t *testing.T) {
		bu, _ := m.UserBias(1)
		bi, _ := m.ProjectBias(2)
		pu, _ := m.UserFactors(1)
		qi, _ := m.ProjectFactors(2)
		dot := 0.0
		for f := range pu {
			dot += pu[f] * qi[f]
		}
		want := mu + bu + bi + dot
		if diff := m.Predict(1, 2) - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("Predict(1, 2) = %v, want %v", m.Predict(1, 2), want)
		}
	})
}

func TestLatentFactor_LearningChangesPrediction(t *testing.T) {
	t.Parallel()

	cfg := recommend.DefaultLatentFactorConfig()
	untrained := cfg
	untrained.Epochs = 0

	before := trainLatent(t, untrained, scenarioRatings()).Predict(1, 1)
	after := trainLatent(t, cfg, scenarioRatings()).Predict(1, 1)

	if before == after {
		t.Errorf("Predict(1, 1) unchanged after %d epochs: %v", cfg.Epochs, after)
	}
}

func TestLatentFactor_Clip(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.Clip = true
	cfg.InitStdDev = 5
	cfg.Epochs = 0
	m := trainLatent(t, cfg, scenarioRatings())

	for _, u := range []int{1, 2, 3} {
		for _, p := range []int{1, 2, 3} {
			if got := m.Predict(u, p); got < 0 || got > 1 {
				t.Errorf("Predict(%d, %d) = %v outside [0, 1]", u, p, got)
			}
		}
	}
}

func TestLatentFactor_PredictChecked(t *testing.T) {
	t.Parallel()

	m, err := NewLatentFactor(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.PredictChecked(1, 1); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("PredictChecked() before Train error = %v, want ErrModelNotReady", err)
	}

	if err := m.Train(context.Background(), scenarioRatings()); err != nil {
		t.Fatal(err)
	}
	got, err := m.PredictChecked(1, 1)
	if err != nil {
		t.Fatalf("PredictChecked() error = %v", err)
	}
	if got != m.Predict(1, 1) {
		t.Errorf("PredictChecked() = %v, want %v", got, m.Predict(1, 1))
	}
}

func TestLatentFactor_ContextCancellation(t *testing.T) {
	t.Parallel()

	m, err := NewLatentFactor(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Train(ctx, scenarioRatings()); !errors.Is(err, context.Canceled) {
		t.Errorf("Train() error = %v, want context.Canceled", err)
	}
	if m.IsTrained() {
		t.Error("canceled training marked model trained")
	}
}

func TestLatentFactor_StateRoundTrip(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())
	state := m.State()

	restored, err := RestoreLatentFactor(&state)
	if err != nil {
		t.Fatalf("RestoreLatentFactor() error = %v", err)
	}
	if !restored.IsTrained() {
		t.Error("restored model not trained")
	}
	if restored.Version() != m.Version() {
		t.Errorf("Version() = %d, want %d", restored.Version(), m.Version())
	}
	for _, u := range []int{1, 2, 7} {
		for _, p := range []int{1, 2, 7} {
			if restored.Predict(u, p) != m.Predict(u, p) {
				t.Errorf("Predict(%d, %d) differs after restore", u, p)
			}
		}
	}

	state.UserFactors[0][0] = 1e9
	if restored.Predict(1, 1) != m.Predict(1, 1) {
		t.Error("restored model shares state with exported copy")
	}
}

func TestRestoreLatentFactor_Inconsistent(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())

	tests := []struct {
		name   string
		modify func(*LatentFactorState)
	}{
		{name: "missing user bias", modify: func(s *LatentFactorState) { s.UserBias = s.UserBias[:1] }},
		{name: "missing project row", modify: func(s *LatentFactorState) { s.ProjectFactors = s.ProjectFactors[:1] }},
		{name: "short factor row", modify: func(s *LatentFactorState) { s.UserFactors[1] = s.UserFactors[1][:2] }},
		{name: "invalid config", modify: func(s *LatentFactorState) { s.Config.LearningRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := m.State()
			tt.modify(&state)
			if _, err := RestoreLatentFactor(&state); err == nil {
				t.Error("RestoreLatentFactor() error = nil, want error")
			}
		})
	}
}

func TestLatentFactor_KnownEntities(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())

	if m.NumUsers() != 2 || m.NumProjects() != 2 {
		t.Errorf("NumUsers/NumProjects = %d/%d, want 2/2", m.NumUsers(), m.NumProjects())
	}
	if !m.KnowsUser(2) || m.KnowsUser(3) {
		t.Error("KnowsUser() mismatch")
	}
	if !m.KnowsProject(2) || m.KnowsProject(3) {
		t.Error("KnowsProject() mismatch")
	}
	if _, ok := m.UserFactors(3); ok {
		t.Error("UserFactors(3) found for unknown user")
	}
}

func TestLatentFactor_DivergedTrainingRejected(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.Factors = 10
	cfg.LearningRate = 5
	m, err := NewLatentFactor(cfg)
	if err != nil {
		t.Fatalf("NewLatentFactor() error = %v", err)
	}

	err = m.Train(context.Background(), scenarioRatings())
	if !errors.Is(err, recommend.ErrTrainingDiverged) {
		t.Fatalf("Train() error = %v, want ErrTrainingDiverged", err)
	}
	if m.IsTrained() {
		t.Error("model marked trained after diverging")
	}
	if got := m.Predict(1, 1); got != 0 {
		t.Errorf("Predict(1, 1) = %v, want 0 from an untrained model", got)
	}
}

func TestLatentFactor_DivergedRetrainKeepsParameters(t *testing.T) {
	t.Parallel()

	m := trainLatent(t, smallConfig(), scenarioRatings())
	before := m.Predict(1, 1)

	m.config.Factors = 10
	m.config.LearningRate = 5
	if err := m.Train(context.Background(), scenarioRatings()); !errors.Is(err, recommend.ErrTrainingDiverged) {
		t.Fatalf("Train() error = %v, want ErrTrainingDiverged", err)
	}
	if got := m.Predict(1, 1); got != before || math.IsNaN(got) {
		t.Errorf("Predict(1, 1) = %v after diverged retrain, want %v", got, before)
	}
}

func TestCheckFinite(t *testing.T) {
	t.Parallel()

	finite := [][]float64{{0.1, -0.2}, {0.3, 0.4}}
	tests := []struct {
		name           string
		userBias       []float64
		projectBias    []float64
		userFactors    [][]float64
		projectFactors [][]float64
		wantErr        bool
	}{
		{name: "all finite", userBias: []float64{1}, projectBias: []float64{-1}, userFactors: finite, projectFactors: finite},
		{name: "empty", wantErr: false},
		{name: "NaN user bias", userBias: []float64{math.NaN()}, projectBias: []float64{0}, userFactors: finite, projectFactors: finite, wantErr: true},
		{name: "infinite project bias", userBias: []float64{0}, projectBias: []float64{math.Inf(-1)}, userFactors: finite, projectFactors: finite, wantErr: true},
		{name: "infinite user factor", userBias: []float64{0}, projectBias: []float64{0}, userFactors: [][]float64{{0, math.Inf(1)}}, projectFactors: finite, wantErr: true},
		{name: "NaN project factor", userBias: []float64{0}, projectBias: []float64{0}, userFactors: finite, projectFactors: [][]float64{{0.1}, {math.NaN()}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := checkFinite(tt.userBias, tt.projectBias, tt.userFactors, tt.projectFactors)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkFinite() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, recommend.ErrTrainingDiverged) {
				t.Errorf("checkFinite() error = %v, want ErrTrainingDiverged", err)
			}
		})
	}
}

// negativePrediction builds unclipped zero-epoch models over successive
// seeds until one predicts below zero for a known pair.
func negativePrediction(t *testing.T) (*LatentFactor, int, int) {
	t.Helper()

	for seed := int64(1); seed <= 50; seed++ {
		cfg := recommend.DefaultLatentFactorConfig()
		cfg.Factors = 10
		cfg.Epochs = 0
		cfg.InitStdDev = 5
		cfg.Clip = false
		cfg.Seed = seed
		lf := trainLatent(t, cfg, scenarioRatings())
		for _, u := range []int{1, 2} {
			for _, p := range []int{1, 2} {
				if lf.Predict(u, p) < 0 {
					return lf, u, p
				}
			}
		}
	}
	t.Fatal("no seed produced a negative prediction")
	return nil, 0, 0
}

func TestLatentFactor_UnclippedPredictionCanBeNegative(t *testing.T) {
	t.Parallel()

	m, u, p := negativePrediction(t)
	got := m.Predict(u, p)

	pu, _ := m.UserFactors(u)
	qp, _ := m.ProjectFactors(p)
	var dot float64
	for f := range pu {
		dot += pu[f] * qp[f]
	}
	want := m.GlobalBias() + dot
	if diff := math.Abs(got - want); diff > 1e-9 {
		t.Errorf("Predict(%d, %d) = %v, want global bias plus dot product %v", u, p, got, want)
	}
	if got >= 0 {
		t.Errorf("Predict(%d, %d) = %v, want negative", u, p, got)
	}

	checked, err := m.PredictChecked(u, p)
	if err != nil || checked != got {
		t.Errorf("PredictChecked(%d, %d) = %v, %v, want %v", u, p, checked, err, got)
	}
}
