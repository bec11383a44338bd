// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// LatentFactor implements biased matrix factorization trained with
// stochastic gradient descent over normalized donation ratings.
//
// The model predicts:
//
//	r(u,p) = mu + b_u + b_p + dot(p_u, q_p)
//
// where mu is the mean training rating, b_u and b_p are learned biases and
// p_u, q_p are learned factor vectors. Each SGD step on a rating r uses the
// error e = r - r(u,p):
//
//	b_u += lr * (e - reg*b_u)
//	b_p += lr * (e - reg*b_p)
//	p_u += lr * (e*q_p - reg*p_u)
//	q_p += lr * (e*p_u - reg*q_p)
//
// The two factor updates both read the pre-step vectors.
type LatentFactor struct {
	BaseAlgorithm
	config recommend.LatentFactorConfig

	globalBias float64

	// userIndex maps user ID to row; userIDs is the inverse in first-seen order.
	userIndex map[int]int
	userIDs   []int

	// projectIndex maps project ID to row; projectIDs is the inverse.
	projectIndex map[int]int
	projectIDs   []int

	userBias       []float64
	projectBias    []float64
	userFactors    [][]float64
	projectFactors [][]float64
}

// LatentFactorState is the complete parameter set of a trained LatentFactor.
// It is the unit of persistence.
type LatentFactorState struct {
	Config         recommend.LatentFactorConfig
	GlobalBias     float64
	UserIDs        []int
	ProjectIDs     []int
	UserBias       []float64
	ProjectBias    []float64
	UserFactors    [][]float64
	ProjectFactors [][]float64
	Version        int
	TrainedAt      time.Time
}

// NewLatentFactor creates an untrained model.
// Unlike the tuning knobs of the other components, zero values are taken
// literally: Epochs=0 yields the initialized parameters.
func NewLatentFactor(cfg recommend.LatentFactorConfig) (*LatentFactor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &LatentFactor{
		BaseAlgorithm: NewBaseAlgorithm("latent_factor"),
		config:        cfg,
		userIndex:     make(map[int]int),
		projectIndex:  make(map[int]int),
	}, nil
}

// Config returns the model hyperparameters.
func (m *LatentFactor) Config() recommend.LatentFactorConfig {
	return m.config
}

// Train fits biases and factors to ratings.
//
// Parameters are built off to the side and swapped in when every epoch has
// completed, so a canceled run leaves the previous parameters in place.
func (m *LatentFactor) Train(ctx context.Context, ratings []recommend.Rating) error {
	if len(ratings) == 0 {
		return fmt.Errorf("latent factor: %w: no ratings", recommend.ErrInsufficientData)
	}

	cfg := m.config
	values := make([]float64, len(ratings))
	for i := range ratings {
		values[i] = ratings[i].Value
	}
	mu := stat.Mean(values, nil)

	userIDs, userIndex := firstSeen(len(ratings), func(i int) int { return ratings[i].UserID })
	projectIDs, projectIndex := firstSeen(len(ratings), func(i int) int { return ratings[i].ProjectID })

	//nolint:gosec // G404: math/rand is acceptable for ML initialization (not security)
	rng := rand.New(rand.NewSource(cfg.Seed))
	userFactors := initFactors(rng, len(userIDs), cfg.Factors, cfg.InitStdDev)
	projectFactors := initFactors(rng, len(projectIDs), cfg.Factors, cfg.InitStdDev)
	userBias := make([]float64, len(userIDs))
	projectBias := make([]float64, len(projectIDs))

	lr, reg := cfg.LearningRate, cfg.Regularization
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		for i := range ratings {
			u := userIndex[ratings[i].UserID]
			p := projectIndex[ratings[i].ProjectID]
			pu, qp := userFactors[u], projectFactors[p]

			e := ratings[i].Value - (mu + userBias[u] + projectBias[p] + floats.Dot(pu, qp))

			userBias[u] += lr * (e - reg*userBias[u])
			projectBias[p] += lr * (e - reg*projectBias[p])

			for f := range pu {
				puf, qpf := pu[f], qp[f]
				pu[f] += lr * (e*qpf - reg*puf)
				qp[f] += lr * (e*puf - reg*qpf)
			}
		}
	}

	if err := checkFinite(userBias, projectBias, userFactors, projectFactors); err != nil {
		return err
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	m.globalBias = mu
	m.userIDs, m.userIndex = userIDs, userIndex
	m.projectIDs, m.projectIndex = projectIDs, projectIndex
	m.userBias, m.projectBias = userBias, projectBias
	m.userFactors, m.projectFactors = userFactors, projectFactors
	m.markTrained()
	return nil
}

// checkFinite rejects parameters containing NaN or an infinity.
func checkFinite(userBias, projectBias []float64, userFactors, projectFactors [][]float64) error {
	groups := []struct {
		kind string
		rows [][]float64
	}{
		{"user bias", [][]float64{userBias}},
		{"project bias", [][]float64{projectBias}},
		{"user factors", userFactors},
		{"project factors", projectFactors},
	}
	for _, g := range groups {
		for _, row := range g.rows {
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("latent factor: %w: non-finite %s", recommend.ErrTrainingDiverged, g.kind)
				}
			}
		}
	}
	return nil
}

func initFactors(rng *rand.Rand, rows, factors int, stdDev float64) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		row := make([]float64, factors)
		for f := range row {
			row[f] = rng.NormFloat64() * stdDev
		}
		out[r] = row
	}
	return out
}

// Predict returns the normalized rating estimate for a user-project pair.
//
// An unknown user drops the user bias and the dot term; an unknown project
// drops the project bias and the dot term. When both are unknown the result
// is exactly the global bias. Predict never fails; an untrained model
// returns 0.
func (m *LatentFactor) Predict(userID, projectID int) float64 {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if !m.trained {
		return 0
	}

	est := m.globalBias
	u, knownUser := m.userIndex[userID]
	p, knownProject := m.projectIndex[projectID]
	if knownUser {
		est += m.userBias[u]
	}
	if knownProject {
		est += m.projectBias[p]
	}
	if knownUser && knownProject {
		est += floats.Dot(m.userFactors[u], m.projectFactors[p])
	}

	if m.config.Clip {
		est = clamp01(est)
	}
	return est
}

// PredictChecked is Predict with an explicit readiness check.
func (m *LatentFactor) PredictChecked(userID, projectID int) (float64, error) {
	if !m.IsTrained() {
		return 0, recommend.ErrModelNotReady
	}
	return m.Predict(userID, projectID), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GlobalBias returns the mean training rating.
func (m *LatentFactor) GlobalBias() float64 {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return m.globalBias
}

// UserBias returns the learned bias of a user.
func (m *LatentFactor) UserBias(userID int) (float64, bool) {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	u, ok := m.userIndex[userID]
	if !ok {
		return 0, false
	}
	return m.userBias[u], true
}

// ProjectBias returns the learned bias of a project.
func (m *LatentFactor) ProjectBias(projectID int) (float64, bool) {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	p, ok := m.projectIndex[projectID]
	if !ok {
		return 0, false
	}
	return m.projectBias[p], true
}

// UserFactors returns a copy of the user's factor vector.
func (m *LatentFactor) UserFactors(userID int) ([]float64, bool) {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	u, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), m.userFactors[u]...), true
}

// ProjectFactors returns a copy of the project's factor vector.
func (m *LatentFactor) ProjectFactors(projectID int) ([]float64, bool) {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	p, ok := m.projectIndex[projectID]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), m.projectFactors[p]...), true
}

// KnowsUser reports whether the user appeared in the training ratings.
func (m *LatentFactor) KnowsUser(userID int) bool {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	_, ok := m.userIndex[userID]
	return ok
}

// KnowsProject reports whether the project appeared in the training ratings.
func (m *LatentFactor) KnowsProject(projectID int) bool {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	_, ok := m.projectIndex[projectID]
	return ok
}

// NumUsers returns the number of users with parameters.
func (m *LatentFactor) NumUsers() int {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return len(m.userIDs)
}

// NumProjects returns the number of projects with parameters.
func (m *LatentFactor) NumProjects() int {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return len(m.projectIDs)
}

// State exports a deep copy of the parameters.
func (m *LatentFactor) State() LatentFactorState {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	return LatentFactorState{
		Config:         m.config,
		GlobalBias:     m.globalBias,
		UserIDs:        append([]int(nil), m.userIDs...),
		ProjectIDs:     append([]int(nil), m.projectIDs...),
		UserBias:       append([]float64(nil), m.userBias...),
		ProjectBias:    append([]float64(nil), m.projectBias...),
		UserFactors:    copyMatrix(m.userFactors),
		ProjectFactors: copyMatrix(m.projectFactors),
		Version:        m.version,
		TrainedAt:      m.lastTrainedAt,
	}
}

// RestoreLatentFactor rebuilds a trained model from exported state.
func RestoreLatentFactor(state *LatentFactorState) (*LatentFactor, error) {
	m, err := NewLatentFactor(state.Config)
	if err != nil {
		return nil, fmt.Errorf("restore latent factor: %w", err)
	}

	nu, np := len(state.UserIDs), len(state.ProjectIDs)
	if len(state.UserBias) != nu || len(state.UserFactors) != nu {
		return nil, fmt.Errorf("restore latent factor: %d users but %d biases and %d factor rows",
			nu, len(state.UserBias), len(state.UserFactors))
	}
	if len(state.ProjectBias) != np || len(state.ProjectFactors) != np {
		return nil, fmt.Errorf("restore latent factor: %d projects but %d biases and %d factor rows",
			np, len(state.ProjectBias), len(state.ProjectFactors))
	}
	for _, rows := range [][][]float64{state.UserFactors, state.ProjectFactors} {
		for i, row := range rows {
			if len(row) != state.Config.Factors {
				return nil, fmt.Errorf("restore latent factor: row %d has %d factors, want %d",
					i, len(row), state.Config.Factors)
			}
		}
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	m.globalBias = state.GlobalBias
	m.userIDs = append([]int(nil), state.UserIDs...)
	m.projectIDs = append([]int(nil), state.ProjectIDs...)
	for i, id := range m.userIDs {
		m.userIndex[id] = i
	}
	for i, id := range m.projectIDs {
		m.projectIndex[id] = i
	}
	m.userBias = append([]float64(nil), state.UserBias...)
	m.projectBias = append([]float64(nil), state.ProjectBias...)
	m.userFactors = copyMatrix(state.UserFactors)
	m.projectFactors = copyMatrix(state.ProjectFactors)
	m.markRestored(state.Version, state.TrainedAt)
	return m, nil
}

func copyMatrix(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for i := range src {
		out[i] = append([]float64(nil), src[i]...)
	}
	return out
}
