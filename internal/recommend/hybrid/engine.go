// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package hybrid

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/fundmatch/internal/metrics"
	"github.com/tomtom215/fundmatch/internal/recommend"
	"github.com/tomtom215/fundmatch/internal/recommend/algorithms"
	"github.com/tomtom215/fundmatch/internal/recommend/storage"
)

// SnapshotStore persists trained snapshots.
// It is implemented by *storage.Store.
type SnapshotStore interface {
	Save(ctx context.Context, name string, version int, data interface{}, meta storage.ModelMetadata) error
	Load(ctx context.Context, name string, version int, target interface{}) (*storage.ModelMetadata, error)
	GetLatestVersion(name string) (int, bool)
	Prune(ctx context.Context, name string, keepVersions int) error
}

// Prediction is a single collaborative estimate.
type Prediction struct {
	UserID       int     `json:"user_id"`
	ProjectID    int     `json:"project_id"`
	Normalized   float64 `json:"normalized"`
	Score        float64 `json:"score"`
	KnownUser    bool    `json:"known_user"`
	KnownProject bool    `json:"known_project"`
}

// Engine trains the scoring components and serves recommendations from the
// most recent snapshot. It is safe for concurrent use.
type Engine struct {
	config *recommend.Config
	logger zerolog.Logger

	// trainMu serializes training runs; readers never take it.
	trainMu  sync.Mutex
	snapshot atomic.Pointer[Snapshot]

	statusMu sync.RWMutex
	status   recommend.TrainingStatus

	cache *expirable.LRU[string, *recommend.Response]

	providerMu   sync.RWMutex
	dataProvider recommend.DataProvider
	store        SnapshotStore

	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	errorCount    atomic.Int64
	trainingCount atomic.Int64
	fallbackCount atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *recommend.Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *recommend.Response](cfg.Cache.MaxEntries, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// SetDataProvider sets the source of training data.
func (e *Engine) SetDataProvider(dp recommend.DataProvider) {
	e.providerMu.Lock()
	defer e.providerMu.Unlock()
	e.dataProvider = dp
}

// SetStore enables snapshot persistence.
func (e *Engine) SetStore(store SnapshotStore) {
	e.providerMu.Lock()
	defer e.providerMu.Unlock()
	e.store = store
}

func (e *Engine) dependencies() (recommend.DataProvider, SnapshotStore) {
	e.providerMu.RLock()
	defer e.providerMu.RUnlock()
	return e.dataProvider, e.store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *recommend.Config {
	return e.config.Clone()
}

// Snapshot returns the snapshot currently being served, or nil.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// IsReady reports whether a trained snapshot is being served.
func (e *Engine) IsReady() bool {
	return e.snapshot.Load() != nil
}

// trainingData is the raw input of one training run.
type trainingData struct {
	interactions []recommend.Interaction
	projects     []recommend.Project
	users        []recommend.User
}

// Train loads the source data, trains every component and publishes a new
// snapshot. Returns recommend.ErrTrainingInProgress immediately if another
// run holds the training lock. On failure the previous snapshot keeps
// serving.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return recommend.ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	provider, store := e.dependencies()
	if provider == nil {
		return fmt.Errorf("data provider not set")
	}

	start := time.Now()
	e.setTraining(true)
	e.trainingCount.Add(1)
	e.logger.Info().Msg("starting model training")

	trainCtx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	snap, err := e.train(trainCtx, provider)
	duration := time.Since(start)
	if err != nil {
		e.finishTraining(nil, duration, err)
		metrics.RecordTraining(trainingOutcome(err), duration, 0, 0)
		e.logger.Error().Err(err).Dur("duration", duration).Msg("model training failed")
		return err
	}

	if store != nil {
		e.persist(ctx, store, snap, duration)
	}

	e.snapshot.Store(snap)
	e.purgeCache()
	e.finishTraining(snap, duration, nil)

	metrics.RecordTraining("success", duration, snap.Version, snap.InteractionCount)
	if snap.Evaluation != nil {
		metrics.RecordEvaluation(snap.Evaluation.RMSE, snap.Evaluation.MAE)
	}

	evt := e.logger.Info().
		Int("version", snap.Version).
		Int("interactions", snap.InteractionCount).
		Int("projects", snap.ProjectCount).
		Int("users", snap.UserCount).
		Float64("max_donation", snap.MaxDonation).
		Int64("duration_ms", duration.Milliseconds())
	if snap.Evaluation != nil {
		evt = evt.Float64("rmse", snap.Evaluation.RMSE).Float64("mae", snap.Evaluation.MAE)
	}
	evt.Msg("model training complete")

	return nil
}

// train builds a complete snapshot off to the side.
func (e *Engine) train(ctx context.Context, provider recommend.DataProvider) (*Snapshot, error) {
	data, err := e.loadTrainingData(ctx, provider)
	if err != nil {
		return nil, err
	}

	// Normalization fails before any SGD work.
	interactionStore, err := recommend.NewInteractionStore(data.interactions)
	if err != nil {
		return nil, fmt.Errorf("normalize interactions: %w", err)
	}

	trainRatings, testRatings := recommend.SplitRatings(
		interactionStore.Ratings(),
		e.config.Training.HoldoutFraction,
		e.config.Training.SplitSeed,
	)
	if len(trainRatings) == 0 {
		e.logger.Warn().
			Int("ratings", interactionStore.Len()).
			Msg("holdout split leaves no training ratings, training on all ratings without evaluation")
		trainRatings, testRatings = interactionStore.Ratings(), nil
	}

	lf, err := algorithms.NewLatentFactor(e.config.LatentFactor)
	if err != nil {
		return nil, err
	}
	if err := lf.Train(ctx, trainRatings); err != nil {
		return nil, fmt.Errorf("train latent factor model: %w", err)
	}

	content, knowledge, popularity, err := buildIndexes(ctx, data)
	if err != nil {
		return nil, err
	}

	var evaluation *recommend.Evaluation
	if len(testRatings) > 0 {
		eval, err := algorithms.Evaluate(ctx, lf, testRatings)
		if err != nil {
			return nil, fmt.Errorf("evaluate latent factor model: %w", err)
		}
		eval.TrainCount = len(trainRatings)
		evaluation = &eval
	}

	snap := &Snapshot{
		Version:          e.nextVersion(),
		TrainedAt:        time.Now(),
		LatentFactor:     lf,
		Content:          content,
		Knowledge:        knowledge,
		Popularity:       popularity,
		MaxDonation:      interactionStore.MaxDonation(),
		Evaluation:       evaluation,
		InteractionCount: interactionStore.Len(),
		ProjectCount:     len(data.projects),
		UserCount:        len(interactionStore.Users()),
	}
	snap.Ranker = NewRanker(lf, content, RankerConfig{
		Candidates:  interactionStore.Projects(),
		MaxDonation: snap.MaxDonation,
		Weights:     e.config.Weights,
		DefaultK:    e.config.Limits.DefaultK,
	})
	return snap, nil
}

// loadTrainingData fetches interactions, projects and users.
func (e *Engine) loadTrainingData(ctx context.Context, provider recommend.DataProvider) (*trainingData, error) {
	interactions, err := provider.GetInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	if len(interactions) < e.config.Training.MinInteractions || len(interactions) == 0 {
		return nil, fmt.Errorf("%w: %d interactions, need at least %d",
			recommend.ErrInsufficientData, len(interactions), max(e.config.Training.MinInteractions, 1))
	}

	projects, err := provider.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	users, err := provider.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	e.logger.Info().
		Int("interactions", len(interactions)).
		Int("projects", len(projects)).
		Int("users", len(users)).
		Msg("loaded training data")

	return &trainingData{interactions: interactions, projects: projects, users: users}, nil
}

// buildIndexes builds the content index, knowledge filter and popularity
// ranker from raw data.
func buildIndexes(ctx context.Context, data *trainingData) (*algorithms.ContentIndex, *algorithms.KnowledgeFilter, *algorithms.Popularity, error) {
	content := algorithms.NewContentIndex()
	if err := content.Build(ctx, data.projects, data.interactions); err != nil {
		return nil, nil, nil, fmt.Errorf("build content index: %w", err)
	}

	knowledge := algorithms.NewKnowledgeFilter()
	if err := knowledge.Build(ctx, data.users, data.projects); err != nil {
		return nil, nil, nil, fmt.Errorf("build knowledge filter: %w", err)
	}

	popularity := algorithms.NewPopularity()
	if err := popularity.Train(ctx, data.interactions); err != nil {
		return nil, nil, nil, fmt.Errorf("build popularity ranking: %w", err)
	}

	return content, knowledge, popularity, nil
}

// nextVersion returns a version above both the served and the stored snapshot.
func (e *Engine) nextVersion() int {
	version := 0
	if snap := e.snapshot.Load(); snap != nil {
		version = snap.Version
	}
	if _, store := e.dependencies(); store != nil {
		if stored, ok := store.GetLatestVersion(snapshotName); ok && stored > version {
			version = stored
		}
	}
	return version + 1
}

// persist saves the snapshot and prunes old versions. Failures are logged
// and never fail the training run.
func (e *Engine) persist(ctx context.Context, store SnapshotStore, snap *Snapshot, duration time.Duration) {
	meta := storage.ModelMetadata{
		TrainedAt:          snap.TrainedAt,
		InteractionCount:   snap.InteractionCount,
		ProjectCount:       snap.ProjectCount,
		UserCount:          snap.UserCount,
		TrainingDurationMS: duration.Milliseconds(),
	}

	err := store.Save(ctx, snapshotName, snap.Version, snap.state(), meta)
	metrics.RecordModelStore("save", err)
	if err != nil {
		e.logger.Warn().Err(err).Int("version", snap.Version).Msg("failed to persist model snapshot")
		return
	}

	err = store.Prune(ctx, snapshotName, e.config.Training.RetainVersions)
	metrics.RecordModelStore("prune", err)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to prune model snapshots")
	}
}

// Restore loads the latest stored snapshot so requests can be served before
// the first training run. Content, knowledge and popularity indexes are
// rebuilt from the data provider. It returns false when nothing was
// restored: no store, no stored snapshot, or a snapshot already serving.
func (e *Engine) Restore(ctx context.Context) (bool, error) {
	provider, store := e.dependencies()
	if store == nil {
		return false, nil
	}
	if _, ok := store.GetLatestVersion(snapshotName); !ok {
		return false, nil
	}
	if provider == nil {
		return false, fmt.Errorf("data provider not set")
	}

	var state SnapshotState
	meta, err := store.Load(ctx, snapshotName, 0, &state)
	metrics.RecordModelStore("load", err)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	metrics.SetModelStoreSize(meta.SizeBytes)

	lf, err := algorithms.RestoreLatentFactor(&state.LatentFactor)
	if err != nil {
		return false, err
	}

	data, err := e.loadTrainingData(ctx, provider)
	if err != nil {
		return false, err
	}
	content, knowledge, popularity, err := buildIndexes(ctx, data)
	if err != nil {
		return false, err
	}

	snap := &Snapshot{
		Version:          state.Version,
		TrainedAt:        state.TrainedAt,
		LatentFactor:     lf,
		Content:          content,
		Knowledge:        knowledge,
		Popularity:       popularity,
		MaxDonation:      state.MaxDonation,
		Evaluation:       state.Evaluation,
		InteractionCount: state.InteractionCount,
		ProjectCount:     state.ProjectCount,
		UserCount:        state.UserCount,
		Restored:         true,
	}
	snap.Ranker = NewRanker(lf, content, RankerConfig{
		Candidates:  state.Candidates,
		MaxDonation: state.MaxDonation,
		Weights:     e.config.Weights,
		DefaultK:    e.config.Limits.DefaultK,
	})

	if !e.snapshot.CompareAndSwap(nil, snap) {
		return false, nil
	}
	e.purgeCache()
	e.finishTraining(snap, time.Duration(meta.TrainingDurationMS)*time.Millisecond, nil)
	metrics.RecordTraining("restored", 0, snap.Version, snap.InteractionCount)

	e.logger.Info().
		Int("version", snap.Version).
		Time("trained_at", snap.TrainedAt).
		Msg("restored model snapshot")
	return true, nil
}

// Recommend returns the hybrid ranking for a user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("hybrid", "not_ready", time.Since(start))
		return nil, recommend.ErrModelNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req = e.prepareRequest(req)
	logger := e.logger.With().Str("request_id", req.RequestID).Int("user_id", req.UserID).Logger()

	key := fmt.Sprintf("hybrid:%d:%d:%d", snap.Version, req.UserID, req.K)
	if resp := e.cachedResponse(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		metrics.RecordRecommendation("hybrid", "success", time.Since(start))
		return resp, nil
	}

	items, err := snap.Ranker.Recommend(req.UserID, req.K)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("hybrid", "error", time.Since(start))
		return nil, err
	}

	resp := &recommend.Response{
		Items:           items,
		TotalCandidates: len(snap.Ranker.config.Candidates),
		Metadata:        e.metadata(req, snap, recommend.SourceHybrid, start),
	}
	e.storeResponse(key, resp)

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(items)).
		Msg("recommendation complete")
	metrics.RecordRecommendation("hybrid", "success", time.Since(start))
	return resp, nil
}

// RecommendByInterest returns the catalog projects matching the user's
// declared interest.
func (e *Engine) RecommendByInterest(ctx context.Context, userID int) ([]recommend.Project, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("interest", "not_ready", time.Since(start))
		return nil, recommend.ErrModelNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projects, err := snap.Knowledge.RecommendProjects(userID)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("interest", outcomeLabel(err), time.Since(start))
		return nil, err
	}
	metrics.RecordRecommendation("interest", "success", time.Since(start))
	return projects, nil
}

// RecommendOrFallback serves the hybrid ranking when the user has history,
// the declared-interest matches when the user is registered and has a
// match, and the popularity ranking otherwise.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendOrFallback(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		e.requestCount.Add(1)
		e.errorCount.Add(1)
		metrics.RecordRecommendation("fallback", "not_ready", 0)
		return nil, recommend.ErrModelNotReady
	}

	if snap.Content.HasHistory(req.UserID) {
		return e.Recommend(ctx, req)
	}

	start := time.Now()
	e.requestCount.Add(1)
	e.fallbackCount.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req = e.prepareRequest(req)

	projects, err := snap.Knowledge.RecommendProjects(req.UserID)
	if err != nil && !errors.Is(err, recommend.ErrNotFound) {
		e.errorCount.Add(1)
		return nil, err
	}
	if len(projects) > 0 {
		items := make([]recommend.ScoredProject, 0, min(len(projects), req.K))
		for i := range projects {
			if len(items) == req.K {
				break
			}
			items = append(items, recommend.ScoredProject{
				ProjectID: projects[i].ID,
				Category:  projects[i].Category,
			})
		}
		metrics.RecordFallback(string(recommend.SourceKnowledge))
		metrics.RecordRecommendation("fallback", "success", time.Since(start))
		return &recommend.Response{
			Items:           items,
			TotalCandidates: len(projects),
			Metadata:        e.metadata(req, snap, recommend.SourceKnowledge, start),
		}, nil
	}

	resp := e.popularResponse(req, snap, start)
	metrics.RecordFallback(string(recommend.SourcePopularity))
	metrics.RecordRecommendation("fallback", "success", time.Since(start))
	return resp, nil
}

// Popular returns the k projects with the highest donation volume.
func (e *Engine) Popular(ctx context.Context, k int) (*recommend.Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("popular", "not_ready", time.Since(start))
		return nil, recommend.ErrModelNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := e.prepareRequest(recommend.Request{K: k})
	resp := e.popularResponse(req, snap, start)
	metrics.RecordRecommendation("popular", "success", time.Since(start))
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) popularResponse(req recommend.Request, snap *Snapshot, start time.Time) *recommend.Response {
	items := snap.Popularity.Top(req.K)
	if items == nil {
		items = []recommend.ScoredProject{}
	}
	for i := range items {
		items[i].Category, _ = snap.Content.Category(items[i].ProjectID)
	}
	return &recommend.Response{
		Items:           items,
		TotalCandidates: snap.Popularity.Len(),
		Metadata:        e.metadata(req, snap, recommend.SourcePopularity, start),
	}
}

// Predict returns the raw collaborative estimate for one pair.
func (e *Engine) Predict(ctx context.Context, userID, projectID int) (*Prediction, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("predict", "not_ready", time.Since(start))
		return nil, recommend.ErrModelNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := snap.LatentFactor.PredictChecked(userID, projectID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	metrics.RecordRecommendation("predict", "success", time.Since(start))
	return &Prediction{
		UserID:       userID,
		ProjectID:    projectID,
		Normalized:   normalized,
		Score:        normalized * snap.MaxDonation,
		KnownUser:    snap.LatentFactor.KnowsUser(userID),
		KnownProject: snap.LatentFactor.KnowsProject(projectID),
	}, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req recommend.Request) recommend.Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	req.K = e.config.ClampK(req.K)
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) metadata(req recommend.Request, snap *Snapshot, source recommend.Source, start time.Time) recommend.ResponseMetadata {
	return recommend.ResponseMetadata{
		RequestID:    req.RequestID,
		UserID:       req.UserID,
		Source:       source,
		LatencyMS:    time.Since(start).Milliseconds(),
		ModelVersion: snap.Version,
		TrainedAt:    snap.TrainedAt,
		Timestamp:    time.Now(),
	}
}

// cachedResponse returns a copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cachedResponse(key string, req recommend.Request, start time.Time) *recommend.Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheAccess(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := &recommend.Response{
		Items:           append([]recommend.ScoredProject(nil), cached.Items...),
		TotalCandidates: cached.TotalCandidates,
		Metadata:        cached.Metadata,
	}
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return resp
}

func (e *Engine) storeResponse(key string, resp *recommend.Response) {
	if e.cache == nil {
		return
	}
	stored := *resp
	stored.Items = append([]recommend.ScoredProject(nil), resp.Items...)
	e.cache.Add(key, &stored)
	metrics.UpdateCacheSize(e.cache.Len())
}

func (e *Engine) purgeCache() {
	if e.cache == nil {
		return
	}
	e.cache.Purge()
	metrics.UpdateCacheSize(0)
	e.logger.Debug().Msg("cache cleared")
}

func (e *Engine) setTraining(training bool) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.status.IsTraining = training
	if training {
		e.status.LastError = ""
	}
}

// finishTraining records the outcome of a run. snap is nil on failure.
func (e *Engine) finishTraining(snap *Snapshot, duration time.Duration, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.IsTraining = false
	e.status.LastTrainingDurationMS = duration.Milliseconds()
	if err != nil {
		e.status.LastError = err.Error()
		return
	}

	e.status.Ready = true
	e.status.LastError = ""
	e.status.LastTrainedAt = snap.TrainedAt
	e.status.InteractionCount = snap.InteractionCount
	e.status.ProjectCount = snap.ProjectCount
	e.status.UserCount = snap.UserCount
	e.status.MaxDonation = snap.MaxDonation
	e.status.ModelVersion = snap.Version
	e.status.Evaluation = snap.Evaluation
	e.status.Restored = snap.Restored
}

// Status returns the current training status.
func (e *Engine) Status() recommend.TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	status := e.status
	if status.Evaluation != nil {
		eval := *status.Evaluation
		status.Evaluation = &eval
	}
	return status
}

// Metrics returns the current engine counters.
func (e *Engine) Metrics() recommend.Metrics {
	return recommend.Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		ErrorCount:    e.errorCount.Load(),
		TrainingCount: e.trainingCount.Load(),
		FallbackCount: e.fallbackCount.Load(),
	}
}

// trainingOutcome maps a training error to a metrics label.
func trainingOutcome(err error) string {
	switch {
	case errors.Is(err, recommend.ErrInvalidNormalization):
		return "invalid_normalization"
	case errors.Is(err, recommend.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, recommend.ErrTrainingDiverged):
		return "diverged"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// outcomeLabel maps a serving error to a metrics label.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return "not_found"
	case errors.Is(err, recommend.ErrModelNotReady):
		return "not_ready"
	default:
		return "error"
	}
}
