// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package hybrid

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/fundmatch/internal/recommend"
	"github.com/tomtom215/fundmatch/internal/recommend/algorithms"
)

type pair struct{ user, project int }

// stubPredictor returns fixed normalized predictions and counts calls.
type stubPredictor struct {
	trained bool
	scores  map[pair]float64
	calls   int
}

func (s *stubPredictor) Predict(userID, projectID int) float64 {
	s.calls++
	return s.scores[pair{userID, projectID}]
}

func (s *stubPredictor) IsTrained() bool { return s.trained }

// stubContent returns fixed overlap counts.
type stubContent struct {
	trained    bool
	scores     map[pair]int
	categories map[int]string
	calls      int
}

func (s *stubContent) Score(userID, projectID int) int {
	s.calls++
	return s.scores[pair{userID, projectID}]
}

func (s *stubContent) Category(projectID int) (string, bool) {
	c, ok := s.categories[projectID]
	return c, ok
}

func (s *stubContent) IsTrained() bool { return s.trained }

func projectIDs(items []recommend.ScoredProject) []int {
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ProjectID
	}
	return ids
}

func TestRanker_NotReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cf      *stubPredictor
		content *stubContent
	}{
		{name: "neither trained", cf: &stubPredictor{}, content: &stubContent{}},
		{name: "cf untrained", cf: &stubPredictor{}, content: &stubContent{trained: true}},
		{name: "content unbuilt", cf: &stubPredictor{trained: true}, content: &stubContent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRanker(tt.cf, tt.content, RankerConfig{Candidates: []int{1, 2}, MaxDonation: 100, DefaultK: 10})
			if r.Ready() {
				t.Fatal("Ready() = true, want false")
			}
			_, err := r.Recommend(1, 5)
			if !errors.Is(err, recommend.ErrModelNotReady) {
				t.Fatalf("Recommend() error = %v, want ErrModelNotReady", err)
			}
			if tt.cf.calls != 0 || tt.content.calls != 0 {
				t.Errorf("scorers called before readiness check: cf=%d content=%d", tt.cf.calls, tt.content.calls)
			}
		})
	}
}

func TestRanker_NilScorers(t *testing.T) {
	t.Parallel()

	r := NewRanker(nil, nil, RankerConfig{DefaultK: 10})
	if _, err := r.Recommend(1, 1); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Recommend() error = %v, want ErrModelNotReady", err)
	}
}

func TestRanker_Recommend(t *testing.T) {
	t.Parallel()

	cf := &stubPredictor{trained: true, scores: map[pair]float64{
		{1, 10}: 0.10,
		{1, 20}: 0.50,
		{1, 30}: 0.20,
		{1, 40}: 0.20,
	}}
	content := &stubContent{
		trained: true,
		scores:  map[pair]int{{1, 30}: 2, {1, 40}: 2},
		categories: map[int]string{
			10: "Health",
			20: "Education",
			30: "Water",
			40: "Water",
		},
	}
	cfg := RankerConfig{
		Candidates:  []int{10, 20, 30, 40, 50},
		MaxDonation: 100,
		Weights:     recommend.FusionWeights{CF: 1, Content: 1},
		DefaultK:    3,
	}
	r := NewRanker(cf, content, cfg)

	t.Run("sum of scores in descending order", func(t *testing.T) {
		items, err := r.Recommend(1, 10)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		// 20: 50, 30: 22, 40: 22, 10: 10, 50: 0
		want := []int{20, 30, 40, 10, 50}
		if got := projectIDs(items); !reflect.DeepEqual(got, want) {
			t.Fatalf("order = %v, want %v", got, want)
		}
		if items[1].Score != 22 || items[1].CFScore != 20 || items[1].ContentScore != 2 {
			t.Errorf("item 30 = %+v", items[1])
		}
		if items[0].Category != "Education" {
			t.Errorf("item 20 category = %q", items[0].Category)
		}
		if items[4].Category != "" {
			t.Errorf("uncatalogued project category = %q, want empty", items[4].Category)
		}
		for i := 1; i < len(items); i++ {
			if items[i].Score > items[i-1].Score {
				t.Errorf("scores increase at %d: %v > %v", i, items[i].Score, items[i-1].Score)
			}
		}
	})

	t.Run("truncates to k", func(t *testing.T) {
		items, err := r.Recommend(1, 2)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got := projectIDs(items); !reflect.DeepEqual(got, []int{20, 30}) {
			t.Errorf("top 2 = %v", got)
		}
	})

	t.Run("non-positive k uses default", func(t *testing.T) {
		for _, k := range []int{0, -4} {
			items, err := r.Recommend(1, k)
			if err != nil {
				t.Fatalf("Recommend(k=%d) error = %v", k, err)
			}
			if len(items) != cfg.DefaultK {
				t.Errorf("Recommend(k=%d) returned %d items, want %d", k, len(items), cfg.DefaultK)
			}
		}
	})

	t.Run("unknown user ties keep discovery order", func(t *testing.T) {
		items, err := r.Recommend(99, 10)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got := projectIDs(items); !reflect.DeepEqual(got, cfg.Candidates) {
			t.Errorf("order = %v, want %v", got, cfg.Candidates)
		}
	})
}

func TestRanker_Weights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights recommend.FusionWeights
		want    []int
	}{
		{name: "collaborative dominates", weights: recommend.FusionWeights{CF: 1, Content: 1}, want: []int{1, 2}},
		{name: "content only", weights: recommend.FusionWeights{CF: 0, Content: 1}, want: []int{2, 1}},
		{name: "content boosted", weights: recommend.FusionWeights{CF: 0.01, Content: 1}, want: []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cf := &stubPredictor{trained: true, scores: map[pair]float64{{1, 1}: 0.9}}
			content := &stubContent{trained: true, scores: map[pair]int{{1, 2}: 3}}
			r := NewRanker(cf, content, RankerConfig{
				Candidates:  []int{1, 2},
				MaxDonation: 10,
				Weights:     tt.weights,
				DefaultK:    10,
			})
			items, err := r.Recommend(1, 2)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got := projectIDs(items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRanker_CandidatesCopied(t *testing.T) {
	t.Parallel()

	candidates := []int{1, 2, 3}
	r := NewRanker(&stubPredictor{trained: true}, &stubContent{trained: true}, RankerConfig{Candidates: candidates, DefaultK: 10})
	candidates[0] = 99

	got := r.Candidates()
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Candidates() = %v", got)
	}
	got[1] = 99
	if r.Candidates()[1] != 2 {
		t.Error("Candidates() exposes internal slice")
	}
}

func TestRanker_NegativeCollaborativeScore(t *testing.T) {
	t.Parallel()

	cf := &stubPredictor{trained: true, scores: map[pair]float64{
		{1, 10}: 0.30,
		{1, 20}: -0.25,
		{1, 30}: -0.05,
	}}
	content := &stubContent{trained: true, scores: map[pair]int{{1, 30}: 1}}
	r := NewRanker(cf, content, RankerConfig{
		Candidates:  []int{10, 20, 30},
		MaxDonation: 200,
		Weights:     recommend.FusionWeights{CF: 1, Content: 1},
		DefaultK:    10,
	})

	items, err := r.Recommend(1, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// 10: 60, 30: -10 + 1, 20: -50
	if got := projectIDs(items); !reflect.DeepEqual(got, []int{10, 30, 20}) {
		t.Fatalf("order = %v, want [10 30 20]", got)
	}
	if items[2].CFScore != -50 || items[2].Score != -50 {
		t.Errorf("item 20 = %+v, want CFScore and Score -50", items[2])
	}
	if items[1].CFScore != -10 || items[1].Score != -9 {
		t.Errorf("item 30 = %+v, want CFScore -10 and Score -9", items[1])
	}
}

func TestRanker_UnclippedLatentFactorNegative(t *testing.T) {
	t.Parallel()

	ratings := []recommend.Rating{
		{UserID: 1, ProjectID: 1, Value: 0.5},
		{UserID: 1, ProjectID: 2, Value: 0.25},
		{UserID: 2, ProjectID: 1, Value: 1.0},
	}

	var (
		lf               *algorithms.LatentFactor
		negUser, negProj int
	)
	for seed := int64(1); seed <= 50 && lf == nil; seed++ {
		cfg := recommend.DefaultLatentFactorConfig()
		cfg.Factors = 10
		cfg.Epochs = 0
		cfg.InitStdDev = 5
		cfg.Clip = false
		cfg.Seed = seed
		m, err := algorithms.NewLatentFactor(cfg)
		if err != nil {
			t.Fatalf("NewLatentFactor() error = %v", err)
		}
		if err := m.Train(context.Background(), ratings); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		for _, u := range []int{1, 2} {
			for _, p := range []int{1, 2} {
				if lf == nil && m.Predict(u, p) < 0 {
					lf, negUser, negProj = m, u, p
				}
			}
		}
	}
	if lf == nil {
		t.Fatal("no seed produced a negative prediction")
	}

	r := NewRanker(lf, &stubContent{trained: true}, RankerConfig{
		Candidates:  []int{1, 2},
		MaxDonation: 200,
		Weights:     recommend.FusionWeights{CF: 1, Content: 1},
		DefaultK:    10,
	})
	items, err := r.Recommend(negUser, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Recommend() returned %d items, want both candidates", len(items))
	}

	want := lf.Predict(negUser, negProj) * 200
	found := false
	for i := range items {
		if items[i].ProjectID == negProj {
			found = true
			if items[i].CFScore != want || items[i].CFScore >= 0 {
				t.Errorf("project %d CFScore = %v, want %v", negProj, items[i].CFScore, want)
			}
		}
		if i > 0 && items[i].Score > items[i-1].Score {
			t.Errorf("scores increase at %d: %v > %v", i, items[i].Score, items[i-1].Score)
		}
	}
	if !found {
		t.Errorf("project %d with a negative score missing from %v", negProj, projectIDs(items))
	}
}
