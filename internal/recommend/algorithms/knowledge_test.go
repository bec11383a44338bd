// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

func TestKnowledgeFilter_Recommend(t *testing.T) {
	t.Parallel()

	k := NewKnowledgeFilter()
	users := []recommend.User{
		{ID: 1, Interests: "Education"},
		{ID: 2, Interests: "Arts"},
		{ID: 3, Interests: "Health"},
		{ID: 1, Interests: "Health"},
	}
	if err := k.Build(context.Background(), users, testCatalog()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name   string
		userID int
		want   []int
	}{
		{"first user record wins", 1, []int{1, 3}},
		{"single match", 3, []int{2}},
		{"no match is empty", 2, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Recommend(tt.userID)
			if err != nil {
				t.Fatalf("Recommend(%d) error = %v", tt.userID, err)
			}
			if got == nil {
				t.Fatal("Recommend() returned nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}

	t.Run("every match has the declared category", func(t *testing.T) {
		projects, err := k.RecommendProjects(1)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range projects {
			if p.Category != "Education" {
				t.Errorf("project %d has category %q", p.ID, p.Category)
			}
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := k.Recommend(404)
		if !errors.Is(err, recommend.ErrNotFound) {
			t.Fatalf("Recommend(404) error = %v, want ErrNotFound", err)
		}
		var nf *recommend.NotFoundError
		if !errors.As(err, &nf) || nf.ID != 404 || nf.Kind != "user" {
			t.Errorf("NotFoundError = %+v", nf)
		}
	})

	t.Run("interest lookup", func(t *testing.T) {
		if got, ok := k.Interest(1); !ok || got != "Education" {
			t.Errorf("Interest(1) = %q, %v", got, ok)
		}
		if k.NumUsers() != 3 {
			t.Errorf("NumUsers() = %d, want 3", k.NumUsers())
		}
	})
}

func TestKnowledgeFilter_NotBuilt(t *testing.T) {
	t.Parallel()

	k := NewKnowledgeFilter()
	if _, err := k.Recommend(1); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Recommend() before Build error = %v, want ErrModelNotReady", err)
	}
}
