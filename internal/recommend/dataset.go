// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import (
	"fmt"
	"math"
	"math/rand"
)

// InteractionStore holds the normalized interaction set of one training run.
// It is read-only after construction and safe for concurrent use.
type InteractionStore struct {
	ratings     []Rating
	maxDonation float64

	// users and projects are in first-seen order.
	users    []int
	projects []int
}

// MaxDonation returns the largest donation amount in interactions.
// It fails with ErrInvalidNormalization when the set is empty, any amount is
// negative or not finite, or the maximum is zero.
func MaxDonation(interactions []Interaction) (float64, error) {
	if len(interactions) == 0 {
		return 0, fmt.Errorf("%w: no interactions", ErrInvalidNormalization)
	}

	maxAmount := 0.0
	for i := range interactions {
		amount := interactions[i].DonationAmount
		if !isFinite(amount) {
			return 0, fmt.Errorf("%w: interaction %d has non-finite donation amount", ErrInvalidNormalization, i)
		}
		if amount < 0 {
			return 0, fmt.Errorf("%w: interaction %d has negative donation amount %f", ErrInvalidNormalization, i, amount)
		}
		if amount > maxAmount {
			maxAmount = amount
		}
	}

	if maxAmount == 0 {
		return 0, fmt.Errorf("%w: maximum donation amount is zero", ErrInvalidNormalization)
	}
	return maxAmount, nil
}

// Normalize divides every donation amount by the maximum donation.
// The returned ratings keep the source order and all lie in [0, 1].
func Normalize(interactions []Interaction) ([]Rating, float64, error) {
	maxAmount, err := MaxDonation(interactions)
	if err != nil {
		return nil, 0, err
	}

	ratings := make([]Rating, len(interactions))
	for i := range interactions {
		ratings[i] = Rating{
			UserID:    interactions[i].UserID,
			ProjectID: interactions[i].ProjectID,
			Value:     interactions[i].DonationAmount / maxAmount,
		}
	}
	return ratings, maxAmount, nil
}

// NewInteractionStore normalizes interactions and records the distinct users
// and projects in first-seen order.
func NewInteractionStore(interactions []Interaction) (*InteractionStore, error) {
	ratings, maxAmount, err := Normalize(interactions)
	if err != nil {
		return nil, err
	}

	s := &InteractionStore{ratings: ratings, maxDonation: maxAmount}
	seenUsers := make(map[int]struct{})
	seenProjects := make(map[int]struct{})
	for i := range ratings {
		r := ratings[i]
		if _, ok := seenUsers[r.UserID]; !ok {
			seenUsers[r.UserID] = struct{}{}
			s.users = append(s.users, r.UserID)
		}
		if _, ok := seenProjects[r.ProjectID]; !ok {
			seenProjects[r.ProjectID] = struct{}{}
			s.projects = append(s.projects, r.ProjectID)
		}
	}

	return s, nil
}

// MaxDonation returns the normalization scalar.
func (s *InteractionStore) MaxDonation() float64 {
	return s.maxDonation
}

// Len returns the number of interactions.
func (s *InteractionStore) Len() int {
	return len(s.ratings)
}

// Ratings returns the normalized ratings in source order.
// Callers must not modify the returned slice.
func (s *InteractionStore) Ratings() []Rating {
	return s.ratings
}

// Users returns the distinct user IDs in first-seen order.
func (s *InteractionStore) Users() []int {
	return append([]int(nil), s.users...)
}

// Projects returns the distinct project IDs in first-seen order.
// This is the candidate set of the hybrid ranking.
func (s *InteractionStore) Projects() []int {
	return append([]int(nil), s.projects...)
}

// SplitRatings partitions ratings into a training and a test part.
//
// ceil(fraction*len) ratings chosen by a seeded shuffle go to the test part;
// both parts keep the source order. A fraction <= 0 returns all ratings for
// training.
func SplitRatings(ratings []Rating, fraction float64, seed int64) (train, test []Rating) {
	if fraction <= 0 || len(ratings) == 0 {
		return append([]Rating(nil), ratings...), nil
	}

	nTest := int(math.Ceil(fraction * float64(len(ratings))))
	if nTest > len(ratings) {
		nTest = len(ratings)
	}

	//nolint:gosec // G404: math/rand is acceptable for dataset splitting (not security)
	rng := rand.New(rand.NewSource(seed))
	inTest := make([]bool, len(ratings))
	for _, idx := range rng.Perm(len(ratings))[:nTest] {
		inTest[idx] = true
	}

	train = make([]Rating, 0, len(ratings)-nTest)
	test = make([]Rating, 0, nTest)
	for i := range ratings {
		if inTest[i] {
			test = append(test, ratings[i])
		} else {
			train = append(train, ratings[i])
		}
	}
	return train, test
}
