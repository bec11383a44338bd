// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import "context"

// DataProvider defines the interface for fetching training data.
// This is typically implemented by the database layer.
type DataProvider interface {
	// GetInteractions returns all user-project interactions in source order.
	GetInteractions(ctx context.Context) ([]Interaction, error)

	// GetProjects returns the project catalog in source order.
	GetProjects(ctx context.Context) ([]Project, error)

	// GetUsers returns the registered users in source order.
	GetUsers(ctx context.Context) ([]User, error)
}

// MemoryProvider serves fixed in-memory slices.
// Returned slices are copies.
type MemoryProvider struct {
	Interactions []Interaction
	Projects     []Project
	Users        []User
}

// GetInteractions implements DataProvider.
func (p *MemoryProvider) GetInteractions(ctx context.Context) ([]Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Interaction(nil), p.Interactions...), nil
}

// GetProjects implements DataProvider.
func (p *MemoryProvider) GetProjects(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Project(nil), p.Projects...), nil
}

// GetUsers implements DataProvider.
func (p *MemoryProvider) GetUsers(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]User(nil), p.Users...), nil
}
