// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNormalization is returned when donation amounts cannot be
	// normalized, e.g. the maximum donation is zero.
	ErrInvalidNormalization = errors.New("invalid normalization")

	// ErrModelNotReady is returned when recommendations are requested before
	// the collaborative model is trained and the content index is built.
	ErrModelNotReady = errors.New("models have not been trained")

	// ErrNotFound is returned for unknown users or projects.
	ErrNotFound = errors.New("not found")

	// ErrTrainingInProgress is returned when a training run is already active.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrInsufficientData is returned when there is too little data to train.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrTrainingDiverged is returned when SGD produced non-finite
	// parameters, usually from a learning rate that is too high.
	ErrTrainingDiverged = errors.New("training diverged")
)

// NotFoundError reports which entity was missing.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	// Kind is the entity kind, e.g. "user" or "project".
	Kind string

	// ID is the identifier that was looked up.
	ID int
}

// NewNotFoundError returns a *NotFoundError for the given kind and id.
func NewNotFoundError(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
