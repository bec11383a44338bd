// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key layout: model/{name}/{version as 10 zero-padded digits}.
// Zero padding makes badger's lexicographic key order match version order.
const keyPrefix = "model/"

// ErrModelNotFound is returned when no stored model matches a lookup.
var ErrModelNotFound = errors.New("model not found")

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Name is the snapshot name (e.g., "hybrid").
	Name string `json:"name"`

	// Version is the model version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the model was saved.
	SavedAt time.Time `json:"saved_at"`

	// InteractionCount is the number of interactions used for training.
	InteractionCount int `json:"interaction_count"`

	// ProjectCount is the number of unique projects.
	ProjectCount int `json:"project_count"`

	// UserCount is the number of unique users.
	UserCount int `json:"user_count"`

	// Checksum is the SHA-256 checksum of the model data.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// storedFile is the value format of a model key.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Store manages model persistence in a BadgerDB database.
type Store struct {
	db *badger.DB
	mu sync.RWMutex

	// Keep track of latest version per model name
	versions map[string]int
}

// NewStore opens (or creates) a model store at the given directory.
func NewStore(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}

	s := &Store{
		db:       db,
		versions: make(map[string]int),
	}

	if err := s.scanModels(); err != nil {
		_ = db.Close() //nolint:errcheck // already returning the scan error
		return nil, fmt.Errorf("scan existing models: %w", err)
	}

	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanModels records the latest stored version of every model name.
func (s *Store) scanModels() error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			name, version, ok := parseModelKey(string(it.Item().Key()))
			if !ok {
				continue
			}
			if current, seen := s.versions[name]; !seen || version > current {
				s.versions[name] = version
			}
		}
		return nil
	})
}

func modelKey(name string, version int) []byte {
	return []byte(fmt.Sprintf("%s%s/%010d", keyPrefix, name, version))
}

func namePrefix(name string) []byte {
	return []byte(keyPrefix + name + "/")
}

// parseModelKey extracts name and version from "model/{name}/{version}".
func parseModelKey(key string) (name string, version int, ok bool) {
	rest := strings.TrimPrefix(key, keyPrefix)
	idx := strings.LastIndexByte(rest, '/')
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:idx], version, true
}

// Save stores a model with the given name and data.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta ModelMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid model name %q", name)
	}
	if version < 1 {
		return fmt.Errorf("model version must be positive, got %d", version)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Name = name
	meta.Version = version

	var value bytes.Buffer
	if err := gob.NewEncoder(&value).Encode(storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}); err != nil {
		return fmt.Errorf("encode stored model: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(modelKey(name, version), value.Bytes()))
	})
	if err != nil {
		return fmt.Errorf("write model: %w", err)
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}
	return nil
}

// Load loads a model by name and version into target.
// If version is 0, loads the latest version.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
	}

	sf, err := s.readStored(name, version)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return &sf.Metadata, nil
}

// readStored fetches and decodes the value of one model key.
// Caller must hold s.mu.
func (s *Store) readStored(name string, version int) (*storedFile, error) {
	var sf storedFile
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(modelKey(name, version))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&sf)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return &sf, nil
}

// GetLatestVersion returns the latest version number for a model.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// ListModels returns metadata for the latest version of every stored model.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var models []ModelMetadata
	for name, version := range s.versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := s.readStored(name, version)
		if err != nil {
			continue
		}
		models = append(models, sf.Metadata)
	}

	return models, nil
}

// Versions returns every stored version of a model in ascending order.
func (s *Store) Versions(ctx context.Context, name string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listVersions(ctx, name)
}

// listVersions walks the keys of one model name. Caller must hold s.mu.
func (s *Store) listVersions(ctx context.Context, name string) ([]int, error) {
	var versions []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := namePrefix(name)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keyName, v, ok := parseModelKey(string(it.Item().Key()))
			if ok && keyName == name {
				versions = append(versions, v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// Delete removes a specific model version.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		key := modelKey(name, version)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}

	if s.versions[name] != version {
		return nil
	}

	remaining, err := s.listVersions(ctx, name)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		delete(s.versions, name)
		return nil
	}
	s.versions[name] = remaining[len(remaining)-1]
	return nil
}

// Prune removes old model versions, keeping only the latest N versions.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}

	versions, err := s.listVersions(ctx, name)
	if err != nil {
		return err
	}
	if len(versions) <= keepVersions {
		return nil
	}

	stale := versions[:len(versions)-keepVersions]
	return s.db.Update(func(txn *badger.Txn) error {
		for _, v := range stale {
			if err := txn.Delete(modelKey(name, v)); err != nil {
				return fmt.Errorf("prune %s v%d: %w", name, v, err)
			}
		}
		return nil
	})
}
