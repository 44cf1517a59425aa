package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"cg-backend/internal/domain"
	"cg-backend/pkg/logger"
)

// LocalStore is the file-backed fallback: a single JSON array on disk,
// newest record first, durable across restarts. It has no quarter
// partitioning; Clear always removes everything.
//
// The whole file is read, modified and rewritten on every append under
// one process-wide mutex. Concurrent writers from other processes can
// still lose updates; that limitation is accepted at this scale.
type LocalStore struct {
	path string
	log  *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewLocalStore creates a file-backed store at the given path
func NewLocalStore(path string, log *logger.Logger) *LocalStore {
	return &LocalStore{
		path: path,
		log:  log,
		now:  time.Now,
	}
}

// Name identifies the backend in API responses
func (s *LocalStore) Name() string { return domain.SourceLocalStorage }

// IsConfigured always holds for the local variant
func (s *LocalStore) IsConfigured() bool { return true }

// Append commits a record, assigning its id and timestamp
func (s *LocalStore) Append(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return domain.ActivityRecord{}, err
	}

	rec.ID = uuid.NewString()
	rec.Timestamp = s.now().UTC().Format(time.RFC3339)

	// newest first
	records = append([]domain.ActivityRecord{rec}, records...)

	if err := s.save(records); err != nil {
		return domain.ActivityRecord{}, err
	}

	s.log.WithFields(map[string]interface{}{
		"id":    rec.ID,
		"event": rec.EventName,
	}).Debug("Activity written to local store")

	return rec, nil
}

// List returns up to limit records, newest first. The quarter argument
// is ignored, the local variant is unpartitioned.
func (s *LocalStore) List(ctx context.Context, limit int, quarter string) ([]domain.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Clear removes all records regardless of quarter
func (s *LocalStore) Clear(ctx context.Context, quarter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear local store: %w", err)
	}
	return nil
}

// ListPartitions returns nothing, the local variant is unpartitioned
func (s *LocalStore) ListPartitions(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *LocalStore) load() ([]domain.ActivityRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.ActivityRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}

	var records []domain.ActivityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode local store: %w", err)
	}
	return records, nil
}

func (s *LocalStore) save(records []domain.ActivityRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}
