package storage

import (
	"sync"

	"github.com/industrial-labels/qrtag/internal/models"
)

// BatchStore keeps uploaded batches in memory between upload and label
// generation. There is no persistence; a restart drops all batches.
type BatchStore struct {
	batches map[string]*models.Batch
	mu      sync.RWMutex
}

func New() *BatchStore {
	return &BatchStore{
		batches: make(map[string]*models.Batch),
	}
}

func (s *BatchStore) Get(batchID string) (*models.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, exists := s.batches[batchID]
	return batch, exists
}

func (s *BatchStore) Set(batchID string, batch *models.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batchID] = batch
}

func (s *BatchStore) GetAll() map[string]*models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.Batch, len(s.batches))
	for k, v := range s.batches {
		result[k] = v
	}
	return result
}

func (s *BatchStore) Delete(batchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, batchID)
}
