package storage

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// MemoryStore keeps documents in process memory. Documents of a collection are
// returned ordered by document id.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Fields)}
}

func (s *MemoryStore) AddDocument(_ context.Context, collectionId, documentId string, fields Fields) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, ok := s.collections[collectionId]
	if !ok {
		collection = make(map[string]Fields)
		s.collections[collectionId] = collection
	}
	collection[documentId] = fields.Copy()
	return nil
}

func (s *MemoryStore) GetCollection(_ context.Context, collectionId string) ([]Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collection := s.collections[collectionId]
	ids := make([]string, 0, len(collection))
	for id := range collection {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	documents := make([]Fields, 0, len(ids))
	for _, id := range ids {
		documents = append(documents, collection[id].Copy())
	}
	return documents, nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, collectionId, documentId string) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, ok := s.collections[collectionId]
	if !ok {
		return nil
	}
	delete(collection, documentId)
	if len(collection) == 0 {
		delete(s.collections, collectionId)
	}
	log.Debugf("Deleted document %s from collection %s", documentId, collectionId)
	return nil
}

func (s *MemoryStore) ClearCollection(_ context.Context, collectionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collectionId)
	return nil
}

// GetDocument returns a copy of a single document, or nil if it does not exist.
func (s *MemoryStore) GetDocument(collectionId, documentId string) Fields {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections[collectionId][documentId].Copy()
}

func (s *MemoryStore) DocumentExists(collectionId, documentId string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collectionId][documentId]
	return ok
}
