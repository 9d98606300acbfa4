// Package store holds the ordered in-memory collection of image records.
// It is the only shared mutable state in the system; a single mutex owns
// it and the per-record revision stamp guards the rasterize window that
// runs outside the lock.
package store

import (
	"sync"

	"image-resizer-backend/internal/domains/image"
	"image-resizer-backend/internal/infrastructure/preview"
)

type Store struct {
	mu      sync.Mutex
	order   []string
	records map[string]*image.Record
}

func New() *Store {
	return &Store{records: make(map[string]*image.Record)}
}

// Insert appends a freshly ingested record. Insertion order is preserved
// for listing; updates and deletes never reorder survivors.
func (s *Store) Insert(rec *image.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
}

// Get returns a snapshot of one record.
func (s *Store) Get(id string) (image.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return image.Record{}, image.ErrImageNotFound
	}
	return *rec, nil
}

// List returns snapshots of all records in insertion order.
func (s *Store) List() []image.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]image.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// ApplyMeta atomically applies a metadata-only mutation (rename,
// recategorize, aspect-lock toggle) and returns the updated snapshot.
func (s *Store) ApplyMeta(id string, apply func(*image.Record)) (image.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return image.Record{}, image.ErrImageNotFound
	}
	apply(rec)
	return *rec, nil
}

// StampResize bumps the record's revision and returns the new stamp
// together with the bytes the rasterizer must work from. Bumping first
// means any older in-flight result is already doomed at dispatch time.
func (s *Store) StampResize(id string) (int64, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return 0, nil, image.ErrImageNotFound
	}
	rec.Revision++
	return rec.Revision, rec.Data, nil
}

// CommitResize installs a rasterized result if its stamp is still the
// record's current revision. The old preview handle is revoked before
// the swap. On a stale stamp or a deleted record the provided handle is
// released here and ErrSuperseded / ErrImageNotFound returned, so the
// caller never has to clean up donated resources.
func (s *Store) CommitResize(id string, stamp int64, data []byte, width, height int, handle *preview.Handle, applyMeta func(*image.Record)) (image.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		handle.Release()
		return image.Record{}, image.ErrImageNotFound
	}
	if rec.Revision != stamp {
		handle.Release()
		return image.Record{}, image.ErrSuperseded
	}

	rec.Preview.Release()
	rec.Preview = handle
	rec.Data = data
	rec.Dimensions.Width = width
	rec.Dimensions.Height = height
	if applyMeta != nil {
		applyMeta(rec)
	}
	return *rec, nil
}

// Remove revokes the record's preview handle and drops the record.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return image.ErrImageNotFound
	}

	rec.Preview.Release()
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// TeardownAll revokes every live preview handle and empties the store.
func (s *Store) TeardownAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		rec.Preview.Release()
	}
	s.records = make(map[string]*image.Record)
	s.order = nil
}
