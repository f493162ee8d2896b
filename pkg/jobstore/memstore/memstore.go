// Package memstore is the in-memory job.Store implementation — for tests
// and single-process deployments, grounded in the teacher's
// pkg/session.Manager (pkg/session/manager.go): a map behind a
// sync.RWMutex, generalized from Session to Job and extended with the
// FIFO queue and optimistic-lock semantics job.Store requires.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/codeready-toolchain/ctrleval/pkg/job"
)

// Store is an in-memory, process-local job.Store.
type Store struct {
	mu     sync.RWMutex
	jobs   map[string]*job.Job
	queue  []string
}

// New constructs an empty Store.
func New() *Store {
	return &Store{jobs: make(map[string]*job.Job)}
}

func (s *Store) Put(ctx context.Context, j *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *j
	cp.Version = 1
	s.jobs[j.ID] = &cp
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, job.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *Store) CompareAndSet(ctx context.Context, id string, expectedState job.State, newJob *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	if existing.State != expectedState {
		return job.ErrVersionConflict
	}
	cp := *newJob
	cp.Version = existing.Version + 1
	s.jobs[id] = &cp
	return nil
}

func (s *Store) Enqueue(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, id)
	return nil
}

func (s *Store) Dequeue(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return "", job.ErrQueueEmpty
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	return id, nil
}

func (s *Store) QueueDepth(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

func (s *Store) ListExpired(ctx context.Context, now time.Time, hardCeiling time.Duration) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []string
	for id, j := range s.jobs {
		if j.State == job.StateRunning && j.StartedAt != nil && now.Sub(*j.StartedAt) > hardCeiling {
			expired = append(expired, id)
			continue
		}
		if j.State.IsTerminal() && j.CompletedAt != nil {
			retention := time.Duration(j.RetentionSec) * time.Second
			if now.After(j.CompletedAt.Add(retention)) {
				expired = append(expired, id)
			}
		}
	}
	return expired, nil
}

func (s *Store) Close() error {
	return nil
}
