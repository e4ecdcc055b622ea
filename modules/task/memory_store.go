package task

import (
	"context"
	"sync"

	domain "github.com/abhinxvz/task-mng/domain/task"
)

// MemoryStore keeps tasks in process memory. Its contents are lost when the
// process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	order  []int64
	lastID int64
	opts   storeOptions
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		tasks: make(map[int64]*domain.Task),
		opts:  applyOptions(opts),
	}
}

// List returns all tasks in creation order.
func (s *MemoryStore) List(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.tasks[id])
	}
	return result, nil
}

// Create validates the draft and stores a new task under the next id.
func (s *MemoryStore) Create(_ context.Context, draft domain.Draft) (domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := draft.Build(s.opts.now())
	s.lastID++
	t.ID = s.lastID

	s.tasks[t.ID] = &t
	s.order = append(s.order, t.ID)
	return t, nil
}

// Update merges the patch into the stored task.
func (s *MemoryStore) Update(_ context.Context, id int64, patch domain.Patch) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tasks[id]
	if !found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	patch.Apply(t)
	return *t, nil
}

// ToggleComplete flips the completed flag.
func (s *MemoryStore) ToggleComplete(_ context.Context, id int64) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tasks[id]
	if !found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	t.Completed = !t.Completed
	return *t, nil
}

// Delete removes a task. Its id is never handed out again.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[id]; !found {
		return &domain.NotFoundError{ID: id}
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
