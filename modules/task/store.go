package task

import (
	"context"
	"time"

	domain "github.com/abhinxvz/task-mng/domain/task"
)

// Store owns the authoritative set of tasks and allocates their ids.
type Store interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error)
	ToggleComplete(ctx context.Context, id int64) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock overrides the wall clock used for createdAt and the default due
// date.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		o.now = now
	}
}

func applyOptions(opts []Option) storeOptions {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
