package task

import (
	"context"

	domain "github.com/abhinxvz/task-mng/domain/task"
)

// localPort implements TaskPort by calling a Store in-process, without the
// service container round trip.
type localPort struct {
	store Store
}

// NewLocalPort creates a TaskPort over store. Production traffic goes through
// NewTaskAdapter; this port lets the HTTP layer and its clients run against a
// store directly, as the api, client and taskctl tests do.
func NewLocalPort(store Store) TaskPort {
	return &localPort{store: store}
}

func (p *localPort) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return p.store.List(ctx)
}

func (p *localPort) CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	return p.store.Create(ctx, draft)
}

func (p *localPort) UpdateTask(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error) {
	return p.store.Update(ctx, id, patch)
}

func (p *localPort) ToggleComplete(ctx context.Context, id int64) (domain.Task, error) {
	return p.store.ToggleComplete(ctx, id)
}

func (p *localPort) DeleteTask(ctx context.Context, id int64) error {
	return p.store.Delete(ctx, id)
}
