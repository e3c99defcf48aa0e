package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
)

// ModelRepository is a thread-safe in-memory implementation. Registrations
// are immutable; there is no Update.
type ModelRepository struct {
	mu     sync.RWMutex
	models map[string]*model.Model
	seq    int64
}

func NewModelRepository() *ModelRepository {
	return &ModelRepository{
		models: make(map[string]*model.Model),
	}
}

func (r *ModelRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("mdl-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *ModelRepository) Create(_ context.Context, m *model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = r.nextID()
	}
	cp := *m
	r.models[m.ID] = &cp
	return nil
}

func (r *ModelRepository) Get(_ context.Context, id string) (*model.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	if !ok {
		return nil, model.ErrModelNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *ModelRepository) List(_ context.Context) ([]*model.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Model, 0, len(r.models))
	for _, v := range r.models {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ModelRepository) ListVersions(_ context.Context, name string) ([]*model.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Model, 0)
	for _, v := range r.models {
		if v.Name == name {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (r *ModelRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[id]; !ok {
		return model.ErrModelNotFound
	}
	delete(r.models, id)
	return nil
}
