package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
)

// ComputeTargetRepository is a thread-safe in-memory implementation.
type ComputeTargetRepository struct {
	mu      sync.RWMutex
	targets map[string]*model.ComputeTarget
	seq     int64
}

func NewComputeTargetRepository() *ComputeTargetRepository {
	return &ComputeTargetRepository{
		targets: make(map[string]*model.ComputeTarget),
	}
}

func (r *ComputeTargetRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("ct-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *ComputeTargetRepository) Create(_ context.Context, c *model.ComputeTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = r.nextID()
	}
	cp := *c
	r.targets[c.ID] = &cp
	return nil
}

func (r *ComputeTargetRepository) Get(_ context.Context, id string) (*model.ComputeTarget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.targets[id]
	if !ok {
		return nil, model.ErrComputeTargetNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *ComputeTargetRepository) List(_ context.Context) ([]*model.ComputeTarget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ComputeTarget, 0, len(r.targets))
	for _, v := range r.targets {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ComputeTargetRepository) Update(_ context.Context, c *model.ComputeTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.targets[c.ID]
	if !ok {
		return model.ErrComputeTargetNotFound
	}
	cp := *c
	cp.CreatedAt = existing.CreatedAt
	r.targets[c.ID] = &cp
	return nil
}

func (r *ComputeTargetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.targets[id]; !ok {
		return model.ErrComputeTargetNotFound
	}
	delete(r.targets, id)
	return nil
}
