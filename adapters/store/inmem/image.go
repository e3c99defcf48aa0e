package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
)

// ImageRepository is a thread-safe in-memory implementation.
type ImageRepository struct {
	mu     sync.RWMutex
	images map[string]*model.Image
	seq    int64
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{
		images: make(map[string]*model.Image),
	}
}

func (r *ImageRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("img-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *ImageRepository) Create(_ context.Context, i *model.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i.ID == "" {
		i.ID = r.nextID()
	}
	cp := *i
	r.images[i.ID] = &cp
	return nil
}

func (r *ImageRepository) Get(_ context.Context, id string) (*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.images[id]
	if !ok {
		return nil, model.ErrImageNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *ImageRepository) List(_ context.Context) ([]*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Image, 0, len(r.images))
	for _, v := range r.images {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ImageRepository) Update(_ context.Context, i *model.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.images[i.ID]
	if !ok {
		return model.ErrImageNotFound
	}
	cp := *i
	cp.CreatedAt = existing.CreatedAt
	r.images[i.ID] = &cp
	return nil
}

func (r *ImageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return model.ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}
