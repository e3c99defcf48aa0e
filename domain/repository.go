package domain

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// WorkspaceRepository stores and retrieves Workspace aggregates.
type WorkspaceRepository interface {
	Create(ctx context.Context, w *model.Workspace) error
	Get(ctx context.Context, id string) (*model.Workspace, error)
	List(ctx context.Context) ([]*model.Workspace, error)
	Update(ctx context.Context, w *model.Workspace) error
	Delete(ctx context.Context, id string) error
}

// ComputeTargetRepository stores and retrieves ComputeTarget aggregates.
type ComputeTargetRepository interface {
	Create(ctx context.Context, c *model.ComputeTarget) error
	Get(ctx context.Context, id string) (*model.ComputeTarget, error)
	List(ctx context.Context) ([]*model.ComputeTarget, error)
	Update(ctx context.Context, c *model.ComputeTarget) error
	Delete(ctx context.Context, id string) error
}

// ModelRepository stores and retrieves Model registrations. Registrations
// are immutable, so there is no Update; ListVersions returns every version
// registered under a name in ascending version order.
type ModelRepository interface {
	Create(ctx context.Context, m *model.Model) error
	Get(ctx context.Context, id string) (*model.Model, error)
	List(ctx context.Context) ([]*model.Model, error)
	ListVersions(ctx context.Context, name string) ([]*model.Model, error)
	Delete(ctx context.Context, id string) error
}

// ImageRepository stores and retrieves Image aggregates.
type ImageRepository interface {
	Create(ctx context.Context, i *model.Image) error
	Get(ctx context.Context, id string) (*model.Image, error)
	List(ctx context.Context) ([]*model.Image, error)
	Update(ctx context.Context, i *model.Image) error
	Delete(ctx context.Context, id string) error
}

// ServiceRepository stores and retrieves Service aggregates.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	Get(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id string) error
}

// Repositories groups repository interfaces handed to use cases.
type Repositories struct {
	Workspace     WorkspaceRepository
	ComputeTarget ComputeTargetRepository
	Model         ModelRepository
	Image         ImageRepository
	Service       ServiceRepository
}
