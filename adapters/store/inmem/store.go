package inmem

import (
	"context"

	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	WorkspaceRepo *WorkspaceRepository
	ComputeRepo   *ComputeTargetRepository
	ModelRepo     *ModelRepository
	ImageRepo     *ImageRepository
	ServiceRepo   *ServiceRepository
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		WorkspaceRepo: NewWorkspaceRepository(),
		ComputeRepo:   NewComputeTargetRepository(),
		ModelRepo:     NewModelRepository(),
		ImageRepo:     NewImageRepository(),
		ServiceRepo:   NewServiceRepository(),
	}
}

// Repositories bundles the store as domain repositories.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{
		Workspace:     s.WorkspaceRepo,
		ComputeTarget: s.ComputeRepo,
		Model:         s.ModelRepo,
		Image:         s.ImageRepo,
		Service:       s.ServiceRepo,
	}
}

// LoadFromConfig loads an azmlops.yml configuration into the memory store.
func (s *Store) LoadFromConfig(ctx context.Context, cfg *cfgaml.Root) error {
	ms, err := cfg.ToModels()
	if err != nil {
		return err
	}

	// Store models in dependency order: workspace → computes → model →
	// image → service.
	if err := s.WorkspaceRepo.Create(ctx, ms.Workspace); err != nil {
		return err
	}
	for _, ct := range ms.Computes {
		if err := s.ComputeRepo.Create(ctx, ct); err != nil {
			return err
		}
	}
	if err := s.ModelRepo.Create(ctx, ms.Model); err != nil {
		return err
	}
	if err := s.ImageRepo.Create(ctx, ms.Image); err != nil {
		return err
	}
	if err := s.ServiceRepo.Create(ctx, ms.Service); err != nil {
		return err
	}

	return nil
}

// LoadFromFile loads an azmlops.yml file into the memory store.
func (s *Store) LoadFromFile(ctx context.Context, path string) error {
	cfg, err := cfgaml.Load(path)
	if err != nil {
		return err
	}
	return s.LoadFromConfig(ctx, cfg)
}

// Compile-time assertions
var _ domain.WorkspaceRepository = (*WorkspaceRepository)(nil)
var _ domain.ComputeTargetRepository = (*ComputeTargetRepository)(nil)
var _ domain.ModelRepository = (*ModelRepository)(nil)
var _ domain.ImageRepository = (*ImageRepository)(nil)
var _ domain.ServiceRepository = (*ServiceRepository)(nil)
