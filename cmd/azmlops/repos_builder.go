package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	providerdrv "github.com/mlopsworks/azmlops/adapters/drivers/provider"
	"github.com/mlopsworks/azmlops/adapters/store/inmem"
	"github.com/mlopsworks/azmlops/adapters/store/rdb"
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/models/cfgaml"
	"github.com/mlopsworks/azmlops/usecase/compute"
	"github.com/mlopsworks/azmlops/usecase/image"
	"github.com/mlopsworks/azmlops/usecase/registry"
	"github.com/mlopsworks/azmlops/usecase/service"
	"github.com/mlopsworks/azmlops/usecase/workflow"
	"github.com/mlopsworks/azmlops/usecase/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configRoot holds the loaded configuration.
var configRoot *cfgaml.Root

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "file:azmlops.yml"
}

// stateDir returns the state directory for the loaded configuration.
func stateDir() string {
	if configRoot != nil {
		return configRoot.StateDirOrDefault()
	}
	return cfgaml.DefaultStateDir
}

// buildRepos creates repositories based on db-url.
// If db-url starts with "file:", it loads the configuration file into memory store.
func buildRepos(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getDBURL(cmd)

	switch {
	case strings.HasPrefix(dbURL, "file:"):
		// Extract file path from file: URL
		filePath := strings.TrimPrefix(dbURL, "file:")
		if filePath == "" {
			return nil, fmt.Errorf("file path is required for file: URL")
		}

		// Load configuration from file
		cfg, err := cfgaml.Load(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", filePath, err)
		}

		// Create memory store and load configuration
		store := inmem.NewStore()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := store.LoadFromConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config into store: %w", err)
		}

		configRoot = cfg

		return store.Repositories(), nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &domain.Repositories{
			Workspace:     rdb.NewWorkspaceRepository(db),
			ComputeTarget: rdb.NewComputeTargetRepository(db),
			Model:         rdb.NewModelRepository(db),
			Image:         rdb.NewImageRepository(db),
			Service:       rdb.NewServiceRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}

// buildWorkspaceUseCase creates the workspace use case with its driver port.
func buildWorkspaceUseCase(cmd *cobra.Command) (*workspace.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &workspace.UseCase{
		Repos:         &workspace.Repos{Workspace: repos.Workspace},
		WorkspacePort: providerdrv.GetWorkspacePort(),
		StateDir:      stateDir(),
	}, nil
}

// buildComputeUseCase creates the compute use case with its driver port.
func buildComputeUseCase(cmd *cobra.Command) (*compute.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &compute.UseCase{
		Repos:       &compute.Repos{Workspace: repos.Workspace, Compute: repos.ComputeTarget},
		ComputePort: providerdrv.GetComputePort(),
	}, nil
}

// buildRegistryUseCase creates the model registry use case.
func buildRegistryUseCase(cmd *cobra.Command) (*registry.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &registry.UseCase{
		Repos: &registry.Repos{Workspace: repos.Workspace, Model: repos.Model},
	}, nil
}

// buildImageUseCase creates the image use case with its driver port.
func buildImageUseCase(cmd *cobra.Command) (*image.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &image.UseCase{
		Repos:     &image.Repos{Workspace: repos.Workspace, Model: repos.Model, Image: repos.Image},
		ImagePort: providerdrv.GetImagePort(repos.Workspace),
	}, nil
}

// buildServiceUseCase creates the service use case with its driver port.
func buildServiceUseCase(cmd *cobra.Command) (*service.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &service.UseCase{
		Repos: &service.Repos{
			Workspace: repos.Workspace,
			Compute:   repos.ComputeTarget,
			Image:     repos.Image,
			Service:   repos.Service,
		},
		ServicePort: providerdrv.GetServicePort(),
	}, nil
}

// buildWorkflowUseCase composes all use cases over one shared store.
func buildWorkflowUseCase(cmd *cobra.Command) (*workflow.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &workflow.UseCase{
		Workspace: &workspace.UseCase{
			Repos:         &workspace.Repos{Workspace: repos.Workspace},
			WorkspacePort: providerdrv.GetWorkspacePort(),
			StateDir:      stateDir(),
		},
		Compute: &compute.UseCase{
			Repos:       &compute.Repos{Workspace: repos.Workspace, Compute: repos.ComputeTarget},
			ComputePort: providerdrv.GetComputePort(),
		},
		Registry: &registry.UseCase{
			Repos: &registry.Repos{Workspace: repos.Workspace, Model: repos.Model},
		},
		Image: &image.UseCase{
			Repos:     &image.Repos{Workspace: repos.Workspace, Model: repos.Model, Image: repos.Image},
			ImagePort: providerdrv.GetImagePort(repos.Workspace),
		},
		Service: &service.UseCase{
			Repos: &service.Repos{
				Workspace: repos.Workspace,
				Compute:   repos.ComputeTarget,
				Image:     repos.Image,
				Service:   repos.Service,
			},
			ServicePort: providerdrv.GetServicePort(),
		},
	}, nil
}
