package workflow

import (
	"context"
	"fmt"

	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/usecase/compute"
	"github.com/mlopsworks/azmlops/usecase/image"
	"github.com/mlopsworks/azmlops/usecase/registry"
	"github.com/mlopsworks/azmlops/usecase/service"
	"github.com/mlopsworks/azmlops/usecase/workspace"
)

// DownInput represents a command to tear the deployed flow down.
type DownInput struct {
	// Force ignores teardown errors and keeps going.
	Force bool `json:"force"`
	// DeleteCompute also deprovisions the compute targets.
	DeleteCompute bool `json:"delete_compute"`
	// DeleteWorkspace also deprovisions the workspace scope.
	DeleteWorkspace bool `json:"delete_workspace"`
}

// Down tears the flow down in reverse order: service, image, model
// registration, then optionally compute targets and the workspace. Intent
// records stay in the store so Up can re-run from the same configuration.
func (u *UseCase) Down(ctx context.Context, in *DownInput) error {
	if in == nil {
		in = &DownInput{}
	}

	logger := logging.FromContext(ctx)

	services, err := u.Service.List(ctx)
	if err != nil {
		return err
	}
	for _, svc := range services {
		err := u.Service.Delete(ctx, &service.DeleteInput{
			ServiceID:  svc.ID,
			Force:      in.Force,
			KeepRecord: true,
		})
		if err != nil && !in.Force {
			return fmt.Errorf("delete service %s: %w", svc.Name, err)
		}
		if err != nil {
			logger.Warn(ctx, "service teardown failed, continuing", "service", svc.Name, "err", err.Error())
		}
	}

	images, err := u.Image.List(ctx)
	if err != nil {
		return err
	}
	for _, img := range images {
		err := u.Image.Delete(ctx, &image.DeleteInput{ImageID: img.ID, KeepRecord: true})
		if err != nil && !in.Force {
			return fmt.Errorf("delete image %s: %w", img.Name, err)
		}
		if err != nil {
			logger.Warn(ctx, "image teardown failed, continuing", "image", img.Name, "err", err.Error())
		}
	}

	models, err := u.Registry.List(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		err := u.Registry.Unregister(ctx, &registry.UnregisterInput{ModelID: m.ID})
		if err != nil && !in.Force {
			return fmt.Errorf("unregister model %s: %w", m.Name, err)
		}
		if err != nil {
			logger.Warn(ctx, "model unregister failed, continuing", "model", m.Name, "err", err.Error())
		}
	}

	if in.DeleteCompute {
		cts, err := u.Compute.List(ctx)
		if err != nil {
			return err
		}
		for _, ct := range cts {
			err := u.Compute.Delete(ctx, &compute.DeleteInput{ComputeTargetID: ct.ID, Force: in.Force})
			if err != nil && !in.Force {
				return fmt.Errorf("delete compute target %s: %w", ct.Name, err)
			}
			if err != nil {
				logger.Warn(ctx, "compute teardown failed, continuing", "compute", ct.Name, "err", err.Error())
			}
		}
	}

	if in.DeleteWorkspace {
		ws, err := u.single(ctx)
		if err != nil {
			return err
		}
		if err := u.Workspace.Delete(ctx, &workspace.DeleteInput{WorkspaceID: ws.ID, Force: in.Force}); err != nil && !in.Force {
			return fmt.Errorf("delete workspace %s: %w", ws.Name, err)
		}
	}

	logger.Info(ctx, "workflow down complete")
	return nil
}
