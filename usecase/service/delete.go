package service

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// DeleteInput represents a command to tear down a deployed service.
type DeleteInput struct {
	// ServiceID identifies the service.
	ServiceID string `json:"service_id"`
	// Force ignores teardown errors from the target.
	Force bool `json:"force"`
	// KeepRecord removes only the deployed workload, leaving the record
	// behind.
	KeepRecord bool `json:"keep_record"`
}

// Delete removes the deployed workload and the service record. Deleting a
// service that is not deployed is a no-op on the target.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ServiceID == "" {
		return model.ErrServiceInvalid
	}

	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return err
	}
	ws, err := u.Repos.Workspace.Get(ctx, svc.WorkspaceID)
	if err != nil {
		return err
	}
	ct, err := u.computeTargetFor(ctx, svc)
	if err != nil {
		return err
	}

	var opts []model.ServiceDeleteOption
	if in.Force {
		opts = append(opts, model.WithServiceDeleteForce())
	}
	if err := u.ServicePort.Delete(ctx, ws, svc, ct, opts...); err != nil && !in.Force {
		return err
	}

	if in.KeepRecord {
		svc.State = ""
		svc.ScoringURI = ""
		svc.SwaggerURI = ""
		return u.Repos.Service.Update(ctx, svc)
	}
	return u.Repos.Service.Delete(ctx, svc.ID)
}
