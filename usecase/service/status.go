package service

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// StatusInput represents a command to get service status.
type StatusInput struct {
	// ServiceID identifies the service.
	ServiceID string `json:"service_id"`
}

// StatusOutput represents the response of service status.
type StatusOutput struct {
	model.ServiceStatus
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
}

// Status returns the status of a deployed service.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ServiceID == "" {
		return nil, model.ErrServiceInvalid
	}

	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	ws, err := u.Repos.Workspace.Get(ctx, svc.WorkspaceID)
	if err != nil {
		return nil, err
	}
	ct, err := u.computeTargetFor(ctx, svc)
	if err != nil {
		return nil, err
	}

	status, err := u.ServicePort.Status(ctx, ws, svc, ct)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		ServiceStatus: *status,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
	}, nil
}
