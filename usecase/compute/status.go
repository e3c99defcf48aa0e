package compute

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// StatusInput represents a command to get compute target status.
type StatusInput struct {
	// ComputeTargetID identifies the compute target.
	ComputeTargetID string `json:"compute_target_id"`
}

// StatusOutput represents the response of compute target status.
type StatusOutput struct {
	model.ComputeStatus
	ComputeTargetID   string `json:"compute_target_id"`
	ComputeTargetName string `json:"compute_target_name"`
}

// Status returns the status of a compute target.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ComputeTargetID == "" {
		return nil, model.ErrComputeTargetInvalid
	}

	ct, err := u.Repos.Compute.Get(ctx, in.ComputeTargetID)
	if err != nil {
		return nil, err
	}
	ws, err := u.Repos.Workspace.Get(ctx, ct.WorkspaceID)
	if err != nil {
		return nil, err
	}

	status, err := u.ComputePort.Status(ctx, ws, ct)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		ComputeStatus:     *status,
		ComputeTargetID:   ct.ID,
		ComputeTargetName: ct.Name,
	}, nil
}
