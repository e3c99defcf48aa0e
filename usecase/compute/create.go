package compute

import (
	"context"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// CreateInput represents a command to ensure a compute target exists.
type CreateInput struct {
	// ComputeTargetID identifies the compute target.
	ComputeTargetID string `json:"compute_target_id"`
}

// CreateOutput wraps the ensured compute target.
type CreateOutput struct {
	ComputeTarget *model.ComputeTarget `json:"compute_target"`
	// Reused is true when a live target with the same name already existed.
	Reused bool `json:"reused"`
}

// Create provisions the compute target unless a live one with the same name
// already exists, in which case it is reused as-is.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.ComputeTargetID == "" {
		return nil, model.ErrComputeTargetInvalid
	}

	logger := logging.FromContext(ctx)

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
	if status.Provisioned {
		ct.State = status.State
		ct.UpdatedAt = time.Now().UTC()
		if err := u.Repos.Compute.Update(ctx, ct); err != nil {
			return nil, err
		}
		logger.Info(ctx, "compute target reused", "compute", ct.Name, "state", ct.State)
		return &CreateOutput{ComputeTarget: ct, Reused: true}, nil
	}

	if err := u.ComputePort.Provision(ctx, ws, ct); err != nil {
		return nil, err
	}
	ct.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Compute.Update(ctx, ct); err != nil {
		return nil, err
	}
	logger.Info(ctx, "compute target provisioned", "compute", ct.Name, "state", ct.State)
	return &CreateOutput{ComputeTarget: ct, Reused: false}, nil
}
