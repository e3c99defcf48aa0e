package compute

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// DeleteInput represents a command to deprovision a compute target.
type DeleteInput struct {
	// ComputeTargetID identifies the compute target.
	ComputeTargetID string `json:"compute_target_id"`
	// Force deletes the underlying cluster of an attached aks target
	// instead of only detaching it.
	Force bool `json:"force"`
}

// Delete deprovisions the compute target and removes the record.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ComputeTargetID == "" {
		return model.ErrComputeTargetInvalid
	}

	ct, err := u.Repos.Compute.Get(ctx, in.ComputeTargetID)
	if err != nil {
		return err
	}
	ws, err := u.Repos.Workspace.Get(ctx, ct.WorkspaceID)
	if err != nil {
		return err
	}

	var opts []model.ComputeDeprovisionOption
	if in.Force {
		opts = append(opts, model.WithComputeDeprovisionForce())
	}
	if err := u.ComputePort.Deprovision(ctx, ws, ct, opts...); err != nil {
		return err
	}
	return u.Repos.Compute.Delete(ctx, ct.ID)
}
