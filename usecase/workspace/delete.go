package workspace

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

// DeleteInput represents a command to deprovision a workspace.
type DeleteInput struct {
	// WorkspaceID identifies the workspace.
	WorkspaceID string `json:"workspace_id"`
	// Force removes the whole resource group instead of only the ML
	// workspace.
	Force bool `json:"force"`
}

// Delete deprovisions the cloud workspace, clears the state cache and
// removes the record.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.WorkspaceID == "" {
		return model.ErrWorkspaceInvalid
	}

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return err
	}

	var opts []model.WorkspaceDeprovisionOption
	if in.Force {
		opts = append(opts, model.WithWorkspaceDeprovisionForce())
	}
	if err := u.WorkspacePort.Deprovision(ctx, ws, opts...); err != nil {
		return err
	}

	if err := cfgaml.ClearWorkspaceState(u.StateDir); err != nil {
		return err
	}
	return u.Repos.Workspace.Delete(ctx, ws.ID)
}
