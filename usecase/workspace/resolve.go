package workspace

import (
	"context"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

// ResolveInput represents a command to resolve a workspace.
type ResolveInput struct {
	// WorkspaceID identifies the workspace.
	WorkspaceID string `json:"workspace_id"`
}

// ResolveOutput represents the resolved workspace.
type ResolveOutput struct {
	Workspace *model.Workspace `json:"workspace"`
	// Cached is true when the workspace came from the state cache without
	// provisioning.
	Cached bool `json:"cached"`
}

// Resolve returns a usable workspace. A cached state file matching the
// configured scope is trusted after a liveness probe; otherwise the
// workspace and its dependent resources are provisioned and the cache is
// written.
func (u *UseCase) Resolve(ctx context.Context, in *ResolveInput) (*ResolveOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}

	logger := logging.FromContext(ctx)

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}

	st, err := cfgaml.LoadWorkspaceState(u.StateDir)
	if err != nil {
		return nil, err
	}
	if st.Matches(ws) {
		st.Apply(ws)
		status, err := u.WorkspacePort.Status(ctx, ws)
		if err != nil {
			return nil, err
		}
		if status.Provisioned {
			ws.State = status.State
			ws.UpdatedAt = time.Now().UTC()
			if err := u.Repos.Workspace.Update(ctx, ws); err != nil {
				return nil, err
			}
			logger.Info(ctx, "workspace resolved from cache", "workspace", ws.Name)
			return &ResolveOutput{Workspace: ws, Cached: true}, nil
		}
		// The cache points at a workspace that no longer exists.
		logger.Warn(ctx, "cached workspace is gone, reprovisioning", "workspace", ws.Name)
		if err := cfgaml.ClearWorkspaceState(u.StateDir); err != nil {
			return nil, err
		}
	}

	if err := u.WorkspacePort.Provision(ctx, ws); err != nil {
		return nil, err
	}
	ws.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Workspace.Update(ctx, ws); err != nil {
		return nil, err
	}
	if err := cfgaml.SaveWorkspaceState(u.StateDir, cfgaml.StateFromWorkspace(ws)); err != nil {
		return nil, err
	}
	logger.Info(ctx, "workspace provisioned", "workspace", ws.Name)
	return &ResolveOutput{Workspace: ws, Cached: false}, nil
}
