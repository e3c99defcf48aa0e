package workspace

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// StatusInput represents a command to get workspace status.
type StatusInput struct {
	// WorkspaceID identifies the workspace.
	WorkspaceID string `json:"workspace_id"`
}

// StatusOutput represents the response of workspace status.
type StatusOutput struct {
	model.WorkspaceStatus
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
}

// Status returns the status of a workspace.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}

	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}

	status, err := u.WorkspacePort.Status(ctx, ws)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		WorkspaceStatus: *status,
		WorkspaceID:     ws.ID,
		WorkspaceName:   ws.Name,
	}, nil
}
