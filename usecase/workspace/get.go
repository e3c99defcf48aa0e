package workspace

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) Get(ctx context.Context, id string) (*model.Workspace, error) {
	if id == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	return u.Repos.Workspace.Get(ctx, id)
}
