package workspace

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.Workspace, error) {
	return u.Repos.Workspace.List(ctx)
}
