package compute

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.ComputeTarget, error) {
	return u.Repos.Compute.List(ctx)
}
