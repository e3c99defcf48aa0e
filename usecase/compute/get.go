package compute

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) Get(ctx context.Context, id string) (*model.ComputeTarget, error) {
	if id == "" {
		return nil, model.ErrComputeTargetInvalid
	}
	return u.Repos.Compute.Get(ctx, id)
}
