package registry

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) Get(ctx context.Context, id string) (*model.Model, error) {
	if id == "" {
		return nil, model.ErrModelInvalid
	}
	return u.Repos.Model.Get(ctx, id)
}
