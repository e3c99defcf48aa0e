package image

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.Image, error) {
	return u.Repos.Image.List(ctx)
}
