package image

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) Get(ctx context.Context, id string) (*model.Image, error) {
	if id == "" {
		return nil, model.ErrImageInvalid
	}
	return u.Repos.Image.Get(ctx, id)
}
