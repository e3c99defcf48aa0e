package registry

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

func (u *UseCase) List(ctx context.Context) ([]*model.Model, error) {
	return u.Repos.Model.List(ctx)
}

// ListVersions returns all registered versions of a model name, oldest
// first.
func (u *UseCase) ListVersions(ctx context.Context, name string) ([]*model.Model, error) {
	if name == "" {
		return nil, model.ErrModelInvalid
	}
	return u.Repos.Model.ListVersions(ctx, name)
}
