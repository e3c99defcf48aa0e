package registry

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// Delete removes a model record. The artifact file is left untouched.
func (u *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrModelInvalid
	}
	return u.Repos.Model.Delete(ctx, id)
}
