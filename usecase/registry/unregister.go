package registry

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// UnregisterInput represents a command to undo all registrations of a model
// name.
type UnregisterInput struct {
	// ModelID identifies any record of the model name to unregister.
	ModelID string `json:"model_id"`
}

// Unregister removes every registered version of the record's name and
// restores a single unregistered record, keeping the original ID so
// configured image references stay valid. Registering again starts over at
// version 1.
func (u *UseCase) Unregister(ctx context.Context, in *UnregisterInput) error {
	if in == nil || in.ModelID == "" {
		return model.ErrModelInvalid
	}

	logger := logging.FromContext(ctx)

	m, err := u.Repos.Model.Get(ctx, in.ModelID)
	if err != nil {
		return err
	}

	versions, err := u.Repos.Model.ListVersions(ctx, m.Name)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if err := u.Repos.Model.Delete(ctx, v.ID); err != nil {
			return err
		}
	}

	reset := *m
	reset.Version = 1
	reset.Checksum = ""
	if err := u.Repos.Model.Create(ctx, &reset); err != nil {
		return err
	}
	logger.Info(ctx, "model unregistered", "model", m.Name, "versions", len(versions))
	return nil
}
