package providerdrv

import (
	"context"
	"fmt"

	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
)

// imagePortAdapter implements model.ImagePort backed by provider drivers.
// The workspace is resolved from the image reference.
type imagePortAdapter struct {
	workspaces domain.WorkspaceRepository
}

func (a *imagePortAdapter) resolve(ctx context.Context, img *model.Image) (*model.Workspace, Driver, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("image nil")
	}
	ws, err := a.workspaces.Get(ctx, img.WorkspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspace %s: %w", img.WorkspaceID, err)
	}
	driver, err := driverFor(ws)
	if err != nil {
		return nil, nil, err
	}
	return ws, driver, nil
}

func (a *imagePortAdapter) Build(ctx context.Context, img *model.Image, bundle *model.ImageBuildBundle, opts ...model.ImageBuildOption) (string, error) {
	ws, driver, err := a.resolve(ctx, img)
	if err != nil {
		return "", err
	}
	return driver.ImageBuild(ctx, ws, img, bundle, opts...)
}

func (a *imagePortAdapter) Delete(ctx context.Context, img *model.Image, opts ...model.ImageDeleteOption) error {
	ws, driver, err := a.resolve(ctx, img)
	if err != nil {
		return err
	}
	return driver.ImageDelete(ctx, ws, img, opts...)
}

// GetImagePort returns a model.ImagePort implemented via provider drivers.
func GetImagePort(workspaces domain.WorkspaceRepository) model.ImagePort {
	return &imagePortAdapter{workspaces: workspaces}
}
