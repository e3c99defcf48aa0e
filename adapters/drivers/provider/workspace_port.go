package providerdrv

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// workspacePortAdapter implements model.WorkspacePort backed by provider drivers.
type workspacePortAdapter struct{}

func (a *workspacePortAdapter) Status(ctx context.Context, ws *model.Workspace) (*model.WorkspaceStatus, error) {
	driver, err := driverFor(ws)
	if err != nil {
		return nil, err
	}
	return driver.WorkspaceStatus(ctx, ws)
}

func (a *workspacePortAdapter) Provision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceProvisionOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.WorkspaceProvision(ctx, ws, opts...)
}

func (a *workspacePortAdapter) Deprovision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceDeprovisionOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.WorkspaceDeprovision(ctx, ws, opts...)
}

// GetWorkspacePort returns a model.WorkspacePort implemented via provider drivers.
func GetWorkspacePort() model.WorkspacePort {
	return &workspacePortAdapter{}
}
