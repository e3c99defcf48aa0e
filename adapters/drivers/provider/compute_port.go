package providerdrv

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// computePortAdapter implements model.ComputePort backed by provider drivers.
type computePortAdapter struct{}

func (a *computePortAdapter) Status(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) (*model.ComputeStatus, error) {
	driver, err := driverFor(ws)
	if err != nil {
		return nil, err
	}
	return driver.ComputeStatus(ctx, ws, ct)
}

func (a *computePortAdapter) Provision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeProvisionOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.ComputeProvision(ctx, ws, ct, opts...)
}

func (a *computePortAdapter) Deprovision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeDeprovisionOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.ComputeDeprovision(ctx, ws, ct, opts...)
}

// GetComputePort returns a model.ComputePort implemented via provider drivers.
func GetComputePort() model.ComputePort {
	return &computePortAdapter{}
}
