package providerdrv

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// servicePortAdapter implements model.ServicePort backed by provider drivers.
type servicePortAdapter struct{}

func (a *servicePortAdapter) Status(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) (*model.ServiceStatus, error) {
	driver, err := driverFor(ws)
	if err != nil {
		return nil, err
	}
	return driver.ServiceStatus(ctx, ws, svc, ct)
}

func (a *servicePortAdapter) Deploy(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image, ct *model.ComputeTarget, opts ...model.ServiceDeployOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.ServiceDeploy(ctx, ws, svc, img, ct, opts...)
}

func (a *servicePortAdapter) Delete(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget, opts ...model.ServiceDeleteOption) error {
	driver, err := driverFor(ws)
	if err != nil {
		return err
	}
	return driver.ServiceDelete(ctx, ws, svc, ct, opts...)
}

// GetServicePort returns a model.ServicePort implemented via provider drivers.
func GetServicePort() model.ServicePort {
	return &servicePortAdapter{}
}
