package providerdrv

import (
	"context"
	"fmt"

	"github.com/mlopsworks/azmlops/domain/model"
)

// Driver abstracts provider-specific behavior for workspace, compute, image
// and service operations. Implementations live under
// adapters/drivers/provider/<name> and should return a provider identifier
// such as "azure" via ID().
type Driver interface {
	// ID returns the provider identifier (e.g., "azure").
	ID() string

	// WorkspaceStatus reports whether the cloud workspace scope exists.
	WorkspaceStatus(ctx context.Context, ws *model.Workspace) (*model.WorkspaceStatus, error)

	// WorkspaceProvision creates the workspace scope and its dependent
	// resources. Existing resources are reused.
	WorkspaceProvision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceProvisionOption) error

	// WorkspaceDeprovision tears down the workspace scope.
	WorkspaceDeprovision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceDeprovisionOption) error

	// ComputeStatus reports whether the compute target exists in the workspace.
	ComputeStatus(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) (*model.ComputeStatus, error)

	// ComputeProvision creates the compute target. An existing target with
	// the same name is reused.
	ComputeProvision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeProvisionOption) error

	// ComputeDeprovision deletes the compute target.
	ComputeDeprovision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeDeprovisionOption) error

	// ImageBuild assembles the bundle onto the base image, pushes it and
	// returns the manifest digest.
	ImageBuild(ctx context.Context, ws *model.Workspace, img *model.Image, bundle *model.ImageBuildBundle, opts ...model.ImageBuildOption) (string, error)

	// ImageDelete removes the pushed tag from the registry.
	ImageDelete(ctx context.Context, ws *model.Workspace, img *model.Image, opts ...model.ImageDeleteOption) error

	// ServiceStatus reports whether the deployed service exists and answers.
	ServiceStatus(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) (*model.ServiceStatus, error)

	// ServiceDeploy deploys the image as a network-reachable service and
	// fills svc.ScoringURI / svc.SwaggerURI.
	ServiceDeploy(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image, ct *model.ComputeTarget, opts ...model.ServiceDeployOption) error

	// ServiceDelete removes the deployed service.
	ServiceDelete(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget, opts ...model.ServiceDeleteOption) error
}

// driverFactory is a constructor function for a provider driver.
type driverFactory func(settings map[string]string) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (driverFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}

// driverFor resolves and constructs the driver configured on a workspace.
func driverFor(ws *model.Workspace) (Driver, error) {
	if ws == nil {
		return nil, fmt.Errorf("workspace nil")
	}
	if ws.Driver == "" {
		return nil, fmt.Errorf("workspace %s has no provider driver", ws.Name)
	}
	factory, exists := GetDriverFactory(ws.Driver)
	if !exists {
		return nil, fmt.Errorf("unknown provider driver: %s", ws.Driver)
	}
	driver, err := factory(ws.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver %s: %w", ws.Driver, err)
	}
	return driver, nil
}
