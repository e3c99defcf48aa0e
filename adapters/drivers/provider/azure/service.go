package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
)

// ServiceStatus reports whether the deployed service exists and answers.
func (d *driver) ServiceStatus(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) (*model.ServiceStatus, error) {
	switch svc.Target {
	case model.ServiceTargetACI:
		return d.statusACIService(ctx, ws, svc)
	case model.ServiceTargetAKS:
		if ct == nil {
			return nil, fmt.Errorf("%w: aks target requires a compute target", model.ErrServiceInvalid)
		}
		return d.statusAKSService(ctx, ws, svc, ct)
	default:
		return nil, fmt.Errorf("%w: unsupported service target %q", model.ErrServiceInvalid, svc.Target)
	}
}

// ServiceDeploy deploys the image onto the configured target and fills the
// service URIs.
func (d *driver) ServiceDeploy(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image, ct *model.ComputeTarget, opts ...model.ServiceDeployOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ServiceDeploy")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	switch svc.Target {
	case model.ServiceTargetACI:
		return d.deployACIService(ctx, ws, svc, img)
	case model.ServiceTargetAKS:
		if ct == nil {
			return fmt.Errorf("%w: aks target requires a compute target", model.ErrServiceInvalid)
		}
		return d.deployAKSService(ctx, ws, svc, img, ct)
	default:
		return fmt.Errorf("%w: unsupported service target %q", model.ErrServiceInvalid, svc.Target)
	}
}

// ServiceDelete removes the deployed service (idempotent).
func (d *driver) ServiceDelete(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget, opts ...model.ServiceDeleteOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ServiceDelete")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	switch svc.Target {
	case model.ServiceTargetACI:
		return d.deleteACIService(ctx, ws, svc)
	case model.ServiceTargetAKS:
		if ct == nil {
			return fmt.Errorf("%w: aks target requires a compute target", model.ErrServiceInvalid)
		}
		return d.deleteAKSService(ctx, ws, svc, ct)
	default:
		return fmt.Errorf("%w: unsupported service target %q", model.ErrServiceInvalid, svc.Target)
	}
}
