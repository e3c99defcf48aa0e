// Package service implements scoring service deployment and invocation use
// cases.
package service

import (
	"context"

	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/pkg/scoringclient"
)

// Repos holds repositories needed for service use cases.
type Repos struct {
	Workspace domain.WorkspaceRepository
	Compute   domain.ComputeTargetRepository
	Image     domain.ImageRepository
	Service   domain.ServiceRepository
}

// UseCase wires repositories and ports needed for service use cases.
type UseCase struct {
	Repos       *Repos
	ServicePort model.ServicePort
}

// computeTargetFor resolves the compute target backing an aks service; nil
// for aci services.
func (u *UseCase) computeTargetFor(ctx context.Context, svc *model.Service) (*model.ComputeTarget, error) {
	if svc.Target != model.ServiceTargetAKS {
		return nil, nil
	}
	if svc.ComputeTargetID == "" {
		return nil, model.ErrServiceInvalid
	}
	return u.Repos.Compute.Get(ctx, svc.ComputeTargetID)
}

// client returns a scoring client authenticated for the service.
func client(svc *model.Service) *scoringclient.Client {
	key := ""
	if svc.AuthEnabled {
		key = svc.PrimaryKey
	}
	return scoringclient.New(key)
}
