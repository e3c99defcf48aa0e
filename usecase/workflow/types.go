// Package workflow implements the end-to-end operationalization flow: one
// command from configured workspace to a smoke-tested scoring endpoint, and
// the reverse teardown.
package workflow

import (
	"context"
	"fmt"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/usecase/compute"
	"github.com/mlopsworks/azmlops/usecase/image"
	"github.com/mlopsworks/azmlops/usecase/registry"
	"github.com/mlopsworks/azmlops/usecase/service"
	"github.com/mlopsworks/azmlops/usecase/workspace"
)

// UseCase composes the per-entity use cases into the linear workflow.
type UseCase struct {
	Workspace *workspace.UseCase
	Compute   *compute.UseCase
	Registry  *registry.UseCase
	Image     *image.UseCase
	Service   *service.UseCase
}

// single returns the one configured workspace. The workflow operates on a
// single-workspace configuration.
func (u *UseCase) single(ctx context.Context) (*model.Workspace, error) {
	wss, err := u.Workspace.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(wss) != 1 {
		return nil, fmt.Errorf("workflow requires exactly one configured workspace, found %d", len(wss))
	}
	return wss[0], nil
}
