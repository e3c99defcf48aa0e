// Package compute implements compute target lifecycle use cases.
package compute

import (
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
)

// Repos holds repositories needed for compute use cases.
type Repos struct {
	Workspace domain.WorkspaceRepository
	Compute   domain.ComputeTargetRepository
}

// UseCase wires repositories and ports needed for compute use cases.
type UseCase struct {
	Repos       *Repos
	ComputePort model.ComputePort
}
