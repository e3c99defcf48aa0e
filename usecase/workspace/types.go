// Package workspace implements workspace resolution and lifecycle use cases.
package workspace

import (
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
)

// Repos holds repositories needed for workspace use cases.
type Repos struct {
	Workspace domain.WorkspaceRepository
}

// UseCase wires repositories and ports needed for workspace use cases.
// StateDir is where the resolved workspace cache lives.
type UseCase struct {
	Repos         *Repos
	WorkspacePort model.WorkspacePort
	StateDir      string
}
