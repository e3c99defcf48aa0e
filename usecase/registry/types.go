// Package registry implements model registration use cases. A model record
// is an immutable (name, version) pair pointing at an artifact; registering
// a changed artifact under the same name bumps the version.
package registry

import (
	"github.com/mlopsworks/azmlops/domain"
)

// Repos holds repositories needed for model registry use cases.
type Repos struct {
	Workspace domain.WorkspaceRepository
	Model     domain.ModelRepository
}

// UseCase wires repositories needed for model registry use cases.
type UseCase struct {
	Repos *Repos
}
