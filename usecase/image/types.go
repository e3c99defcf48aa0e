// Package image implements scoring image build use cases.
package image

import (
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
)

// Repos holds repositories needed for image use cases.
type Repos struct {
	Workspace domain.WorkspaceRepository
	Model     domain.ModelRepository
	Image     domain.ImageRepository
}

// UseCase wires repositories and ports needed for image use cases.
type UseCase struct {
	Repos     *Repos
	ImagePort model.ImagePort
}
