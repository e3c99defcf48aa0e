package model

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrWorkspaceInvalid  = errors.New("workspace invalid")

	ErrComputeTargetNotFound = errors.New("compute target not found")
	ErrComputeTargetInvalid  = errors.New("compute target invalid")

	ErrModelNotFound = errors.New("model not found")
	ErrModelInvalid  = errors.New("model invalid")

	ErrImageNotFound = errors.New("image not found")
	ErrImageInvalid  = errors.New("image invalid")

	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInvalid  = errors.New("service invalid")
)
