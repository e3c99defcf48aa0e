package model

import (
	"context"
	"time"
)

// ServiceTarget identifies the deployment host flavor.
type ServiceTarget string

const (
	// ServiceTargetAKS deploys onto an attached Kubernetes cluster.
	ServiceTargetAKS ServiceTarget = "aks"
	// ServiceTargetACI deploys a single container group.
	ServiceTargetACI ServiceTarget = "aci"
)

// Service is a deployed, network-reachable instance of an image.
type Service struct {
	ID              string
	Name            string
	WorkspaceID     string // references Workspace
	ImageID         string // references Image
	ComputeTargetID string // references ComputeTarget; required for aks target
	Target          ServiceTarget
	State           string
	ScoringURI      string
	SwaggerURI      string
	PrimaryKey      string
	SecondaryKey    string
	AuthEnabled     bool
	CPU             float64
	MemoryGB        float64
	Replicas        int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Keys returns the access keys accepted by the deployed endpoint.
func (s *Service) Keys() []string {
	if !s.AuthEnabled {
		return nil
	}
	keys := make([]string, 0, 2)
	if s.PrimaryKey != "" {
		keys = append(keys, s.PrimaryKey)
	}
	if s.SecondaryKey != "" {
		keys = append(keys, s.SecondaryKey)
	}
	return keys
}

// Operation-scoped options and functional option types.
type ServiceDeployOptions struct{ Overwrite bool }
type ServiceDeleteOptions struct{ Force bool }

type ServiceDeployOption func(*ServiceDeployOptions)
type ServiceDeleteOption func(*ServiceDeleteOptions)

func WithServiceDeployOverwrite() ServiceDeployOption {
	return func(o *ServiceDeployOptions) { o.Overwrite = true }
}
func WithServiceDeleteForce() ServiceDeleteOption {
	return func(o *ServiceDeleteOptions) { o.Force = true }
}

// ServicePort is an interface (domain port) for deployed service operations.
// Deploy fills svc.ScoringURI and svc.SwaggerURI once the endpoint is
// reachable.
type ServicePort interface {
	Status(ctx context.Context, ws *Workspace, svc *Service, ct *ComputeTarget) (*ServiceStatus, error)
	Deploy(ctx context.Context, ws *Workspace, svc *Service, img *Image, ct *ComputeTarget, opts ...ServiceDeployOption) error
	Delete(ctx context.Context, ws *Workspace, svc *Service, ct *ComputeTarget, opts ...ServiceDeleteOption) error
}

// ServiceStatus represents the status of a deployed service.
type ServiceStatus struct {
	Available  bool   `json:"available"` // True when the endpoint answers
	State      string `json:"state,omitempty"`
	ScoringURI string `json:"scoringURI,omitempty"`
	SwaggerURI string `json:"swaggerURI,omitempty"`
}
