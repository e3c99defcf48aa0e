package model

import (
	"context"
	"time"
)

// ComputeKind identifies the flavor of a compute target.
type ComputeKind string

const (
	// ComputeKindCPU is a managed training pool of CPU nodes.
	ComputeKindCPU ComputeKind = "cpu"
	// ComputeKindGPU is a managed training pool of GPU nodes.
	ComputeKindGPU ComputeKind = "gpu"
	// ComputeKindAKS is a Kubernetes cluster attached as inference compute.
	ComputeKindAKS ComputeKind = "aks"
)

// ComputeTarget represents a managed pool of virtual machines for training
// or hosting workloads. Lifecycle is create-or-reuse, then long-lived until
// explicitly deleted.
type ComputeTarget struct {
	ID          string
	Name        string
	WorkspaceID string // references Workspace
	Kind        ComputeKind
	VMSize      string
	MinNodes    int32
	MaxNodes    int32
	State       string // provisioning state as reported by the platform
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Operation-scoped options and functional option types.
type ComputeProvisionOptions struct{ Force bool }
type ComputeDeprovisionOptions struct{ Force bool }

type ComputeProvisionOption func(*ComputeProvisionOptions)
type ComputeDeprovisionOption func(*ComputeDeprovisionOptions)

func WithComputeProvisionForce() ComputeProvisionOption {
	return func(o *ComputeProvisionOptions) { o.Force = true }
}
func WithComputeDeprovisionForce() ComputeDeprovisionOption {
	return func(o *ComputeDeprovisionOptions) { o.Force = true }
}

// ComputePort is an interface (domain port) for compute target operations.
type ComputePort interface {
	Status(ctx context.Context, ws *Workspace, ct *ComputeTarget) (*ComputeStatus, error)
	Provision(ctx context.Context, ws *Workspace, ct *ComputeTarget, opts ...ComputeProvisionOption) error
	Deprovision(ctx context.Context, ws *Workspace, ct *ComputeTarget, opts ...ComputeDeprovisionOption) error
}

// ComputeStatus represents the status of a compute target.
type ComputeStatus struct {
	Provisioned bool   `json:"provisioned"` // True when the cloud compute exists
	State       string `json:"state,omitempty"`
}
