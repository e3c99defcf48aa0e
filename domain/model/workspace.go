package model

import (
	"context"
	"time"
)

// Workspace represents the top-level ML workspace scope. It is resolved once
// (loaded from a cached state file or provisioned) and reused by all later
// operations.
type Workspace struct {
	ID             string
	Name           string
	Driver         string // provider driver name, e.g. "azure"
	SubscriptionID string
	ResourceGroup  string
	Location       string
	StorageAccount string // ARM resource ID of the dependent storage account
	KeyVault       string // ARM resource ID of the dependent key vault
	State          string // provisioning state as reported by the platform
	Settings       map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Operation-scoped options and functional option types.
type WorkspaceProvisionOptions struct{ Force bool }
type WorkspaceDeprovisionOptions struct{ Force bool }

type WorkspaceProvisionOption func(*WorkspaceProvisionOptions)
type WorkspaceDeprovisionOption func(*WorkspaceDeprovisionOptions)

// Option helpers
func WithWorkspaceProvisionForce() WorkspaceProvisionOption {
	return func(o *WorkspaceProvisionOptions) { o.Force = true }
}
func WithWorkspaceDeprovisionForce() WorkspaceDeprovisionOption {
	return func(o *WorkspaceDeprovisionOptions) { o.Force = true }
}

// WorkspacePort is an interface (domain port) for workspace operations.
type WorkspacePort interface {
	Status(ctx context.Context, ws *Workspace) (*WorkspaceStatus, error)
	Provision(ctx context.Context, ws *Workspace, opts ...WorkspaceProvisionOption) error
	Deprovision(ctx context.Context, ws *Workspace, opts ...WorkspaceDeprovisionOption) error
}

// WorkspaceStatus represents the status of a workspace.
type WorkspaceStatus struct {
	Provisioned bool   `json:"provisioned"` // True when the cloud workspace exists
	State       string `json:"state,omitempty"`
}
