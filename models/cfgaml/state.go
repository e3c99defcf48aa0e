package cfgaml

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
	"gopkg.in/yaml.v3"
)

// WorkspaceStateFile is the cached workspace state inside the state dir.
const WorkspaceStateFile = "workspace.yml"

// WorkspaceState is the on-disk cache of a resolved workspace. It is
// written once on first resolve and read by subsequent commands.
type WorkspaceState struct {
	Name           string    `yaml:"name"`
	SubscriptionID string    `yaml:"subscription_id"`
	ResourceGroup  string    `yaml:"resource_group"`
	Location       string    `yaml:"location"`
	StorageAccount string    `yaml:"storage_account,omitempty"`
	KeyVault       string    `yaml:"key_vault,omitempty"`
	State          string    `yaml:"state,omitempty"`
	ResolvedAt     time.Time `yaml:"resolved_at"`
}

// Matches reports whether the cached state belongs to the given workspace
// scope. A stale cache (different subscription/resource group/name) must not
// be trusted.
func (s *WorkspaceState) Matches(ws *model.Workspace) bool {
	return s != nil && ws != nil &&
		s.Name == ws.Name &&
		s.SubscriptionID == ws.SubscriptionID &&
		s.ResourceGroup == ws.ResourceGroup
}

// Apply copies cached cloud-assigned fields onto a workspace model.
func (s *WorkspaceState) Apply(ws *model.Workspace) {
	ws.StorageAccount = s.StorageAccount
	ws.KeyVault = s.KeyVault
	ws.State = s.State
}

// StateFromWorkspace captures a resolved workspace into cacheable form.
func StateFromWorkspace(ws *model.Workspace) *WorkspaceState {
	return &WorkspaceState{
		Name:           ws.Name,
		SubscriptionID: ws.SubscriptionID,
		ResourceGroup:  ws.ResourceGroup,
		Location:       ws.Location,
		StorageAccount: ws.StorageAccount,
		KeyVault:       ws.KeyVault,
		State:          ws.State,
		ResolvedAt:     time.Now().UTC(),
	}
}

// LoadWorkspaceState reads the cached state from dir. A missing file is not
// an error; it returns (nil, nil).
func LoadWorkspaceState(dir string) (*WorkspaceState, error) {
	path := filepath.Join(dir, WorkspaceStateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace state %q: %w", path, err)
	}
	var st WorkspaceState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse workspace state %q: %w", path, err)
	}
	return &st, nil
}

// SaveWorkspaceState writes the cached state into dir, creating it as
// needed.
func SaveWorkspaceState(dir string, st *WorkspaceState) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir %q: %w", dir, err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal workspace state: %w", err)
	}
	path := filepath.Join(dir, WorkspaceStateFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workspace state %q: %w", path, err)
	}
	return nil
}

// ClearWorkspaceState removes the cached state. Missing file is a no-op.
func ClearWorkspaceState(dir string) error {
	err := os.Remove(filepath.Join(dir, WorkspaceStateFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
