package cfgaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses an azmlops.yml file, then validates it.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks structural requirements of the configuration.
func (r *Root) Validate() error {
	if r.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", r.Version)
	}
	if r.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	if r.Workspace.Name == "" {
		return fmt.Errorf("workspace.name is required")
	}
	if r.Workspace.SubscriptionID == "" {
		return fmt.Errorf("workspace.subscription_id is required")
	}
	if r.Workspace.ResourceGroup == "" {
		return fmt.Errorf("workspace.resource_group is required")
	}
	if r.Workspace.Location == "" {
		return fmt.Errorf("workspace.location is required")
	}
	names := map[string]bool{}
	for i, c := range r.Computes {
		if c.Name == "" {
			return fmt.Errorf("computes[%d].name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate compute name: %s", c.Name)
		}
		names[c.Name] = true
		switch c.Kind {
		case "cpu", "gpu", "aks":
		default:
			return fmt.Errorf("computes[%d].kind must be cpu, gpu or aks: %q", i, c.Kind)
		}
		if c.MinNodes < 0 || c.MaxNodes < 0 {
			return fmt.Errorf("computes[%d] node bounds must not be negative", i)
		}
		if c.MaxNodes > 0 && c.MinNodes > c.MaxNodes {
			return fmt.Errorf("computes[%d] min_nodes exceeds max_nodes", i)
		}
	}
	if r.Model.Name == "" {
		return fmt.Errorf("model.name is required")
	}
	if r.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	if r.Image.Name == "" {
		return fmt.Errorf("image.name is required")
	}
	if r.Image.Registry == "" {
		return fmt.Errorf("image.registry is required")
	}
	if r.Service.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	switch r.Service.Target {
	case "aci":
	case "aks":
		if r.Service.Compute == "" {
			return fmt.Errorf("service.compute is required for aks target")
		}
		if !names[r.Service.Compute] {
			return fmt.Errorf("service.compute references unknown compute: %s", r.Service.Compute)
		}
	default:
		return fmt.Errorf("service.target must be aks or aci: %q", r.Service.Target)
	}
	return nil
}

// StateDirOrDefault returns the configured state dir or DefaultStateDir.
func (r *Root) StateDirOrDefault() string {
	if r.StateDir != "" {
		return r.StateDir
	}
	return DefaultStateDir
}
