// Package cfgaml defines the configuration schema (structs) for azmlops.yml
// and the cached workspace state file. This package is intended for
// YAML <-> struct (de)serialization; loading helpers and validations live in
// separate files.
package cfgaml

// DefaultConfigPath is the config file looked up when -f is not given.
const DefaultConfigPath = "azmlops.yml"

// DefaultStateDir holds cached state (resolved workspace, logs).
const DefaultStateDir = ".azmlops"

// Root is the root structure of azmlops.yml.
// Example:
// version: 1
// driver: azure
// workspace: { name: mlws, subscription_id: ..., resource_group: mlrg, location: eastus }
// computes: [ ... ]
// model: { ... }
// image: { ... }
// service: { ... }
type Root struct {
	Version   int       `yaml:"version"`
	Driver    string    `yaml:"driver"` // provider driver name, e.g. azure
	StateDir  string    `yaml:"state_dir,omitempty"`
	Workspace Workspace `yaml:"workspace"`
	Computes  []Compute `yaml:"computes,omitempty"`
	Model     Model     `yaml:"model"`
	Image     Image     `yaml:"image"`
	Service   Service   `yaml:"service"`
}

// Workspace identifies the cloud workspace scope.
type Workspace struct {
	Name           string            `yaml:"name"`
	SubscriptionID string            `yaml:"subscription_id"`
	ResourceGroup  string            `yaml:"resource_group"`
	Location       string            `yaml:"location"`
	Settings       map[string]string `yaml:"settings,omitempty"` // driver-specific (auth method etc.)
}

// Compute describes one compute target to provision.
type Compute struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"` // cpu | gpu | aks
	VMSize   string `yaml:"vm_size,omitempty"`
	MinNodes int32  `yaml:"min_nodes,omitempty"`
	MaxNodes int32  `yaml:"max_nodes,omitempty"`
}

// Model describes the artifact to register.
type Model struct {
	Name        string            `yaml:"name"`
	Path        string            `yaml:"path"` // local artifact file
	Description string            `yaml:"description,omitempty"`
	Tags        map[string]string `yaml:"tags,omitempty"`
}

// Image describes the scoring image build.
type Image struct {
	Name          string `yaml:"name"`
	Registry      string `yaml:"registry"` // e.g. myregistry.azurecr.io/score
	BaseImage     string `yaml:"base_image,omitempty"` // empty selects the default serving base
	ScoringScript string `yaml:"scoring_script,omitempty"` // empty selects the embedded default
	Manifest      string `yaml:"manifest,omitempty"`       // empty selects the embedded default
}

// Service describes the deployment of the scoring image.
type Service struct {
	Name     string  `yaml:"name"`
	Target   string  `yaml:"target"`            // aks | aci
	Compute  string  `yaml:"compute,omitempty"` // compute target name, required for aks
	CPU      float64 `yaml:"cpu,omitempty"`
	MemoryGB float64 `yaml:"memory_gb,omitempty"`
	Replicas int32   `yaml:"replicas,omitempty"`
	Auth     *bool   `yaml:"auth,omitempty"` // key auth, default true
}

// AuthEnabled resolves the Auth pointer with its default.
func (s *Service) AuthEnabled() bool {
	if s.Auth == nil {
		return true
	}
	return *s.Auth
}
