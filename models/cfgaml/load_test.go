package cfgaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `
version: 1
driver: azure
workspace:
  name: mlws
  subscription_id: 00000000-0000-0000-0000-000000000000
  resource_group: mlrg
  location: eastus
  settings:
    AZURE_AUTH_METHOD: azure_cli
computes:
  - name: cpucluster
    kind: cpu
    vm_size: Standard_D3_v2
    min_nodes: 0
    max_nodes: 4
  - name: infer-aks
    kind: aks
    vm_size: Standard_DS3_v2
model:
  name: ridge-model
  path: ./model.json
  tags:
    lang: R
image:
  name: ridge-score
  registry: myregistry.azurecr.io/score
service:
  name: ridge-svc
  target: aks
  compute: infer-aks
  replicas: 1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "azmlops.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Version != 1 || cfg.Driver != "azure" {
		t.Errorf("unexpected root: %+v", cfg)
	}
	if cfg.Workspace.Name != "mlws" || cfg.Workspace.Location != "eastus" {
		t.Errorf("unexpected workspace: %+v", cfg.Workspace)
	}
	if len(cfg.Computes) != 2 || cfg.Computes[0].MaxNodes != 4 {
		t.Errorf("unexpected computes: %+v", cfg.Computes)
	}
	if cfg.Model.Tags["lang"] != "R" {
		t.Errorf("unexpected model: %+v", cfg.Model)
	}
	if cfg.Service.Target != "aks" || cfg.Service.Compute != "infer-aks" {
		t.Errorf("unexpected service: %+v", cfg.Service)
	}
	if !cfg.Service.AuthEnabled() {
		t.Error("auth should default to enabled")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/path/does/not/exist.yml"); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "version: [1,2\n")); err == nil {
		t.Fatalf("expected error for invalid YAML, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string // string replacement applied to validConfig
		with    string
		wantErr string
	}{
		{"bad version", "version: 1", "version: 2", "unsupported config version"},
		{"missing driver", "driver: azure", "driver: \"\"", "driver is required"},
		{"missing subscription", "subscription_id: 00000000-0000-0000-0000-000000000000", "subscription_id: \"\"", "subscription_id is required"},
		{"bad compute kind", "kind: cpu", "kind: tpu", "kind must be cpu, gpu or aks"},
		{"bad target", "target: aks", "target: vm", "target must be aks or aci"},
		{"unknown compute ref", "compute: infer-aks", "compute: nope", "unknown compute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(validConfig, tt.mutate, tt.with, 1)
			_, err := Load(writeConfig(t, content))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MinNodesExceedsMax(t *testing.T) {
	content := strings.Replace(validConfig, "min_nodes: 0", "min_nodes: 8", 1)
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for min_nodes > max_nodes")
	}
}

func TestToModels(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ms, err := cfg.ToModels()
	if err != nil {
		t.Fatalf("ToModels returned error: %v", err)
	}

	if ms.Workspace.ID == "" {
		t.Error("workspace ID not generated")
	}
	for _, ct := range ms.Computes {
		if ct.WorkspaceID != ms.Workspace.ID {
			t.Errorf("compute %s not linked to workspace", ct.Name)
		}
	}
	if ms.Model.WorkspaceID != ms.Workspace.ID || ms.Model.Version != 1 {
		t.Errorf("unexpected model: %+v", ms.Model)
	}
	if ms.Image.ModelID != ms.Model.ID {
		t.Error("image not linked to model")
	}
	if ms.Image.Registry != "myregistry.azurecr.io/score" {
		t.Errorf("configured registry not carried: %+v", ms.Image)
	}
	if ms.Service.ImageID != ms.Image.ID {
		t.Error("service not linked to image")
	}
	if ms.Service.ComputeTargetID == "" {
		t.Error("aks service must reference its compute target")
	}
}
