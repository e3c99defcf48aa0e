package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigYAML = `version: 1
driver: azure
workspace:
  name: mlws
  subscription_id: 00000000-0000-0000-0000-000000000000
  resource_group: mlrg
  location: eastus
computes:
  - name: cpu-pool
    kind: cpu
    vm_size: Standard_DS2_v2
    max_nodes: 2
model:
  name: ridge
  path: model/ridge.pkl
image:
  name: score-ridge
  registry: myregistry.azurecr.io/score
service:
  name: ridge-svc
  target: aci
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "azmlops.yml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCmdConfig(t *testing.T) {
	path := writeTestConfig(t)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "-f", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config: %v", err)
	}
	got := out.String()
	for _, want := range []string{"driver=azure", "workspace=mlws", "service=ridge-svc", "target=aci"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestCmdConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "azmlops.yml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "-f", path})
	if err := root.Execute(); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestCmdWorkspaceList(t *testing.T) {
	path := writeTestConfig(t)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--db-url", "file:" + path, "workspace", "list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("workspace list: %v", err)
	}
	if !strings.Contains(out.String(), `"mlws"`) {
		t.Errorf("output %q missing workspace name", out.String())
	}
}
