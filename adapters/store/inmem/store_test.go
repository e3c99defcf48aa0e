package inmem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

func TestWorkspaceRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkspaceRepository()

	ws := &model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg"}
	if err := repo.Create(ctx, ws); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ws.ID == "" {
		t.Fatal("Create should assign an ID")
	}

	got, err := repo.Get(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "mlws" {
		t.Errorf("unexpected workspace: %+v", got)
	}

	// Returned copies must not alias the stored record.
	got.Name = "mutated"
	again, _ := repo.Get(ctx, ws.ID)
	if again.Name != "mlws" {
		t.Error("Get returned an aliased record")
	}

	got.Name = "renamed"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := repo.Get(ctx, ws.ID)
	if updated.Name != "renamed" {
		t.Errorf("Update not applied: %+v", updated)
	}

	if err := repo.Delete(ctx, ws.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, ws.ID); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, ws.ID); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Errorf("expected ErrWorkspaceNotFound on double delete, got %v", err)
	}
}

func TestModelRepository_ListVersions(t *testing.T) {
	ctx := context.Background()
	repo := NewModelRepository()

	for _, v := range []int{2, 1, 3} {
		if err := repo.Create(ctx, &model.Model{Name: "ridge", Version: v}); err != nil {
			t.Fatalf("Create v%d: %v", v, err)
		}
	}
	if err := repo.Create(ctx, &model.Model{Name: "other", Version: 1}); err != nil {
		t.Fatal(err)
	}

	versions, err := repo.ListVersions(ctx, "ridge")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(versions))
	}
	for i, want := range []int{1, 2, 3} {
		if versions[i].Version != want {
			t.Errorf("versions[%d] = %d, want %d", i, versions[i].Version, want)
		}
	}

	none, err := repo.ListVersions(ctx, "absent")
	if err != nil || len(none) != 0 {
		t.Errorf("expected empty list for unknown name, got %v %v", none, err)
	}
}

func TestStore_LoadFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := &cfgaml.Root{
		Version: 1,
		Driver:  "azure",
		Workspace: cfgaml.Workspace{
			Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg", Location: "eastus",
		},
		Computes: []cfgaml.Compute{
			{Name: "cpucluster", Kind: "cpu", VMSize: "Standard_D3_v2", MaxNodes: 4},
		},
		Model:   cfgaml.Model{Name: "ridge", Path: "./model.json"},
		Image:   cfgaml.Image{Name: "ridge-score", Registry: "r.azurecr.io/score"},
		Service: cfgaml.Service{Name: "ridge-svc", Target: "aci"},
	}

	store := NewStore()
	if err := store.LoadFromConfig(ctx, cfg); err != nil {
		t.Fatalf("LoadFromConfig: %v", err)
	}

	wss, _ := store.WorkspaceRepo.List(ctx)
	if len(wss) != 1 {
		t.Fatalf("expected 1 workspace, got %d", len(wss))
	}
	cts, _ := store.ComputeRepo.List(ctx)
	if len(cts) != 1 || cts[0].WorkspaceID != wss[0].ID {
		t.Errorf("unexpected computes: %+v", cts)
	}
	svcs, _ := store.ServiceRepo.List(ctx)
	if len(svcs) != 1 || svcs[0].WorkspaceID != wss[0].ID {
		t.Errorf("unexpected services: %+v", svcs)
	}

	repos := store.Repositories()
	if repos.Workspace == nil || repos.Model == nil || repos.Service == nil {
		t.Error("Repositories() returned incomplete bundle")
	}
}

func TestStore_LoadFromFile(t *testing.T) {
	ctx := context.Background()
	data := `version: 1
driver: azure
workspace:
  name: mlws
  subscription_id: sub
  resource_group: rg
  location: eastus
model:
  name: ridge
  path: ./model.json
image:
  name: ridge-score
  registry: r.azurecr.io/score
service:
  name: ridge-svc
  target: aci
`
	path := filepath.Join(t.TempDir(), "azmlops.yml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	if err := store.LoadFromFile(ctx, path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	wss, _ := store.WorkspaceRepo.List(ctx)
	if len(wss) != 1 || wss[0].Driver != "azure" {
		t.Fatalf("unexpected workspaces: %+v", wss)
	}
}
