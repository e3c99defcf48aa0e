package workspace

import (
	"context"
	"testing"

	"github.com/mlopsworks/azmlops/adapters/store/inmem"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

// fakeWorkspacePort counts calls and simulates cloud existence.
type fakeWorkspacePort struct {
	provisioned bool
	provisions  int
	statuses    int
}

func (f *fakeWorkspacePort) Status(ctx context.Context, ws *model.Workspace) (*model.WorkspaceStatus, error) {
	f.statuses++
	return &model.WorkspaceStatus{Provisioned: f.provisioned, State: "Succeeded"}, nil
}

func (f *fakeWorkspacePort) Provision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceProvisionOption) error {
	f.provisions++
	f.provisioned = true
	ws.StorageAccount = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/stx"
	ws.KeyVault = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.KeyVault/vaults/kvx"
	ws.State = "Succeeded"
	return nil
}

func (f *fakeWorkspacePort) Deprovision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceDeprovisionOption) error {
	f.provisioned = false
	return nil
}

func newResolveTest(t *testing.T) (*UseCase, *fakeWorkspacePort, *model.Workspace) {
	t.Helper()
	ctx := context.Background()

	store := inmem.NewStore()
	ws := &model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg", Location: "eastus", Driver: "azure"}
	if err := store.Repositories().Workspace.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}

	port := &fakeWorkspacePort{}
	u := &UseCase{
		Repos:         &Repos{Workspace: store.Repositories().Workspace},
		WorkspacePort: port,
		StateDir:      t.TempDir(),
	}
	return u, port, ws
}

func TestResolveProvisionsAndCaches(t *testing.T) {
	ctx := context.Background()
	u, port, ws := newResolveTest(t)

	out, err := u.Resolve(ctx, &ResolveInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Cached {
		t.Error("first resolve should not be cached")
	}
	if port.provisions != 1 {
		t.Errorf("provisions = %d, want 1", port.provisions)
	}
	if out.Workspace.StorageAccount == "" || out.Workspace.KeyVault == "" {
		t.Error("dependent resource IDs not recorded")
	}

	st, err := cfgaml.LoadWorkspaceState(u.StateDir)
	if err != nil || st == nil {
		t.Fatalf("state cache not written: %v", err)
	}
	if st.Name != "mlws" {
		t.Errorf("cached name = %q", st.Name)
	}
}

func TestResolveUsesCache(t *testing.T) {
	ctx := context.Background()
	u, port, ws := newResolveTest(t)

	if _, err := u.Resolve(ctx, &ResolveInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatal(err)
	}
	out, err := u.Resolve(ctx, &ResolveInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Cached {
		t.Error("second resolve should hit the cache")
	}
	if port.provisions != 1 {
		t.Errorf("provisions = %d, want 1 (cache hit must not reprovision)", port.provisions)
	}
}

func TestResolveReprovisionsWhenCloudGone(t *testing.T) {
	ctx := context.Background()
	u, port, ws := newResolveTest(t)

	if _, err := u.Resolve(ctx, &ResolveInput{WorkspaceID: ws.ID}); err != nil {
		t.Fatal(err)
	}

	// Someone deleted the cloud workspace behind our back.
	port.provisioned = false

	out, err := u.Resolve(ctx, &ResolveInput{WorkspaceID: ws.ID})
	if err != nil {
		t.Fatal(err)
	}
	if out.Cached {
		t.Error("stale cache must not be trusted")
	}
	if port.provisions != 2 {
		t.Errorf("provisions = %d, want 2", port.provisions)
	}
}

func TestResolveInvalidInput(t *testing.T) {
	u, _, _ := newResolveTest(t)
	if _, err := u.Resolve(context.Background(), nil); err != model.ErrWorkspaceInvalid {
		t.Errorf("err = %v, want ErrWorkspaceInvalid", err)
	}
}
