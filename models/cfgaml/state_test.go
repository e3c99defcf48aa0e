package cfgaml

import (
	"testing"

	"github.com/mlopsworks/azmlops/domain/model"
)

func TestWorkspaceStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ws := &model.Workspace{
		Name:           "mlws",
		SubscriptionID: "sub",
		ResourceGroup:  "rg",
		Location:       "eastus",
		StorageAccount: "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/stmlws",
		KeyVault:       "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.KeyVault/vaults/kvmlws",
		State:          "Succeeded",
	}

	if err := SaveWorkspaceState(dir, StateFromWorkspace(ws)); err != nil {
		t.Fatalf("SaveWorkspaceState: %v", err)
	}

	st, err := LoadWorkspaceState(dir)
	if err != nil {
		t.Fatalf("LoadWorkspaceState: %v", err)
	}
	if st == nil {
		t.Fatal("expected cached state, got nil")
	}
	if st.Name != "mlws" || st.StorageAccount != ws.StorageAccount || st.State != "Succeeded" {
		t.Errorf("unexpected state: %+v", st)
	}
	if st.ResolvedAt.IsZero() {
		t.Error("ResolvedAt not set")
	}

	restored := &model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg"}
	st.Apply(restored)
	if restored.KeyVault != ws.KeyVault {
		t.Error("Apply did not restore key vault")
	}
}

func TestWorkspaceState_Missing(t *testing.T) {
	st, err := LoadWorkspaceState(t.TempDir())
	if err != nil {
		t.Fatalf("LoadWorkspaceState: %v", err)
	}
	if st != nil {
		t.Errorf("expected nil state for missing file, got %+v", st)
	}
}

func TestWorkspaceState_Matches(t *testing.T) {
	st := &WorkspaceState{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg"}
	tests := []struct {
		name string
		ws   model.Workspace
		want bool
	}{
		{"same scope", model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg"}, true},
		{"different name", model.Workspace{Name: "other", SubscriptionID: "sub", ResourceGroup: "rg"}, false},
		{"different subscription", model.Workspace{Name: "mlws", SubscriptionID: "sub2", ResourceGroup: "rg"}, false},
		{"different resource group", model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := st.Matches(&tt.ws); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClearWorkspaceState(t *testing.T) {
	dir := t.TempDir()
	if err := ClearWorkspaceState(dir); err != nil {
		t.Fatalf("clear on missing state should be a no-op: %v", err)
	}
	if err := SaveWorkspaceState(dir, &WorkspaceState{Name: "mlws"}); err != nil {
		t.Fatal(err)
	}
	if err := ClearWorkspaceState(dir); err != nil {
		t.Fatalf("ClearWorkspaceState: %v", err)
	}
	st, err := LoadWorkspaceState(dir)
	if err != nil || st != nil {
		t.Errorf("state should be gone, got %+v err %v", st, err)
	}
}
