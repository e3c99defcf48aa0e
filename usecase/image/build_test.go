package image

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlopsworks/azmlops/adapters/store/inmem"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/scoring"
	"github.com/mlopsworks/azmlops/models/cfgaml"
)

// fakeImagePort returns a fixed digest and records what it was asked to build.
type fakeImagePort struct {
	digest string
	builds int
	bundle *model.ImageBuildBundle
}

func (f *fakeImagePort) Build(ctx context.Context, img *model.Image, bundle *model.ImageBuildBundle, opts ...model.ImageBuildOption) (string, error) {
	f.builds++
	f.bundle = bundle
	return f.digest, nil
}

func (f *fakeImagePort) Delete(ctx context.Context, img *model.Image, opts ...model.ImageDeleteOption) error {
	return nil
}

func newBuildTest(t *testing.T) (*UseCase, *fakeImagePort, *model.Image, *model.Model) {
	t.Helper()
	ctx := context.Background()

	store := inmem.NewStore()
	repos := store.Repositories()

	ws := &model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg", Location: "eastus"}
	if err := repos.Workspace.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}

	artifact := filepath.Join(t.TempDir(), "ridge.pkl")
	if err := os.WriteFile(artifact, []byte("serialized model"), 0o644); err != nil {
		t.Fatal(err)
	}
	mdl := &model.Model{
		Name:        "ridge",
		Version:     1,
		WorkspaceID: ws.ID,
		Path:        artifact,
		Checksum:    "sha256:abc",
	}
	if err := repos.Model.Create(ctx, mdl); err != nil {
		t.Fatal(err)
	}

	img := &model.Image{
		Name:        "ridge",
		Registry:    "registry.example.com/score",
		ModelID:     mdl.ID,
		WorkspaceID: ws.ID,
		BaseImage:   "docker.io/library/python:3.11-slim",
	}
	if err := repos.Image.Create(ctx, img); err != nil {
		t.Fatal(err)
	}

	port := &fakeImagePort{digest: "sha256:feedface"}
	u := &UseCase{
		Repos:     &Repos{Workspace: repos.Workspace, Model: repos.Model, Image: repos.Image},
		ImagePort: port,
	}
	return u, port, img, mdl
}

func TestBuildRecordsDigest(t *testing.T) {
	ctx := context.Background()
	u, port, img, mdl := newBuildTest(t)

	out, err := u.Build(ctx, &BuildInput{ImageID: img.ID})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out.Reused {
		t.Error("first build should not be reused")
	}
	if out.Image.Digest != "sha256:feedface" {
		t.Errorf("digest = %q", out.Image.Digest)
	}
	if out.Image.Ref != "registry.example.com/score/ridge:1" {
		t.Errorf("ref = %q (tag should default to model version)", out.Image.Ref)
	}
	if out.Image.BuildID == "" || out.Image.State != "built" {
		t.Errorf("build not recorded: build_id=%q state=%q", out.Image.BuildID, out.Image.State)
	}
	if port.bundle == nil || port.bundle.Files["model/"+filepath.Base(mdl.Path)] == nil {
		t.Error("bundle should carry the model artifact")
	}
}

func TestBuildFromConfigUsesRegistry(t *testing.T) {
	ctx := context.Background()

	artifact := filepath.Join(t.TempDir(), "model.pkl")
	if err := os.WriteFile(artifact, []byte("serialized model"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &cfgaml.Root{
		Version: 1,
		Driver:  "azure",
		Workspace: cfgaml.Workspace{
			Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg", Location: "eastus",
		},
		Model:   cfgaml.Model{Name: "ridge", Path: artifact},
		Image:   cfgaml.Image{Name: "score", Registry: "myregistry.azurecr.io/score"},
		Service: cfgaml.Service{Name: "ridge-svc", Target: "aci"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	ms, err := cfg.ToModels()
	if err != nil {
		t.Fatalf("ToModels: %v", err)
	}

	store := inmem.NewStore()
	repos := store.Repositories()
	if err := repos.Workspace.Create(ctx, ms.Workspace); err != nil {
		t.Fatal(err)
	}
	// Build requires a registered model.
	ms.Model.Checksum = "sha256:abc"
	if err := repos.Model.Create(ctx, ms.Model); err != nil {
		t.Fatal(err)
	}
	if err := repos.Image.Create(ctx, ms.Image); err != nil {
		t.Fatal(err)
	}

	u := &UseCase{
		Repos:     &Repos{Workspace: repos.Workspace, Model: repos.Model, Image: repos.Image},
		ImagePort: &fakeImagePort{digest: "sha256:feedface"},
	}
	out, err := u.Build(ctx, &BuildInput{ImageID: ms.Image.ID})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out.Image.Ref != "myregistry.azurecr.io/score/score:1" {
		t.Errorf("ref = %q, want the configured registry prefix", out.Image.Ref)
	}
	if out.Image.BaseImage != scoring.DefaultBaseImage {
		t.Errorf("base image = %q, want the default serving base", out.Image.BaseImage)
	}
}

func TestBuildReusesUnchanged(t *testing.T) {
	ctx := context.Background()
	u, port, img, _ := newBuildTest(t)

	if _, err := u.Build(ctx, &BuildInput{ImageID: img.ID}); err != nil {
		t.Fatal(err)
	}
	out, err := u.Build(ctx, &BuildInput{ImageID: img.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Reused {
		t.Error("unchanged build should be reused")
	}
	if port.builds != 1 {
		t.Errorf("builds = %d, want 1", port.builds)
	}
}

func TestBuildRebuildsForNewModelVersion(t *testing.T) {
	ctx := context.Background()
	u, port, img, mdl := newBuildTest(t)

	if _, err := u.Build(ctx, &BuildInput{ImageID: img.ID}); err != nil {
		t.Fatal(err)
	}

	mdl2 := &model.Model{
		Name:        mdl.Name,
		Version:     2,
		WorkspaceID: mdl.WorkspaceID,
		Path:        mdl.Path,
		Checksum:    "sha256:def",
	}
	if err := u.Repos.Model.Create(ctx, mdl2); err != nil {
		t.Fatal(err)
	}

	out, err := u.Build(ctx, &BuildInput{ImageID: img.ID, ModelID: mdl2.ID})
	if err != nil {
		t.Fatal(err)
	}
	if out.Reused {
		t.Error("new model version should force a rebuild")
	}
	if out.Image.ModelID != mdl2.ID {
		t.Errorf("image model = %q, want %q", out.Image.ModelID, mdl2.ID)
	}
	if port.builds != 2 {
		t.Errorf("builds = %d, want 2", port.builds)
	}
}

func TestBuildRejectsUnregisteredModel(t *testing.T) {
	ctx := context.Background()
	u, _, img, mdl := newBuildTest(t)

	mdl.Checksum = ""
	// Model records are immutable; recreate the state via a fresh record.
	if err := u.Repos.Model.Delete(ctx, mdl.ID); err != nil {
		t.Fatal(err)
	}
	if err := u.Repos.Model.Create(ctx, mdl); err != nil {
		t.Fatal(err)
	}

	if _, err := u.Build(ctx, &BuildInput{ImageID: img.ID}); err == nil {
		t.Error("building against an unregistered model should fail")
	}
}
