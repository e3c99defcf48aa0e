package service

import (
	"context"
	"testing"

	"github.com/mlopsworks/azmlops/adapters/store/inmem"
	"github.com/mlopsworks/azmlops/domain/model"
)

// fakeServicePort simulates a deployment target.
type fakeServicePort struct {
	available  bool
	scoringURI string // probed endpoint; empty echoes the record
	swaggerURI string
	deploys    int
	deletes    int
}

func (f *fakeServicePort) Status(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) (*model.ServiceStatus, error) {
	status := &model.ServiceStatus{Available: f.available, ScoringURI: svc.ScoringURI, SwaggerURI: svc.SwaggerURI}
	if f.scoringURI != "" {
		status.ScoringURI = f.scoringURI
		status.SwaggerURI = f.swaggerURI
	}
	return status, nil
}

func (f *fakeServicePort) Deploy(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image, ct *model.ComputeTarget, opts ...model.ServiceDeployOption) error {
	f.deploys++
	f.available = true
	svc.ScoringURI = "http://203.0.113.10/score"
	svc.SwaggerURI = "http://203.0.113.10/swagger.json"
	return nil
}

func (f *fakeServicePort) Delete(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget, opts ...model.ServiceDeleteOption) error {
	f.deletes++
	f.available = false
	return nil
}

func newDeployTest(t *testing.T, target model.ServiceTarget) (*UseCase, *fakeServicePort, *model.Service) {
	t.Helper()
	ctx := context.Background()

	store := inmem.NewStore()
	repos := store.Repositories()

	ws := &model.Workspace{Name: "mlws", SubscriptionID: "sub", ResourceGroup: "rg", Location: "eastus"}
	if err := repos.Workspace.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}
	img := &model.Image{
		Name:        "ridge",
		Registry:    "registry.example.com/score",
		WorkspaceID: ws.ID,
		Ref:         "registry.example.com/score/ridge:1",
		Digest:      "sha256:feedface",
	}
	if err := repos.Image.Create(ctx, img); err != nil {
		t.Fatal(err)
	}

	svc := &model.Service{
		Name:        "ridge-svc",
		WorkspaceID: ws.ID,
		ImageID:     img.ID,
		Target:      target,
		AuthEnabled: true,
		CPU:         1,
		MemoryGB:    1,
		Replicas:    1,
	}
	if target == model.ServiceTargetAKS {
		ct := &model.ComputeTarget{Name: "aks-ct", WorkspaceID: ws.ID, Kind: model.ComputeKindAKS}
		if err := repos.ComputeTarget.Create(ctx, ct); err != nil {
			t.Fatal(err)
		}
		svc.ComputeTargetID = ct.ID
	}
	if err := repos.Service.Create(ctx, svc); err != nil {
		t.Fatal(err)
	}

	port := &fakeServicePort{}
	u := &UseCase{
		Repos: &Repos{
			Workspace: repos.Workspace,
			Compute:   repos.ComputeTarget,
			Image:     repos.Image,
			Service:   repos.Service,
		},
		ServicePort: port,
	}
	return u, port, svc
}

func TestDeployGeneratesKeys(t *testing.T) {
	ctx := context.Background()
	u, port, svc := newDeployTest(t, model.ServiceTargetACI)

	out, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID})
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if out.Reused {
		t.Error("first deploy should not be reused")
	}
	if port.deploys != 1 {
		t.Errorf("deploys = %d, want 1", port.deploys)
	}
	if out.Service.PrimaryKey == "" || out.Service.SecondaryKey == "" {
		t.Error("auth keys should be generated on first deploy")
	}
	if out.Service.PrimaryKey == out.Service.SecondaryKey {
		t.Error("primary and secondary keys must differ")
	}
	if out.Service.ScoringURI == "" || out.Service.State != "deployed" {
		t.Errorf("deploy not recorded: uri=%q state=%q", out.Service.ScoringURI, out.Service.State)
	}
}

func TestDeployReusesLiveService(t *testing.T) {
	ctx := context.Background()
	u, port, svc := newDeployTest(t, model.ServiceTargetACI)

	first, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID})
	if err != nil {
		t.Fatal(err)
	}
	out, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Reused {
		t.Error("live service should be reused")
	}
	if port.deploys != 1 {
		t.Errorf("deploys = %d, want 1", port.deploys)
	}
	if out.Service.PrimaryKey != first.Service.PrimaryKey {
		t.Error("reuse must not rotate keys")
	}
}

func TestDeployReuseRecoversEndpoint(t *testing.T) {
	ctx := context.Background()
	u, port, svc := newDeployTest(t, model.ServiceTargetACI)

	// A live service whose record carries no URIs, as after a fresh config
	// load against an already-deployed endpoint.
	port.available = true
	port.scoringURI = "http://ridge-svc.eastus.azurecontainer.io/score"
	port.swaggerURI = "http://ridge-svc.eastus.azurecontainer.io/swagger.json"

	out, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID})
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if !out.Reused {
		t.Error("live service should be reused")
	}
	if out.Service.ScoringURI != port.scoringURI {
		t.Errorf("scoring uri = %q, want the probed endpoint", out.Service.ScoringURI)
	}
	stored, err := u.Repos.Service.Get(ctx, svc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ScoringURI != port.scoringURI || stored.SwaggerURI != port.swaggerURI {
		t.Errorf("recovered URIs not persisted: %+v", stored)
	}
}

func TestDeployOverwriteReplaces(t *testing.T) {
	ctx := context.Background()
	u, port, svc := newDeployTest(t, model.ServiceTargetACI)

	if _, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID}); err != nil {
		t.Fatal(err)
	}
	out, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID, Overwrite: true})
	if err != nil {
		t.Fatal(err)
	}
	if out.Reused {
		t.Error("overwrite must not reuse")
	}
	if port.deletes != 1 || port.deploys != 2 {
		t.Errorf("deletes = %d deploys = %d, want 1 and 2", port.deletes, port.deploys)
	}
}

func TestDeployAKSRequiresComputeTarget(t *testing.T) {
	ctx := context.Background()
	u, _, svc := newDeployTest(t, model.ServiceTargetAKS)

	// Detach the compute target reference.
	svc.ComputeTargetID = ""
	if err := u.Repos.Service.Update(ctx, svc); err != nil {
		t.Fatal(err)
	}

	if _, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID}); err != model.ErrServiceInvalid {
		t.Errorf("err = %v, want ErrServiceInvalid", err)
	}
}

func TestDeployRejectsUnbuiltImage(t *testing.T) {
	ctx := context.Background()
	u, _, svc := newDeployTest(t, model.ServiceTargetACI)

	img, err := u.Repos.Image.Get(ctx, svc.ImageID)
	if err != nil {
		t.Fatal(err)
	}
	img.Digest = ""
	if err := u.Repos.Image.Update(ctx, img); err != nil {
		t.Fatal(err)
	}

	if _, err := u.Deploy(ctx, &DeployInput{ServiceID: svc.ID}); err == nil {
		t.Error("deploying an unbuilt image should fail")
	}
}
