package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/usecase/compute"
	"github.com/mlopsworks/azmlops/usecase/image"
	"github.com/mlopsworks/azmlops/usecase/registry"
	"github.com/mlopsworks/azmlops/usecase/service"
	"github.com/mlopsworks/azmlops/usecase/workspace"
)

// UpInput represents a command to run the full operationalization flow.
type UpInput struct {
	// SmokePayload, when set, is posted to the deployed endpoint as a final
	// smoke test.
	SmokePayload []byte `json:"smoke_payload,omitempty"`
	// Overwrite redeploys a live service instead of reusing it.
	Overwrite bool `json:"overwrite"`
}

// UpOutput summarizes what the flow produced.
type UpOutput struct {
	Workspace   *model.Workspace `json:"workspace"`
	Model       *model.Model     `json:"model"`
	Image       *model.Image     `json:"image"`
	Service     *model.Service   `json:"service"`
	SmokeResult json.RawMessage  `json:"smoke_result,omitempty"`
}

// Up walks the whole flow: resolve workspace, ensure compute targets,
// register the model, build the image, deploy the service and optionally
// smoke-test the endpoint. Every step is idempotent, so Up can be re-run
// after a partial failure.
func (u *UseCase) Up(ctx context.Context, in *UpInput) (*UpOutput, error) {
	if in == nil {
		in = &UpInput{}
	}

	logger := logging.FromContext(ctx)

	ws, err := u.single(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := u.Workspace.Resolve(ctx, &workspace.ResolveInput{WorkspaceID: ws.ID})
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	out := &UpOutput{Workspace: resolved.Workspace}

	cts, err := u.Compute.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ct := range cts {
		if _, err := u.Compute.Create(ctx, &compute.CreateInput{ComputeTargetID: ct.ID}); err != nil {
			return nil, fmt.Errorf("ensure compute target %s: %w", ct.Name, err)
		}
	}

	models, err := u.Registry.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("no model configured: %w", model.ErrModelNotFound)
	}
	registered, err := u.Registry.Register(ctx, &registry.RegisterInput{ModelID: models[0].ID})
	if err != nil {
		return nil, fmt.Errorf("register model: %w", err)
	}
	out.Model = registered.Model

	images, err := u.Image.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no image configured: %w", model.ErrImageNotFound)
	}
	built, err := u.Image.Build(ctx, &image.BuildInput{
		ImageID: images[0].ID,
		ModelID: registered.Model.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("build image: %w", err)
	}
	out.Image = built.Image

	services, err := u.Service.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("no service configured: %w", model.ErrServiceNotFound)
	}
	deployed, err := u.Service.Deploy(ctx, &service.DeployInput{
		ServiceID: services[0].ID,
		Overwrite: in.Overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("deploy service: %w", err)
	}
	out.Service = deployed.Service

	if len(in.SmokePayload) > 0 {
		invoked, err := u.Service.Invoke(ctx, &service.InvokeInput{
			ServiceID: deployed.Service.ID,
			Payload:   in.SmokePayload,
		})
		if err != nil {
			return nil, fmt.Errorf("smoke test: %w", err)
		}
		out.SmokeResult = invoked.Result
		logger.Info(ctx, "smoke test passed", "service", deployed.Service.Name)
	}

	logger.Info(ctx, "workflow up complete", "scoring_uri", deployed.Service.ScoringURI)
	return out, nil
}
