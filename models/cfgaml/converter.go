package cfgaml

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
)

// Models groups the domain models converted from one configuration.
type Models struct {
	Workspace *model.Workspace
	Computes  []*model.ComputeTarget
	Model     *model.Model
	Image     *model.Image
	Service   *model.Service
}

// ToModels converts the configuration to domain models with proper
// references. IDs are freshly generated; repositories may override them.
func (r *Root) ToModels() (*Models, error) {
	now := time.Now().UTC()

	workspaceID, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate workspace ID: %w", err)
	}

	ws := &model.Workspace{
		ID:             workspaceID,
		Name:           r.Workspace.Name,
		Driver:         r.Driver,
		SubscriptionID: r.Workspace.SubscriptionID,
		ResourceGroup:  r.Workspace.ResourceGroup,
		Location:       r.Workspace.Location,
		Settings:       r.Workspace.Settings,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	computes := make([]*model.ComputeTarget, 0, len(r.Computes))
	computeIDs := map[string]string{}
	for _, c := range r.Computes {
		id, err := generateID()
		if err != nil {
			return nil, fmt.Errorf("generate compute ID: %w", err)
		}
		computeIDs[c.Name] = id
		computes = append(computes, &model.ComputeTarget{
			ID:          id,
			Name:        c.Name,
			WorkspaceID: workspaceID,
			Kind:        model.ComputeKind(c.Kind),
			VMSize:      c.VMSize,
			MinNodes:    c.MinNodes,
			MaxNodes:    c.MaxNodes,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	modelID, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate model ID: %w", err)
	}
	mdl := &model.Model{
		ID:          modelID,
		Name:        r.Model.Name,
		Version:     1,
		WorkspaceID: workspaceID,
		Path:        r.Model.Path,
		Description: r.Model.Description,
		Tags:        r.Model.Tags,
		CreatedAt:   now,
	}

	imageID, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate image ID: %w", err)
	}
	img := &model.Image{
		ID:            imageID,
		Name:          r.Image.Name,
		Registry:      r.Image.Registry,
		ModelID:       modelID,
		WorkspaceID:   workspaceID,
		BaseImage:     r.Image.BaseImage,
		ScoringScript: r.Image.ScoringScript,
		Manifest:      r.Image.Manifest,
		CreatedAt:     now,
	}

	serviceID, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("generate service ID: %w", err)
	}
	svc := &model.Service{
		ID:              serviceID,
		Name:            r.Service.Name,
		WorkspaceID:     workspaceID,
		ImageID:         imageID,
		ComputeTargetID: computeIDs[r.Service.Compute],
		Target:          model.ServiceTarget(r.Service.Target),
		CPU:             r.Service.CPU,
		MemoryGB:        r.Service.MemoryGB,
		Replicas:        r.Service.Replicas,
		AuthEnabled:     r.Service.AuthEnabled(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return &Models{
		Workspace: ws,
		Computes:  computes,
		Model:     mdl,
		Image:     img,
		Service:   svc,
	}, nil
}

// generateID generates a short random hex ID.
func generateID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
