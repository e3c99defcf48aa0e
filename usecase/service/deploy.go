package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// DeployInput represents a command to deploy a scoring service.
type DeployInput struct {
	// ServiceID identifies the service.
	ServiceID string `json:"service_id"`
	// Overwrite replaces a live service instead of reusing it.
	Overwrite bool `json:"overwrite"`
}

// DeployOutput wraps the deployed service.
type DeployOutput struct {
	Service *model.Service `json:"service"`
	// Reused is true when a live service was left in place.
	Reused bool `json:"reused"`
}

// Deploy rolls the service's image out to its target. A live service is
// reused unless Overwrite is set. Access keys are generated on first deploy
// of a key-authenticated service.
func (u *UseCase) Deploy(ctx context.Context, in *DeployInput) (*DeployOutput, error) {
	if in == nil || in.ServiceID == "" {
		return nil, model.ErrServiceInvalid
	}

	logger := logging.FromContext(ctx)

	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	ws, err := u.Repos.Workspace.Get(ctx, svc.WorkspaceID)
	if err != nil {
		return nil, err
	}
	img, err := u.Repos.Image.Get(ctx, svc.ImageID)
	if err != nil {
		return nil, err
	}
	if img.Digest == "" {
		return nil, fmt.Errorf("image %s is not built: %w", img.Name, model.ErrImageInvalid)
	}
	ct, err := u.computeTargetFor(ctx, svc)
	if err != nil {
		return nil, err
	}

	status, err := u.ServicePort.Status(ctx, ws, svc, ct)
	if err != nil {
		return nil, err
	}
	if status.Available && !in.Overwrite {
		// The record may predate the live endpoint (fresh store load);
		// adopt the probed URIs so invoke works against the reused service.
		if status.ScoringURI != "" && status.ScoringURI != svc.ScoringURI {
			svc.ScoringURI = status.ScoringURI
			svc.SwaggerURI = status.SwaggerURI
			svc.UpdatedAt = time.Now().UTC()
			if err := u.Repos.Service.Update(ctx, svc); err != nil {
				return nil, err
			}
		}
		logger.Info(ctx, "service reused", "service", svc.Name, "scoring_uri", svc.ScoringURI)
		return &DeployOutput{Service: svc, Reused: true}, nil
	}
	if status.Available && in.Overwrite {
		logger.Info(ctx, "replacing live service", "service", svc.Name)
		if err := u.ServicePort.Delete(ctx, ws, svc, ct); err != nil {
			return nil, err
		}
	}

	if svc.AuthEnabled && svc.PrimaryKey == "" {
		if svc.PrimaryKey, err = newAuthKey(); err != nil {
			return nil, err
		}
		if svc.SecondaryKey, err = newAuthKey(); err != nil {
			return nil, err
		}
	}

	var opts []model.ServiceDeployOption
	if in.Overwrite {
		opts = append(opts, model.WithServiceDeployOverwrite())
	}
	if err := u.ServicePort.Deploy(ctx, ws, svc, img, ct, opts...); err != nil {
		return nil, err
	}

	svc.State = "deployed"
	svc.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Service.Update(ctx, svc); err != nil {
		return nil, err
	}
	logger.Info(ctx, "service deployed", "service", svc.Name, "scoring_uri", svc.ScoringURI)
	return &DeployOutput{Service: svc, Reused: false}, nil
}

// newAuthKey generates a random endpoint access key.
func newAuthKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate auth key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
