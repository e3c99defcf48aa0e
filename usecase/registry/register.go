package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// RegisterInput represents a command to register a model artifact.
type RegisterInput struct {
	// ModelID identifies the model record describing the artifact.
	ModelID string `json:"model_id"`
}

// RegisterOutput wraps the registered model.
type RegisterOutput struct {
	Model *model.Model `json:"model"`
	// Reused is true when the artifact was already registered under this
	// name with the same content.
	Reused bool `json:"reused"`
}

// Register hashes the artifact and records it. Registering unchanged content
// is a no-op; changed content under the same name creates the next version.
func (u *UseCase) Register(ctx context.Context, in *RegisterInput) (*RegisterOutput, error) {
	if in == nil || in.ModelID == "" {
		return nil, model.ErrModelInvalid
	}

	logger := logging.FromContext(ctx)

	m, err := u.Repos.Model.Get(ctx, in.ModelID)
	if err != nil {
		return nil, err
	}

	sum, err := fileChecksum(m.Path)
	if err != nil {
		return nil, fmt.Errorf("checksum model artifact %q: %w", m.Path, err)
	}

	if m.Checksum == sum {
		logger.Info(ctx, "model already registered", "model", m.Name, "version", m.Version)
		return &RegisterOutput{Model: m, Reused: true}, nil
	}

	if m.Checksum == "" {
		// First registration of a declared model: fill the checksum in
		// place, keeping ID and version stable for image references.
		registered := *m
		registered.Checksum = sum
		registered.CreatedAt = time.Now().UTC()
		if err := u.Repos.Model.Delete(ctx, m.ID); err != nil {
			return nil, err
		}
		if err := u.Repos.Model.Create(ctx, &registered); err != nil {
			// Put the declared record back so a failed fill does not lose it.
			if restoreErr := u.Repos.Model.Create(ctx, m); restoreErr != nil {
				return nil, fmt.Errorf("register model %s: %w (restore failed: %v)", m.Name, err, restoreErr)
			}
			return nil, err
		}
		logger.Info(ctx, "model registered", "model", registered.Name, "version", registered.Version)
		return &RegisterOutput{Model: &registered, Reused: false}, nil
	}

	// Artifact content changed: register the next version.
	versions, err := u.Repos.Model.ListVersions(ctx, m.Name)
	if err != nil {
		return nil, err
	}
	next := 1
	for _, v := range versions {
		if v.Version >= next {
			next = v.Version + 1
		}
	}

	bumped := &model.Model{
		Name:        m.Name,
		Version:     next,
		WorkspaceID: m.WorkspaceID,
		Path:        m.Path,
		Checksum:    sum,
		Description: m.Description,
		Tags:        m.Tags,
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.Repos.Model.Create(ctx, bumped); err != nil {
		return nil, err
	}
	logger.Info(ctx, "model version registered", "model", bumped.Name, "version", bumped.Version)
	return &RegisterOutput{Model: bumped, Reused: false}, nil
}

// fileChecksum returns the hex sha256 of a file's content.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
