package image

import (
	"context"
	"fmt"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/scoring"
	"github.com/oklog/ulid/v2"
)

// BuildInput represents a command to build a scoring image.
type BuildInput struct {
	// ImageID identifies the image record to build.
	ImageID string `json:"image_id"`
	// ModelID overrides the image's model reference, e.g. after a version
	// bump. Empty keeps the recorded reference.
	ModelID string `json:"model_id,omitempty"`
	// NoPush assembles the image without pushing it.
	NoPush bool `json:"no_push"`
}

// BuildOutput wraps the built image.
type BuildOutput struct {
	Image *model.Image `json:"image"`
	// Reused is true when an identical build was already recorded.
	Reused bool `json:"reused"`
}

// Build assembles the scoring bundle for the image's model, builds and
// pushes the container, and records the digest. Rebuilding an image whose
// model and inputs are unchanged is a no-op.
func (u *UseCase) Build(ctx context.Context, in *BuildInput) (*BuildOutput, error) {
	if in == nil || in.ImageID == "" {
		return nil, model.ErrImageInvalid
	}

	logger := logging.FromContext(ctx)

	img, err := u.Repos.Image.Get(ctx, in.ImageID)
	if err != nil {
		return nil, err
	}

	modelID := img.ModelID
	if in.ModelID != "" {
		modelID = in.ModelID
	}
	mdl, err := u.Repos.Model.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if mdl.Checksum == "" {
		return nil, fmt.Errorf("model %s is not registered: %w", mdl.Name, model.ErrModelInvalid)
	}

	if img.Digest != "" && img.ModelID == mdl.ID {
		logger.Info(ctx, "image already built", "image", img.Ref, "digest", img.Digest)
		return &BuildOutput{Image: img, Reused: true}, nil
	}

	if img.Tag == "" {
		img.Tag = fmt.Sprintf("%d", mdl.Version)
	}
	if img.BaseImage == "" {
		img.BaseImage = scoring.DefaultBaseImage
	}
	repository := img.Name
	if img.Registry != "" {
		repository = img.Registry + "/" + img.Name
	}
	img.Ref = fmt.Sprintf("%s:%s", repository, img.Tag)
	img.ModelID = mdl.ID

	bundle, err := scoring.Bundle(&scoring.BundleInput{
		ScoreScriptPath: img.ScoringScript,
		ManifestPath:    img.Manifest,
		ArtifactPath:    mdl.Path,
		ServiceName:     img.Name,
	})
	if err != nil {
		return nil, err
	}

	var opts []model.ImageBuildOption
	if in.NoPush {
		opts = append(opts, model.WithImageBuildNoPush())
	}
	digest, err := u.ImagePort.Build(ctx, img, bundle, opts...)
	if err != nil {
		return nil, err
	}

	img.Digest = digest
	img.BuildID = ulid.Make().String()
	img.State = "built"
	if err := u.Repos.Image.Update(ctx, img); err != nil {
		return nil, err
	}
	logger.Info(ctx, "image built", "image", img.Ref, "digest", img.Digest, "build_id", img.BuildID)
	return &BuildOutput{Image: img, Reused: false}, nil
}
