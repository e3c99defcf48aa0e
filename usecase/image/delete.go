package image

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// DeleteInput represents a command to delete a built image.
type DeleteInput struct {
	// ImageID identifies the image record.
	ImageID string `json:"image_id"`
	// KeepRecord removes only the pushed tag, leaving the record behind.
	KeepRecord bool `json:"keep_record"`
}

// Delete removes the pushed tag from the registry and the image record.
// An image that was never built is removed record-only.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) error {
	if in == nil || in.ImageID == "" {
		return model.ErrImageInvalid
	}

	img, err := u.Repos.Image.Get(ctx, in.ImageID)
	if err != nil {
		return err
	}

	if img.Ref != "" {
		if err := u.ImagePort.Delete(ctx, img); err != nil {
			return err
		}
	}
	if in.KeepRecord {
		// The pushed tag is gone; clear the build fields so the next build
		// does not reuse a dangling digest.
		img.Digest = ""
		img.BuildID = ""
		img.State = ""
		return u.Repos.Image.Update(ctx, img)
	}
	return u.Repos.Image.Delete(ctx, img.ID)
}
