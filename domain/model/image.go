package model

import (
	"context"
	"time"
)

// Image is a built, immutable container bundling a model artifact and its
// serving code. Ref points at the pushed tag; Digest identifies the exact
// build.
type Image struct {
	ID            string
	Name          string
	Tag           string
	Registry      string // repository prefix, e.g. myregistry.azurecr.io/score
	ModelID       string // references Model
	WorkspaceID   string // references Workspace
	BaseImage     string
	Ref           string // full reference, e.g. myregistry.azurecr.io/score/ridge:3
	Digest        string
	BuildID       string // ULID assigned per build
	ScoringScript string // user hook script path; empty selects the embedded default
	Manifest      string // dependency manifest path; empty selects the embedded default
	State         string
	CreatedAt     time.Time
}

// ImageBuildBundle is the materialized build input handed to the driver:
// file name -> content, rooted at the serving directory inside the image.
type ImageBuildBundle struct {
	Files map[string][]byte
	Env   map[string]string // baked into the image config
	Port  int               // port the serving bootstrap listens on
}

// Operation-scoped options and functional option types.
type ImageBuildOptions struct{ Push bool }
type ImageDeleteOptions struct{ Force bool }

type ImageBuildOption func(*ImageBuildOptions)
type ImageDeleteOption func(*ImageDeleteOptions)

func WithImageBuildNoPush() ImageBuildOption {
	return func(o *ImageBuildOptions) { o.Push = false }
}

// ImagePort is an interface (domain port) for container image operations.
type ImagePort interface {
	// Build assembles the bundle onto the base image, pushes it, and fills
	// img.Digest. The returned digest is the pushed manifest digest.
	Build(ctx context.Context, img *Image, bundle *ImageBuildBundle, opts ...ImageBuildOption) (string, error)
	// Delete removes the pushed tag from the registry. Best effort; a tag
	// that is already gone is not an error.
	Delete(ctx context.Context, img *Image, opts ...ImageDeleteOption) error
}
