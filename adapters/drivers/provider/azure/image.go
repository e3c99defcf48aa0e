package azure

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/scoring"
)

// ImageBuild appends the scoring bundle as a layer on the base image, bakes
// the serving entrypoint into the config, pushes the result and returns the
// manifest digest. No container daemon is involved; everything goes through
// the registry API.
func (d *driver) ImageBuild(ctx context.Context, ws *model.Workspace, img *model.Image, bundle *model.ImageBuildBundle, opts ...model.ImageBuildOption) (digest string, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ImageBuild")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 20*time.Minute)
	defer cancel()

	options := &model.ImageBuildOptions{Push: true}
	for _, o := range opts {
		o(options)
	}

	logger := logging.FromContext(ctx).With("image", img.Ref, "base", img.BaseImage)

	baseRef, err := name.ParseReference(img.BaseImage)
	if err != nil {
		return "", fmt.Errorf("parse base image reference %q: %w", img.BaseImage, err)
	}
	targetRef, err := name.ParseReference(img.Ref)
	if err != nil {
		return "", fmt.Errorf("parse image reference %q: %w", img.Ref, err)
	}

	base, err := remote.Image(baseRef,
		remote.WithAuthFromKeychain(authn.DefaultKeychain),
		remote.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("pull base image %s: %w", img.BaseImage, err)
	}

	layerTar, err := bundleLayerTar(bundle, scoring.BundleDir)
	if err != nil {
		return "", fmt.Errorf("assemble bundle layer: %w", err)
	}
	layer, err := tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(layerTar)), nil
	})
	if err != nil {
		return "", fmt.Errorf("build bundle layer: %w", err)
	}

	withLayer, err := mutate.AppendLayers(base, layer)
	if err != nil {
		return "", fmt.Errorf("append bundle layer: %w", err)
	}

	cfg, err := withLayer.ConfigFile()
	if err != nil {
		return "", fmt.Errorf("read image config: %w", err)
	}
	cfg = cfg.DeepCopy()
	cfg.Config.Env = append(cfg.Config.Env, bundleEnv(bundle)...)
	cfg.Config.Entrypoint = []string{"python", path.Join(scoring.BundleDir, "server.py")}
	cfg.Config.Cmd = nil
	if cfg.Config.ExposedPorts == nil {
		cfg.Config.ExposedPorts = map[string]struct{}{}
	}
	cfg.Config.ExposedPorts[fmt.Sprintf("%d/tcp", bundle.Port)] = struct{}{}

	built, err := mutate.ConfigFile(withLayer, cfg)
	if err != nil {
		return "", fmt.Errorf("set image config: %w", err)
	}

	dg, err := built.Digest()
	if err != nil {
		return "", fmt.Errorf("compute image digest: %w", err)
	}

	if options.Push {
		logger.Info(ctx, "pushing image")
		if err = remote.Write(targetRef, built,
			remote.WithAuthFromKeychain(authn.DefaultKeychain),
			remote.WithContext(ctx)); err != nil {
			return "", fmt.Errorf("push image %s: %w", img.Ref, err)
		}
	}

	logger.Info(ctx, "image built", "digest", dg.String())
	return dg.String(), nil
}

// ImageDelete removes the pushed tag from the registry. A tag that is
// already gone is not an error.
func (d *driver) ImageDelete(ctx context.Context, ws *model.Workspace, img *model.Image, opts ...model.ImageDeleteOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ImageDelete")
	defer func() { cleanup(err) }()

	ref, err := name.ParseReference(img.Ref)
	if err != nil {
		return fmt.Errorf("parse image reference %q: %w", img.Ref, err)
	}

	err = remote.Delete(ref,
		remote.WithAuthFromKeychain(authn.DefaultKeychain),
		remote.WithContext(ctx))
	if err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) && (terr.StatusCode == http.StatusNotFound || terr.StatusCode == http.StatusMethodNotAllowed) {
			// Already gone, or the registry does not support tag deletion.
			return nil
		}
		return fmt.Errorf("delete image %s: %w", img.Ref, err)
	}
	return nil
}

// bundleLayerTar renders the bundle files as a tar layer rooted at dir.
// Entries are emitted in sorted order so the layer digest is reproducible.
func bundleLayerTar(bundle *model.ImageBuildBundle, dir string) ([]byte, error) {
	if bundle == nil || len(bundle.Files) == 0 {
		return nil, fmt.Errorf("bundle is empty")
	}

	names := make([]string, 0, len(bundle.Files))
	for n := range bundle.Files {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	// Parent directories first so extraction never depends on tar ordering.
	// Ancestors inside dir are emitted too; dir's own parents belong to the
	// base image and are left alone.
	seen := map[string]bool{}
	var writeDir func(p string) error
	writeDir = func(p string) error {
		if p == "." || p == "/" || seen[p] {
			return nil
		}
		if p != dir {
			if err := writeDir(path.Dir(p)); err != nil {
				return err
			}
		}
		seen[p] = true
		return tw.WriteHeader(&tar.Header{
			Name:     p + "/",
			Typeflag: tar.TypeDir,
			Mode:     0o755,
		})
	}
	if err := writeDir(dir); err != nil {
		return nil, err
	}

	for _, n := range names {
		full := path.Join(dir, n)
		if err := writeDir(path.Dir(full)); err != nil {
			return nil, err
		}
		content := bundle.Files[n]
		if err := tw.WriteHeader(&tar.Header{
			Name:     full,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}); err != nil {
			return nil, err
		}
		if _, err := tw.Write(content); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bundleEnv renders the bundle env map as sorted KEY=VALUE pairs.
func bundleEnv(bundle *model.ImageBuildBundle) []string {
	keys := make([]string, 0, len(bundle.Env))
	for k := range bundle.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, bundle.Env[k]))
	}
	return out
}
