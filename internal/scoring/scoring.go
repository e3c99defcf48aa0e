// Package scoring materializes the serving bundle baked into scoring
// images: the embedded bootstrap, the user hook script (init/run), the
// dependency manifest, and the model artifact.
package scoring

import (
	_ "embed"
	"fmt"
	"os"
	"path"

	"github.com/mlopsworks/azmlops/domain/model"
)

//go:embed templates/server.py
var serverScript []byte

//go:embed templates/score.py
var defaultScoreScript []byte

//go:embed templates/requirements.txt
var defaultManifest []byte

const (
	// BundleDir is where the bundle lands inside the image.
	BundleDir = "/var/azmlops"
	// ServingPort is the default port the bootstrap listens on.
	ServingPort = 5001
	// DefaultBaseImage is the serving base used when the image config does
	// not name one.
	DefaultBaseImage = "docker.io/library/python:3.11-slim"
)

// BundleInput selects the pieces of a serving bundle. Empty paths select
// the embedded defaults.
type BundleInput struct {
	ScoreScriptPath string // user hook script with init()/run()
	ManifestPath    string // dependency manifest (requirements.txt style)
	ArtifactPath    string // registered model artifact (required)
	ServiceName     string
}

// Bundle reads the inputs and assembles an ImageBuildBundle. File names in
// the bundle are relative to BundleDir.
func Bundle(in *BundleInput) (*model.ImageBuildBundle, error) {
	if in == nil || in.ArtifactPath == "" {
		return nil, fmt.Errorf("scoring bundle requires a model artifact: %w", model.ErrModelInvalid)
	}

	artifact, err := os.ReadFile(in.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %q: %w", in.ArtifactPath, err)
	}

	score := defaultScoreScript
	if in.ScoreScriptPath != "" {
		score, err = os.ReadFile(in.ScoreScriptPath)
		if err != nil {
			return nil, fmt.Errorf("read score script %q: %w", in.ScoreScriptPath, err)
		}
	}

	manifest := defaultManifest
	if in.ManifestPath != "" {
		manifest, err = os.ReadFile(in.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("read dependency manifest %q: %w", in.ManifestPath, err)
		}
	}

	artifactName := path.Base(in.ArtifactPath)
	files := map[string][]byte{
		"server.py":             serverScript,
		"score.py":              score,
		"requirements.txt":      manifest,
		"model/" + artifactName: artifact,
	}

	env := map[string]string{
		"AZMLOPS_SCORE_SCRIPT": path.Join(BundleDir, "score.py"),
		"AZMLOPS_MODEL_PATH":   path.Join(BundleDir, "model", artifactName),
		"AZMLOPS_SERVICE_NAME": in.ServiceName,
	}

	return &model.ImageBuildBundle{Files: files, Env: env, Port: ServingPort}, nil
}
