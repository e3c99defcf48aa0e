package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestBundle_Defaults(t *testing.T) {
	dir := t.TempDir()
	artifact := writeFile(t, dir, "model.json", `{"coef": 2.0, "intercept": 1.0}`)

	b, err := Bundle(&BundleInput{ArtifactPath: artifact, ServiceName: "ridge-svc"})
	if err != nil {
		t.Fatalf("Bundle returned error: %v", err)
	}

	for _, name := range []string{"server.py", "score.py", "requirements.txt", "model/model.json"} {
		if _, ok := b.Files[name]; !ok {
			t.Errorf("bundle missing %s", name)
		}
	}
	if got := string(b.Files["model/model.json"]); !strings.Contains(got, "coef") {
		t.Errorf("artifact content not carried: %q", got)
	}
	if !strings.Contains(string(b.Files["server.py"]), "/score") {
		t.Error("bootstrap does not serve /score")
	}
	if b.Env["AZMLOPS_MODEL_PATH"] != "/var/azmlops/model/model.json" {
		t.Errorf("unexpected model path env: %q", b.Env["AZMLOPS_MODEL_PATH"])
	}
	if b.Port != ServingPort {
		t.Errorf("expected port %d, got %d", ServingPort, b.Port)
	}
}

func TestBundle_UserScriptAndManifest(t *testing.T) {
	dir := t.TempDir()
	artifact := writeFile(t, dir, "model.rds", "opaque")
	script := writeFile(t, dir, "my_score.py", "def init():\n    pass\ndef run(raw):\n    return 1\n")
	manifest := writeFile(t, dir, "requirements.txt", "numpy==1.26.0\n")

	b, err := Bundle(&BundleInput{
		ArtifactPath:    artifact,
		ScoreScriptPath: script,
		ManifestPath:    manifest,
	})
	if err != nil {
		t.Fatalf("Bundle returned error: %v", err)
	}
	if !strings.Contains(string(b.Files["score.py"]), "def run(raw)") {
		t.Error("user score script not used")
	}
	if string(b.Files["requirements.txt"]) != "numpy==1.26.0\n" {
		t.Error("user manifest not used")
	}
	if _, ok := b.Files["model/model.rds"]; !ok {
		t.Error("artifact not placed under model/")
	}
}

func TestBundle_Errors(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		if _, err := Bundle(nil); err == nil {
			t.Fatal("expected error for nil input")
		}
	})
	t.Run("missing artifact", func(t *testing.T) {
		if _, err := Bundle(&BundleInput{ArtifactPath: "/does/not/exist"}); err == nil {
			t.Fatal("expected error for missing artifact")
		}
	})
	t.Run("missing score script", func(t *testing.T) {
		dir := t.TempDir()
		artifact := writeFile(t, dir, "m.bin", "x")
		_, err := Bundle(&BundleInput{ArtifactPath: artifact, ScoreScriptPath: "/nope.py"})
		if err == nil {
			t.Fatal("expected error for missing score script")
		}
	})
}
