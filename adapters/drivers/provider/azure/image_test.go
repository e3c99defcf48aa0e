package azure

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/mlopsworks/azmlops/domain/model"
)

func readTarEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	out := map[string]string{}
	tr := tar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar: %v", err)
		}
		if hdr.Typeflag == tar.TypeDir {
			out[hdr.Name] = ""
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read tar entry %s: %v", hdr.Name, err)
		}
		out[hdr.Name] = string(content)
	}
	return out
}

func TestBundleLayerTar(t *testing.T) {
	bundle := &model.ImageBuildBundle{
		Files: map[string][]byte{
			"server.py":        []byte("print('serve')"),
			"score.py":         []byte("print('score')"),
			"model/model.json": []byte(`{"coef":2}`),
		},
	}

	data, err := bundleLayerTar(bundle, "/var/azmlops")
	if err != nil {
		t.Fatalf("bundleLayerTar: %v", err)
	}

	entries := readTarEntries(t, data)
	if _, ok := entries["/var/azmlops/"]; !ok {
		t.Errorf("missing bundle dir entry")
	}
	if _, ok := entries["/var/azmlops/model/"]; !ok {
		t.Errorf("missing model dir entry")
	}
	if got := entries["/var/azmlops/server.py"]; got != "print('serve')" {
		t.Errorf("server.py content = %q", got)
	}
	if got := entries["/var/azmlops/model/model.json"]; got != `{"coef":2}` {
		t.Errorf("model.json content = %q", got)
	}
}

func TestBundleLayerTarNestedDirs(t *testing.T) {
	bundle := &model.ImageBuildBundle{
		Files: map[string][]byte{
			"model/weights/layer0/w.bin": []byte("w"),
		},
	}

	data, err := bundleLayerTar(bundle, "/var/azmlops")
	if err != nil {
		t.Fatalf("bundleLayerTar: %v", err)
	}

	entries := readTarEntries(t, data)
	for _, dir := range []string{
		"/var/azmlops/",
		"/var/azmlops/model/",
		"/var/azmlops/model/weights/",
		"/var/azmlops/model/weights/layer0/",
	} {
		if _, ok := entries[dir]; !ok {
			t.Errorf("missing ancestor dir entry %s", dir)
		}
	}
	// The base image owns everything above the bundle dir.
	if _, ok := entries["/var/"]; ok {
		t.Error("layer must not emit dirs outside the bundle dir")
	}
}

func TestBundleLayerTarDeterministic(t *testing.T) {
	bundle := &model.ImageBuildBundle{
		Files: map[string][]byte{
			"b.py": []byte("b"),
			"a.py": []byte("a"),
			"c.py": []byte("c"),
		},
	}

	first, err := bundleLayerTar(bundle, "/var/azmlops")
	if err != nil {
		t.Fatalf("bundleLayerTar: %v", err)
	}
	second, err := bundleLayerTar(bundle, "/var/azmlops")
	if err != nil {
		t.Fatalf("bundleLayerTar: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("layer tar is not deterministic")
	}
}

func TestBundleLayerTarEmpty(t *testing.T) {
	if _, err := bundleLayerTar(&model.ImageBuildBundle{}, "/var/azmlops"); err == nil {
		t.Errorf("expected error for empty bundle")
	}
}

func TestBundleEnv(t *testing.T) {
	bundle := &model.ImageBuildBundle{
		Env: map[string]string{
			"AZMLOPS_SCORE_SCRIPT": "/var/azmlops/score.py",
			"AZMLOPS_MODEL_PATH":   "/var/azmlops/model/model.json",
		},
	}

	got := bundleEnv(bundle)
	want := []string{
		"AZMLOPS_MODEL_PATH=/var/azmlops/model/model.json",
		"AZMLOPS_SCORE_SCRIPT=/var/azmlops/score.py",
	}
	if len(got) != len(want) {
		t.Fatalf("bundleEnv returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bundleEnv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
