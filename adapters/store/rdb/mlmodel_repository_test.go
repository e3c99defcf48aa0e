package rdb

import (
	"context"
	"errors"
	"testing"

	"github.com/mlopsworks/azmlops/domain/model"
)

func newTestModelRepository(t *testing.T) *ModelRepository {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("OpenFromURL: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return NewModelRepository(db)
}

func TestModelRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestModelRepository(t)

	m := &model.Model{
		Name:        "ridge",
		Version:     1,
		WorkspaceID: "ws-1",
		Path:        "model.pkl",
		Checksum:    "sha256:abc",
		Tags:        map[string]string{"framework": "sklearn"},
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == "" {
		t.Fatal("Create should assign an ID")
	}

	got, err := repo.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "ridge" || got.Checksum != "sha256:abc" {
		t.Errorf("unexpected model: %+v", got)
	}
	if got.Tags["framework"] != "sklearn" {
		t.Errorf("tags not round-tripped: %+v", got.Tags)
	}

	v2 := &model.Model{Name: "ridge", Version: 2, WorkspaceID: "ws-1", Path: "model.pkl", Checksum: "sha256:def"}
	if err := repo.Create(ctx, v2); err != nil {
		t.Fatalf("Create v2: %v", err)
	}
	versions, err := repo.ListVersions(ctx, "ridge")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 2 || versions[0].Version != 1 || versions[1].Version != 2 {
		t.Errorf("unexpected versions: %+v", versions)
	}

	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, m.ID); !errors.Is(err, model.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, m.ID); !errors.Is(err, model.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound on double delete, got %v", err)
	}
}
