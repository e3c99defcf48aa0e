package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
	"gorm.io/gorm"
)

// WorkspaceRepository is a GORM-backed implementation of domain.WorkspaceRepository.
type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func workspaceToRecord(w *model.Workspace) *WorkspaceRecord {
	return &WorkspaceRecord{
		ID:             w.ID,
		Name:           w.Name,
		Driver:         w.Driver,
		SubscriptionID: w.SubscriptionID,
		ResourceGroup:  w.ResourceGroup,
		Location:       w.Location,
		StorageAccount: w.StorageAccount,
		KeyVault:       w.KeyVault,
		State:          w.State,
		Settings:       encodeMap(w.Settings),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func workspaceToModel(r *WorkspaceRecord) *model.Workspace {
	return &model.Workspace{
		ID:             r.ID,
		Name:           r.Name,
		Driver:         r.Driver,
		SubscriptionID: r.SubscriptionID,
		ResourceGroup:  r.ResourceGroup,
		Location:       r.Location,
		StorageAccount: r.StorageAccount,
		KeyVault:       r.KeyVault,
		State:          r.State,
		Settings:       decodeMap(r.Settings),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *model.Workspace) error {
	rec := workspaceToRecord(w)
	if rec.ID == "" {
		rec.ID = "ws-" + uuid.NewString()
		w.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *WorkspaceRepository) Get(ctx context.Context, id string) (*model.Workspace, error) {
	var rec WorkspaceRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return workspaceToModel(&rec), nil
}

func (r *WorkspaceRepository) List(ctx context.Context) ([]*model.Workspace, error) {
	var recs []WorkspaceRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Workspace, 0, len(recs))
	for i := range recs {
		out = append(out, workspaceToModel(&recs[i]))
	}
	return out, nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *model.Workspace) error {
	rec := workspaceToRecord(w)
	return r.db.WithContext(ctx).Model(&WorkspaceRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&WorkspaceRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrWorkspaceNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.WorkspaceRepository = (*WorkspaceRepository)(nil)
