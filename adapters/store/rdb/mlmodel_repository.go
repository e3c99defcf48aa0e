package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
	"gorm.io/gorm"
)

// ModelRepository is a GORM-backed implementation of domain.ModelRepository.
// Model records are immutable, so there is no Update.
type ModelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func mlmodelToRecord(m *model.Model) *ModelRecord {
	return &ModelRecord{
		ID:          m.ID,
		Name:        m.Name,
		Version:     m.Version,
		WorkspaceID: m.WorkspaceID,
		Path:        m.Path,
		Checksum:    m.Checksum,
		Description: m.Description,
		Tags:        encodeMap(m.Tags),
		CreatedAt:   m.CreatedAt,
	}
}

func mlmodelToModel(r *ModelRecord) *model.Model {
	return &model.Model{
		ID:          r.ID,
		Name:        r.Name,
		Version:     r.Version,
		WorkspaceID: r.WorkspaceID,
		Path:        r.Path,
		Checksum:    r.Checksum,
		Description: r.Description,
		Tags:        decodeMap(r.Tags),
		CreatedAt:   r.CreatedAt,
	}
}

func (r *ModelRepository) Create(ctx context.Context, m *model.Model) error {
	rec := mlmodelToRecord(m)
	if rec.ID == "" {
		rec.ID = "mdl-" + uuid.NewString()
		m.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ModelRepository) Get(ctx context.Context, id string) (*model.Model, error) {
	var rec ModelRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrModelNotFound
		}
		return nil, err
	}
	return mlmodelToModel(&rec), nil
}

func (r *ModelRepository) List(ctx context.Context) ([]*model.Model, error) {
	var recs []ModelRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Model, 0, len(recs))
	for i := range recs {
		out = append(out, mlmodelToModel(&recs[i]))
	}
	return out, nil
}

func (r *ModelRepository) ListVersions(ctx context.Context, name string) ([]*model.Model, error) {
	var recs []ModelRecord
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("version ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Model, 0, len(recs))
	for i := range recs {
		out = append(out, mlmodelToModel(&recs[i]))
	}
	return out, nil
}

func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ModelRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrModelNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.ModelRepository = (*ModelRepository)(nil)
