package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
	"gorm.io/gorm"
)

// ComputeTargetRepository is a GORM-backed implementation of domain.ComputeTargetRepository.
type ComputeTargetRepository struct {
	db *gorm.DB
}

func NewComputeTargetRepository(db *gorm.DB) *ComputeTargetRepository {
	return &ComputeTargetRepository{db: db}
}

func computeToRecord(c *model.ComputeTarget) *ComputeTargetRecord {
	return &ComputeTargetRecord{
		ID:          c.ID,
		Name:        c.Name,
		WorkspaceID: c.WorkspaceID,
		Kind:        string(c.Kind),
		VMSize:      c.VMSize,
		MinNodes:    c.MinNodes,
		MaxNodes:    c.MaxNodes,
		State:       c.State,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func computeToModel(r *ComputeTargetRecord) *model.ComputeTarget {
	return &model.ComputeTarget{
		ID:          r.ID,
		Name:        r.Name,
		WorkspaceID: r.WorkspaceID,
		Kind:        model.ComputeKind(r.Kind),
		VMSize:      r.VMSize,
		MinNodes:    r.MinNodes,
		MaxNodes:    r.MaxNodes,
		State:       r.State,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *ComputeTargetRepository) Create(ctx context.Context, c *model.ComputeTarget) error {
	rec := computeToRecord(c)
	if rec.ID == "" {
		rec.ID = "ct-" + uuid.NewString()
		c.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ComputeTargetRepository) Get(ctx context.Context, id string) (*model.ComputeTarget, error) {
	var rec ComputeTargetRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrComputeTargetNotFound
		}
		return nil, err
	}
	return computeToModel(&rec), nil
}

func (r *ComputeTargetRepository) List(ctx context.Context) ([]*model.ComputeTarget, error) {
	var recs []ComputeTargetRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.ComputeTarget, 0, len(recs))
	for i := range recs {
		out = append(out, computeToModel(&recs[i]))
	}
	return out, nil
}

func (r *ComputeTargetRepository) Update(ctx context.Context, c *model.ComputeTarget) error {
	rec := computeToRecord(c)
	return r.db.WithContext(ctx).Model(&ComputeTargetRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *ComputeTargetRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ComputeTargetRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrComputeTargetNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.ComputeTargetRepository = (*ComputeTargetRepository)(nil)
