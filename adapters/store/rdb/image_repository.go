package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlopsworks/azmlops/domain"
	"github.com/mlopsworks/azmlops/domain/model"
	"gorm.io/gorm"
)

// ImageRepository is a GORM-backed implementation of domain.ImageRepository.
type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func imageToRecord(img *model.Image) *ImageRecord {
	return &ImageRecord{
		ID:            img.ID,
		Name:          img.Name,
		Tag:           img.Tag,
		Registry:      img.Registry,
		ModelID:       img.ModelID,
		WorkspaceID:   img.WorkspaceID,
		BaseImage:     img.BaseImage,
		Ref:           img.Ref,
		Digest:        img.Digest,
		BuildID:       img.BuildID,
		ScoringScript: img.ScoringScript,
		Manifest:      img.Manifest,
		State:         img.State,
		CreatedAt:     img.CreatedAt,
	}
}

func imageToModel(r *ImageRecord) *model.Image {
	return &model.Image{
		ID:            r.ID,
		Name:          r.Name,
		Tag:           r.Tag,
		Registry:      r.Registry,
		ModelID:       r.ModelID,
		WorkspaceID:   r.WorkspaceID,
		BaseImage:     r.BaseImage,
		Ref:           r.Ref,
		Digest:        r.Digest,
		BuildID:       r.BuildID,
		ScoringScript: r.ScoringScript,
		Manifest:      r.Manifest,
		State:         r.State,
		CreatedAt:     r.CreatedAt,
	}
}

func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	rec := imageToRecord(img)
	if rec.ID == "" {
		rec.ID = "img-" + uuid.NewString()
		img.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ImageRepository) Get(ctx context.Context, id string) (*model.Image, error) {
	var rec ImageRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrImageNotFound
		}
		return nil, err
	}
	return imageToModel(&rec), nil
}

func (r *ImageRepository) List(ctx context.Context) ([]*model.Image, error) {
	var recs []ImageRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Image, 0, len(recs))
	for i := range recs {
		out = append(out, imageToModel(&recs[i]))
	}
	return out, nil
}

func (r *ImageRepository) Update(ctx context.Context, img *model.Image) error {
	rec := imageToRecord(img)
	return r.db.WithContext(ctx).Model(&ImageRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ImageRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrImageNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.ImageRepository = (*ImageRepository)(nil)
