package repository

import (
	"context"

	"labquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Enquiry, error)
	FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Enquiry, error)
	List(ctx context.Context, page, limit int, status string) ([]model.Enquiry, int64, error)
	MarkSeen(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type enquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	return GetDB(ctx, r.db).Create(enquiry).Error
}

func (r *enquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Enquiry, error) {
	var enquiry model.Enquiry
	if err := GetDB(ctx, r.db).First(&enquiry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Enquiry, error) {
	var enquiry model.Enquiry
	if err := GetDB(ctx, r.db).Preload("Products.Product").First(&enquiry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepository) List(ctx context.Context, page, limit int, status string) ([]model.Enquiry, int64, error) {
	var enquiries []model.Enquiry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Enquiry{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := GetDB(ctx, r.db).Preload("Products.Product")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	if err := fetch.Order("created_at desc").Offset(offset).Limit(limit).Find(&enquiries).Error; err != nil {
		return nil, 0, err
	}

	return enquiries, total, nil
}

func (r *enquiryRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Enquiry{}).Where("id = ?", id).Update("is_seen", true).Error
}

func (r *enquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Enquiry{}).Where("id = ?", id).Update("status", status).Error
}

func (r *enquiryRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db).Model(&model.Enquiry{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
