package repository

import (
	"context"

	"labquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuotationListFilter struct {
	Status string // Sent, Done, Reject or empty for all
	Page   int
	Limit  int
}

type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	Update(ctx context.Context, quotation *model.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error)
	CountByRefPrefix(ctx context.Context, prefix string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumGrandTotal(ctx context.Context, status string) (string, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Create(quotation).Error
}

func (r *quotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Save(quotation).Error
}

func (r *quotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	if err := GetDB(ctx, r.db).First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	if err := GetDB(ctx, r.db).
		Preload("Enquiry").
		Preload("Items", orderByPosition).
		Preload("Items.Product").
		First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// orderByPosition keeps preloaded quotation lines in worksheet row order.
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func (r *quotationRepository) List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error) {
	var quotations []model.Quotation
	var total int64

	count := GetDB(ctx, r.db).Model(&model.Quotation{})
	if filter.Status != "" {
		count = count.Where("status = ?", filter.Status)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	fetch := GetDB(ctx, r.db).Preload("Enquiry").Preload("Items", orderByPosition).Preload("Items.Product")
	if filter.Status != "" {
		fetch = fetch.Where("status = ?", filter.Status)
	}
	if err := fetch.Order("created_at desc").Offset(offset).Limit(filter.Limit).Find(&quotations).Error; err != nil {
		return nil, 0, err
	}

	return quotations, total, nil
}

func (r *quotationRepository) CountByRefPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Quotation{}).Where("ref_no LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quotationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db).Model(&model.Quotation{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumGrandTotal returns the summed grand totals as a decimal string so the
// caller never touches floats.
func (r *quotationRepository) SumGrandTotal(ctx context.Context, status string) (string, error) {
	var sum *string
	db := GetDB(ctx, r.db).Model(&model.Quotation{}).Select("SUM(grand_total)::text")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Scan(&sum).Error; err != nil {
		return "0", err
	}
	if sum == nil {
		return "0", nil
	}
	return *sum, nil
}
