package repository

import (
	"context"

	"labquote/internal/model"

	"gorm.io/gorm"
)

type AuditLogFilter struct {
	Action string
	UserID string
	Page   int
	Limit  int
}

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int64, error) {
	query := GetDB(ctx, r.db).Model(&model.AuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("User").
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&logs).Error
	return logs, total, err
}
