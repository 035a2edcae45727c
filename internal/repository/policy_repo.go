package repository

import (
	"context"

	"labquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PolicyRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Policy, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Policy, error)
	CreateBatch(ctx context.Context, policies []model.Policy) error
	Create(ctx context.Context, policy *model.Policy) error
	Update(ctx context.Context, policy *model.Policy) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type policyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Policy, error) {
	var policies []model.Policy
	if err := GetDB(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("position asc, created_at asc").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *policyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Policy, error) {
	var policy model.Policy
	if err := GetDB(ctx, r.db).First(&policy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) CreateBatch(ctx context.Context, policies []model.Policy) error {
	if len(policies) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&policies).Error
}

func (r *policyRepository) Create(ctx context.Context, policy *model.Policy) error {
	return GetDB(ctx, r.db).Create(policy).Error
}

func (r *policyRepository) Update(ctx context.Context, policy *model.Policy) error {
	return GetDB(ctx, r.db).Save(policy).Error
}

func (r *policyRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&model.Policy{}).Error
}
