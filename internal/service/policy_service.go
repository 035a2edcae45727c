package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"labquote/internal/model"
	"labquote/internal/quotation"
	"labquote/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type PolicyResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Label    string `json:"label"`
	Text     string `json:"text"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position"`
	Custom   bool   `json:"custom"`
}

type CreatePolicyRequest struct {
	Label string `json:"label" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

type UpdatePolicyRequest struct {
	Label   *string `json:"label"`
	Text    *string `json:"text"`
	Enabled *bool   `json:"enabled"`
}

// --- Interface ---

type PolicyService interface {
	// ListPolicies returns the owner's terms, seeding the built-in defaults
	// on first read.
	ListPolicies(ctx context.Context, ownerID string) ([]PolicyResponse, error)
	CreatePolicy(ctx context.Context, ownerID string, req CreatePolicyRequest) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, ownerID string, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	DeletePolicy(ctx context.Context, ownerID string, id string) error
}

type policyService struct {
	repo      repository.PolicyRepository
	txManager repository.TransactionManager
}

func NewPolicyService(repo repository.PolicyRepository, txManager repository.TransactionManager) PolicyService {
	return &policyService{repo: repo, txManager: txManager}
}

// --- Implementation ---

func (s *policyService) ListPolicies(ctx context.Context, ownerID string) ([]PolicyResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	var policies []model.Policy
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		policies, err = s.repo.FindByOwner(txCtx, owner)
		if err != nil {
			return err
		}
		if len(policies) > 0 {
			return nil
		}

		seed := make([]model.Policy, 0)
		for i, def := range quotation.DefaultPolicies() {
			seed = append(seed, model.Policy{
				OwnerID:  owner,
				Code:     def.Code,
				Label:    def.Label,
				Text:     def.Text,
				Enabled:  def.Enabled,
				Position: i,
			})
		}
		if err := s.repo.CreateBatch(txCtx, seed); err != nil {
			return fmt.Errorf("failed to seed default policies: %w", err)
		}
		policies = seed
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		result = append(result, toPolicyResponse(p))
	}
	return result, nil
}

func (s *policyService) CreatePolicy(ctx context.Context, ownerID string, req CreatePolicyRequest) (PolicyResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return PolicyResponse{}, fmt.Errorf("invalid owner id: %w", err)
	}

	existing, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		return PolicyResponse{}, err
	}

	policy := model.Policy{
		OwnerID:  owner,
		Code:     customPolicyCode(req.Label),
		Label:    req.Label,
		Text:     req.Text,
		Enabled:  true,
		Position: len(existing),
	}
	if err := s.repo.Create(ctx, &policy); err != nil {
		return PolicyResponse{}, fmt.Errorf("failed to create policy: %w", err)
	}
	return toPolicyResponse(policy), nil
}

func (s *policyService) UpdatePolicy(ctx context.Context, ownerID string, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return PolicyResponse{}, fmt.Errorf("invalid owner id: %w", err)
	}
	policyID, err := uuid.Parse(id)
	if err != nil {
		return PolicyResponse{}, fmt.Errorf("invalid policy id: %w", err)
	}

	policy, err := s.repo.FindByID(ctx, policyID)
	if err != nil {
		return PolicyResponse{}, fmt.Errorf("policy not found: %w", err)
	}
	if policy.OwnerID != owner {
		return PolicyResponse{}, fmt.Errorf("policy does not belong to this user")
	}

	if req.Label != nil {
		policy.Label = *req.Label
	}
	if req.Text != nil {
		policy.Text = *req.Text
	}
	if req.Enabled != nil {
		policy.Enabled = *req.Enabled
	}

	if err := s.repo.Update(ctx, policy); err != nil {
		return PolicyResponse{}, fmt.Errorf("failed to update policy: %w", err)
	}
	return toPolicyResponse(*policy), nil
}

func (s *policyService) DeletePolicy(ctx context.Context, ownerID string, id string) error {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return fmt.Errorf("invalid owner id: %w", err)
	}
	policyID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid policy id: %w", err)
	}

	policy, err := s.repo.FindByID(ctx, policyID)
	if err != nil {
		return fmt.Errorf("policy not found: %w", err)
	}
	if policy.OwnerID != owner {
		return fmt.Errorf("policy does not belong to this user")
	}
	// Built-in lines are toggled off, not deleted, so the seed stays intact.
	if !strings.HasPrefix(policy.Code, "custom_") {
		return fmt.Errorf("built-in policies can only be disabled")
	}

	return s.repo.Delete(ctx, owner, policyID)
}

// --- Helpers ---

func customPolicyCode(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	if len(slug) > 30 {
		slug = slug[:30]
	}
	return fmt.Sprintf("custom_%s_%d", slug, time.Now().UnixMilli())
}

func toPolicyResponse(p model.Policy) PolicyResponse {
	return PolicyResponse{
		ID:       p.ID.String(),
		Code:     p.Code,
		Label:    p.Label,
		Text:     p.Text,
		Enabled:  p.Enabled,
		Position: p.Position,
		Custom:   strings.HasPrefix(p.Code, "custom_"),
	}
}
