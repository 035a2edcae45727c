package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"labquote/internal/model"
	"labquote/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	// Record writes an audit entry. Failures are logged and swallowed so
	// auditing never blocks the business operation that triggered it.
	Record(ctx context.Context, actorID, action, entityID, entityName string, detail interface{})
	List(ctx context.Context, filter repository.AuditLogFilter) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, actorID, action, entityID, entityName string, detail interface{}) {
	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		CreatedAt:  time.Now(),
	}
	if actorID != "" {
		if id, err := uuid.Parse(actorID); err == nil {
			entry.UserID = &id
		}
	}
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			entry.Details = string(raw)
		}
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		log.Printf("failed to write audit log for %s %s: %v", action, entityID, err)
	}
}

func (s *auditService) List(ctx context.Context, filter repository.AuditLogFilter) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		item := AuditLogResponse{
			ID:         entry.ID.String(),
			Action:     entry.Action,
			EntityID:   entry.EntityID,
			EntityName: entry.EntityName,
			Details:    entry.Details,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.UserID != nil {
			item.UserID = entry.UserID.String()
		}
		if entry.User != nil {
			item.UserName = entry.User.Name
		}
		result = append(result, item)
	}
	return result, total, nil
}
