package service

import (
	"context"

	"medichain-service/internal/domain/entity"
	"medichain-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records lifecycle events as JSONB audit rows. Audit writes
// ride the caller's transaction so an aborted operation leaves no trail.
type AuditService interface {
	LogEvent(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error
	LogStatusChange(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, consultationID string, from, to entity.ConsultationStatus) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

func (s *auditService) LogStatusChange(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, consultationID string, from, to entity.ConsultationStatus) error {
	metadata := entity.JSON{
		"consultation_id": consultationID,
		"old_status":      string(from),
		"new_status":      string(to),
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
