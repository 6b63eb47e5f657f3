package repository

import (
	"medichain-service/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindByAction(db *gorm.DB, action string, limit int) ([]entity.AuditLog, error)
}
