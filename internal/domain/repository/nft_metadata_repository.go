package repository

import (
	"medichain-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NFTMetadataRepository interface {
	Create(db *gorm.DB, metadata *entity.NFTMetadata) error
	FindByConsultationID(db *gorm.DB, consultationID uuid.UUID) (*entity.NFTMetadata, error)
}
