package repository

import (
	"errors"

	"medichain-service/internal/domain/entity"
	domainRepo "medichain-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type nftMetadataRepository struct{}

func NewNFTMetadataRepository() domainRepo.NFTMetadataRepository {
	return &nftMetadataRepository{}
}

func (r *nftMetadataRepository) Create(db *gorm.DB, metadata *entity.NFTMetadata) error {
	return db.Create(metadata).Error
}

func (r *nftMetadataRepository) FindByConsultationID(db *gorm.DB, consultationID uuid.UUID) (*entity.NFTMetadata, error) {
	var metadata entity.NFTMetadata
	err := db.Where("consultation_id = ?", consultationID).First(&metadata).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metadata, nil
}
