package repository

import (
	"medichain-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *entity.Profile) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Profile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
	FindByFullName(db *gorm.DB, fullName string) (*entity.Profile, error)
	FindDoctors(db *gorm.DB, specialization string) ([]entity.Profile, error)
	// SetWalletIfEmpty attaches a wallet address only when none is set yet
	// (first-write-wins). Returns affected rows: 0 means a wallet was
	// already present.
	SetWalletIfEmpty(db *gorm.DB, profileID uuid.UUID, walletAddress string) (int64, error)
	UpdateWallet(db *gorm.DB, profileID uuid.UUID, walletAddress string) error
}
