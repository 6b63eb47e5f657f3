package repository

import (
	"errors"

	"medichain-service/internal/domain/entity"
	domainRepo "medichain-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, profile *entity.Profile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByFullName(db *gorm.DB, fullName string) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.Where("full_name = ?", fullName).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindDoctors(db *gorm.DB, specialization string) ([]entity.Profile, error) {
	var profiles []entity.Profile
	query := db.Where("role = ?", entity.RoleDoctor)
	if specialization != "" {
		query = query.Where("specialization ILIKE ?", "%"+specialization+"%")
	}
	err := query.Order("full_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// SetWalletIfEmpty writes the wallet address only while the column is still
// unset, so a wallet connected earlier is never overwritten by a booking.
func (r *profileRepository) SetWalletIfEmpty(db *gorm.DB, profileID uuid.UUID, walletAddress string) (int64, error) {
	result := db.Model(&entity.Profile{}).
		Where("id = ? AND (wallet_address IS NULL OR wallet_address = '')", profileID).
		Update("wallet_address", walletAddress)
	return result.RowsAffected, result.Error
}

func (r *profileRepository) UpdateWallet(db *gorm.DB, profileID uuid.UUID, walletAddress string) error {
	return db.Model(&entity.Profile{}).
		Where("id = ?", profileID).
		Update("wallet_address", walletAddress).Error
}
