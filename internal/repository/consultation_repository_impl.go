package repository

import (
	"errors"

	"medichain-service/internal/domain/entity"
	domainRepo "medichain-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC").
		Offset(offset).Limit(limit).
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, offset, limit int) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC").
		Offset(offset).Limit(limit).
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindAllByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

// UpdateStatusIf linearizes status transitions at the storage layer: the
// write succeeds only while the current status still matches the expected
// source state. Returns affected rows: 1 = transition won, 0 = stale state.
func (r *consultationRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) SetNFTTokenID(db *gorm.DB, id uuid.UUID, tokenID string) error {
	return db.Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("nft_token_id", tokenID).Error
}

func (r *consultationRepository) SetTransactionHash(db *gorm.DB, id uuid.UUID, transactionHash string) error {
	return db.Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("transaction_hash", transactionHash).Error
}
