package repository

import (
	"medichain-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Consultation, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, offset, limit int) ([]entity.Consultation, error)
	FindAllByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	// UpdateStatusIf performs the compare-and-swap status write: the row is
	// updated only while its current status still equals from. Returns
	// affected rows: 0 means a concurrent transition won the race.
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus) (int64, error)
	SetNFTTokenID(db *gorm.DB, id uuid.UUID, tokenID string) error
	SetTransactionHash(db *gorm.DB, id uuid.UUID, transactionHash string) error
}
