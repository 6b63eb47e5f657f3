package usecase

import (
	"context"
	"errors"
	"testing"

	"medichain-service/internal/domain/entity"
	domainRepo "medichain-service/internal/domain/repository"
	"medichain-service/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a gorm handle over sqlmock. Repositories are mocked in
// these tests, so the only traffic reaching sqlmock is transaction control.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// --- MockConsultationRepository ---

var _ domainRepo.ConsultationRepository = (*MockConsultationRepository)(nil)

type MockConsultationRepository struct {
	CreateFunc            func(db *gorm.DB, consultation *entity.Consultation) error
	FindByIDFunc          func(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	FindByPatientIDFunc   func(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Consultation, error)
	FindByDoctorIDFunc    func(db *gorm.DB, doctorID uuid.UUID, offset, limit int) ([]entity.Consultation, error)
	FindAllByDoctorIDFunc func(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	UpdateStatusIfFunc    func(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus) (int64, error)
	SetNFTTokenIDFunc     func(db *gorm.DB, id uuid.UUID, tokenID string) error
	SetTransactionHashFunc func(db *gorm.DB, id uuid.UUID, transactionHash string) error
}

func (m *MockConsultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(db, consultation)
	}
	return nil
}

func (m *MockConsultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(db, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockConsultationRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Consultation, error) {
	if m.FindByPatientIDFunc != nil {
		return m.FindByPatientIDFunc(db, patientID, offset, limit)
	}
	return nil, nil
}

func (m *MockConsultationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, offset, limit int) ([]entity.Consultation, error) {
	if m.FindByDoctorIDFunc != nil {
		return m.FindByDoctorIDFunc(db, doctorID, offset, limit)
	}
	return nil, nil
}

func (m *MockConsultationRepository) FindAllByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	if m.FindAllByDoctorIDFunc != nil {
		return m.FindAllByDoctorIDFunc(db, doctorID)
	}
	return nil, nil
}

func (m *MockConsultationRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus) (int64, error) {
	if m.UpdateStatusIfFunc != nil {
		return m.UpdateStatusIfFunc(db, id, from, to)
	}
	return 1, nil
}

func (m *MockConsultationRepository) SetNFTTokenID(db *gorm.DB, id uuid.UUID, tokenID string) error {
	if m.SetNFTTokenIDFunc != nil {
		return m.SetNFTTokenIDFunc(db, id, tokenID)
	}
	return nil
}

func (m *MockConsultationRepository) SetTransactionHash(db *gorm.DB, id uuid.UUID, transactionHash string) error {
	if m.SetTransactionHashFunc != nil {
		return m.SetTransactionHashFunc(db, id, transactionHash)
	}
	return nil
}

// --- MockProfileRepository ---

var _ domainRepo.ProfileRepository = (*MockProfileRepository)(nil)

type MockProfileRepository struct {
	CreateFunc           func(db *gorm.DB, profile *entity.Profile) error
	FindByIDFunc         func(db *gorm.DB, id uuid.UUID) (*entity.Profile, error)
	FindByUserIDFunc     func(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
	FindByFullNameFunc   func(db *gorm.DB, fullName string) (*entity.Profile, error)
	FindDoctorsFunc      func(db *gorm.DB, specialization string) ([]entity.Profile, error)
	SetWalletIfEmptyFunc func(db *gorm.DB, profileID uuid.UUID, walletAddress string) (int64, error)
	UpdateWalletFunc     func(db *gorm.DB, profileID uuid.UUID, walletAddress string) error
}

func (m *MockProfileRepository) Create(db *gorm.DB, profile *entity.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(db, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(db, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(db, userID)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByFullName(db *gorm.DB, fullName string) (*entity.Profile, error) {
	if m.FindByFullNameFunc != nil {
		return m.FindByFullNameFunc(db, fullName)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindDoctors(db *gorm.DB, specialization string) ([]entity.Profile, error) {
	if m.FindDoctorsFunc != nil {
		return m.FindDoctorsFunc(db, specialization)
	}
	return nil, nil
}

func (m *MockProfileRepository) SetWalletIfEmpty(db *gorm.DB, profileID uuid.UUID, walletAddress string) (int64, error) {
	if m.SetWalletIfEmptyFunc != nil {
		return m.SetWalletIfEmptyFunc(db, profileID, walletAddress)
	}
	return 1, nil
}

func (m *MockProfileRepository) UpdateWallet(db *gorm.DB, profileID uuid.UUID, walletAddress string) error {
	if m.UpdateWalletFunc != nil {
		return m.UpdateWalletFunc(db, profileID, walletAddress)
	}
	return nil
}

// --- MockUserRepository ---

var _ domainRepo.UserRepository = (*MockUserRepository)(nil)

type MockUserRepository struct {
	CreateFunc      func(db *gorm.DB, user *entity.User) error
	FindByIDFunc    func(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmailFunc func(db *gorm.DB, email string) (*entity.User, error)
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(db, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(db, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(db, email)
	}
	return nil, nil
}

// --- MockNFTMetadataRepository ---

var _ domainRepo.NFTMetadataRepository = (*MockNFTMetadataRepository)(nil)

type MockNFTMetadataRepository struct {
	CreateFunc               func(db *gorm.DB, metadata *entity.NFTMetadata) error
	FindByConsultationIDFunc func(db *gorm.DB, consultationID uuid.UUID) (*entity.NFTMetadata, error)
}

func (m *MockNFTMetadataRepository) Create(db *gorm.DB, metadata *entity.NFTMetadata) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(db, metadata)
	}
	return nil
}

func (m *MockNFTMetadataRepository) FindByConsultationID(db *gorm.DB, consultationID uuid.UUID) (*entity.NFTMetadata, error) {
	if m.FindByConsultationIDFunc != nil {
		return m.FindByConsultationIDFunc(db, consultationID)
	}
	return nil, nil
}

// --- MockAuditService ---

var _ service.AuditService = (*MockAuditService)(nil)

type MockAuditService struct {
	Events []string
}

func (m *MockAuditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	m.Events = append(m.Events, action)
	return nil
}

func (m *MockAuditService) LogStatusChange(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, consultationID string, from, to entity.ConsultationStatus) error {
	m.Events = append(m.Events, action)
	return nil
}

// --- MockLedgerClient ---

var _ service.LedgerClient = (*MockLedgerClient)(nil)

type MockLedgerClient struct {
	MintTokenFunc           func(ctx context.Context, req service.MintRequest) (string, error)
	VerifyTransactionFunc   func(ctx context.Context, transactionHash string) (bool, error)
	AccountTransactionsFunc func(ctx context.Context, accountID string) ([]service.LedgerTransaction, error)
}

func (m *MockLedgerClient) MintToken(ctx context.Context, req service.MintRequest) (string, error) {
	if m.MintTokenFunc != nil {
		return m.MintTokenFunc(ctx, req)
	}
	return "0.0.424242", nil
}

func (m *MockLedgerClient) VerifyTransaction(ctx context.Context, transactionHash string) (bool, error) {
	if m.VerifyTransactionFunc != nil {
		return m.VerifyTransactionFunc(ctx, transactionHash)
	}
	return true, nil
}

func (m *MockLedgerClient) AccountTransactions(ctx context.Context, accountID string) ([]service.LedgerTransaction, error) {
	if m.AccountTransactionsFunc != nil {
		return m.AccountTransactionsFunc(ctx, accountID)
	}
	return nil, nil
}
