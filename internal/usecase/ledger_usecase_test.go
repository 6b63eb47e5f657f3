package usecase

import (
	"context"
	"testing"

	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/entity"
	"medichain-service/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIssueForConsultation_Success(t *testing.T) {
	db, mock := newTestDB(t)

	consultationID := uuid.New()
	consultationRepo := &MockConsultationRepository{
		FindByIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
			return &entity.Consultation{ID: id, Status: entity.ConsultationStatusConfirmed}, nil
		},
		SetNFTTokenIDFunc: func(db *gorm.DB, id uuid.UUID, tokenID string) error {
			assert.Equal(t, "0.0.900001", tokenID)
			return nil
		},
	}
	var savedMetadata *entity.NFTMetadata
	nftRepo := &MockNFTMetadataRepository{
		FindByConsultationIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.NFTMetadata, error) {
			return nil, nil
		},
		CreateFunc: func(db *gorm.DB, metadata *entity.NFTMetadata) error {
			savedMetadata = metadata
			return nil
		},
	}
	ledger := &MockLedgerClient{
		MintTokenFunc: func(ctx context.Context, req service.MintRequest) (string, error) {
			assert.Equal(t, "MEDPASS", req.Symbol)
			return "0.0.900001", nil
		},
	}
	audit := &MockAuditService{}

	uc := NewLedgerUsecase(db, newTestLogger(), ledger, consultationRepo, nftRepo, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	ctx := authedContext(uuid.New(), uuid.New(), entity.RoleDoctor)
	resp, err := uc.IssueForConsultation(ctx, &dto.MintNFTRequest{
		ConsultationID:  consultationID,
		DoctorName:      "Dr. Aisha Patel",
		AppointmentDate: "2026-09-15T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "0.0.900001", resp.TokenID)
	assert.Equal(t, "Dr. Aisha Patel Consultation Pass", resp.Metadata.Name)
	assert.Equal(t, entity.NFTType, resp.Metadata.Type)
	assert.Equal(t, consultationID.String(), resp.Metadata.ConsultationID)

	require.NotNil(t, savedMetadata)
	assert.Equal(t, consultationID, savedMetadata.ConsultationID)
	assert.Equal(t, "Dr. Aisha Patel Consultation Pass", savedMetadata.MetadataJSON["name"])
	assert.Contains(t, audit.Events, entity.AuditActionNFTMint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueForConsultation_AlreadyIssued(t *testing.T) {
	db, _ := newTestDB(t)

	consultationRepo := &MockConsultationRepository{
		FindByIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
			return &entity.Consultation{ID: id}, nil
		},
	}
	minted := false
	nftRepo := &MockNFTMetadataRepository{
		FindByConsultationIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.NFTMetadata, error) {
			return &entity.NFTMetadata{ConsultationID: id, TokenID: "0.0.111"}, nil
		},
	}
	ledger := &MockLedgerClient{
		MintTokenFunc: func(ctx context.Context, req service.MintRequest) (string, error) {
			minted = true
			return "0.0.222", nil
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), ledger, consultationRepo, nftRepo, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RoleDoctor)
	_, err := uc.IssueForConsultation(ctx, &dto.MintNFTRequest{
		ConsultationID:  uuid.New(),
		DoctorName:      "Dr. Aisha Patel",
		AppointmentDate: "2026-09-15T10:00:00Z",
	})

	assert.ErrorIs(t, err, ErrAlreadyIssued)
	assert.False(t, minted, "duplicate issuance must not reach the ledger")
}

func TestIssueForConsultation_ConcurrentDuplicate(t *testing.T) {
	db, mock := newTestDB(t)

	consultationRepo := &MockConsultationRepository{
		FindByIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
			return &entity.Consultation{ID: id}, nil
		},
	}
	// Pre-check sees nothing, but the unique index trips on insert: two
	// first calls raced and this one lost.
	nftRepo := &MockNFTMetadataRepository{
		FindByConsultationIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.NFTMetadata, error) {
			return nil, nil
		},
		CreateFunc: func(db *gorm.DB, metadata *entity.NFTMetadata) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_nft_metadata_consultation_id"}
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), &MockLedgerClient{}, consultationRepo, nftRepo, &MockAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx := authedContext(uuid.New(), uuid.New(), entity.RoleDoctor)
	_, err := uc.IssueForConsultation(ctx, &dto.MintNFTRequest{
		ConsultationID:  uuid.New(),
		DoctorName:      "Dr. Aisha Patel",
		AppointmentDate: "2026-09-15T10:00:00Z",
	})

	assert.ErrorIs(t, err, ErrAlreadyIssued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueForConsultation_ConsultationNotFound(t *testing.T) {
	db, _ := newTestDB(t)

	consultationRepo := &MockConsultationRepository{
		FindByIDFunc: func(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
			return nil, nil
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), &MockLedgerClient{}, consultationRepo, &MockNFTMetadataRepository{}, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RoleDoctor)
	_, err := uc.IssueForConsultation(ctx, &dto.MintNFTRequest{
		ConsultationID:  uuid.New(),
		DoctorName:      "Dr. Aisha Patel",
		AppointmentDate: "2026-09-15T10:00:00Z",
	})

	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestVerifyPayment_RecordsHashOnConsultation(t *testing.T) {
	db, _ := newTestDB(t)

	consultationID := uuid.New()
	var recordedHash string
	consultationRepo := &MockConsultationRepository{
		SetTransactionHashFunc: func(db *gorm.DB, id uuid.UUID, transactionHash string) error {
			assert.Equal(t, consultationID, id)
			recordedHash = transactionHash
			return nil
		},
	}
	ledger := &MockLedgerClient{
		VerifyTransactionFunc: func(ctx context.Context, transactionHash string) (bool, error) {
			return true, nil
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), ledger, consultationRepo, &MockNFTMetadataRepository{}, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RolePatient)
	resp, err := uc.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		TransactionHash: "0xabc123",
		ConsultationID:  &consultationID,
	})

	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.Equal(t, "0xabc123", recordedHash)
}

func TestVerifyPayment_UnknownTransaction(t *testing.T) {
	db, _ := newTestDB(t)

	ledger := &MockLedgerClient{
		VerifyTransactionFunc: func(ctx context.Context, transactionHash string) (bool, error) {
			return false, service.ErrTransactionNotFound
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), ledger, &MockConsultationRepository{}, &MockNFTMetadataRepository{}, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RolePatient)
	resp, err := uc.VerifyPayment(ctx, &dto.VerifyPaymentRequest{TransactionHash: "0xdeadbeef"})

	require.NoError(t, err)
	assert.False(t, resp.Verified)
}

func TestTransactionHistory_RejectsMalformedAccount(t *testing.T) {
	db, _ := newTestDB(t)

	uc := NewLedgerUsecase(db, newTestLogger(), &MockLedgerClient{}, &MockConsultationRepository{}, &MockNFTMetadataRepository{}, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RolePatient)
	_, err := uc.TransactionHistory(ctx, "not.an.account.id")

	assert.ErrorIs(t, err, ErrInvalidWallet)
}

func TestTransactionHistory_ReturnsTransactions(t *testing.T) {
	db, _ := newTestDB(t)

	ledger := &MockLedgerClient{
		AccountTransactionsFunc: func(ctx context.Context, accountID string) ([]service.LedgerTransaction, error) {
			assert.Equal(t, "0.0.5005", accountID)
			return []service.LedgerTransaction{
				{TransactionID: "0.0.5005-1700000000-000000001", Type: "CRYPTOTRANSFER", Result: "SUCCESS"},
				{TransactionID: "0.0.5005-1700000100-000000002", Type: "TOKENMINT", Result: "SUCCESS"},
			}, nil
		},
	}

	uc := NewLedgerUsecase(db, newTestLogger(), ledger, &MockConsultationRepository{}, &MockNFTMetadataRepository{}, &MockAuditService{})

	ctx := authedContext(uuid.New(), uuid.New(), entity.RolePatient)
	resp, err := uc.TransactionHistory(ctx, "0.0.5005")

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "TOKENMINT", resp.Transactions[1].Type)
}
