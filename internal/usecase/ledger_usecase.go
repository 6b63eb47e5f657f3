package usecase

import (
	"context"
	"errors"
	"fmt"

	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/delivery/http/middleware"
	"medichain-service/internal/domain/entity"
	"medichain-service/internal/domain/repository"
	"medichain-service/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAlreadyIssued = errors.New("nft already issued for this consultation")
	ErrLedgerFailure = errors.New("ledger operation failed")
)

type LedgerUsecase interface {
	IssueForConsultation(ctx context.Context, req *dto.MintNFTRequest) (*dto.MintNFTResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	TransactionHistory(ctx context.Context, accountID string) (*dto.TransactionHistoryResponse, error)
}

type ledgerUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	ledgerClient     service.LedgerClient
	consultationRepo repository.ConsultationRepository
	nftRepo          repository.NFTMetadataRepository
	auditService     service.AuditService
}

func NewLedgerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	ledgerClient service.LedgerClient,
	consultationRepo repository.ConsultationRepository,
	nftRepo repository.NFTMetadataRepository,
	auditService service.AuditService,
) LedgerUsecase {
	return &ledgerUsecase{
		db:               db,
		log:              log,
		ledgerClient:     ledgerClient,
		consultationRepo: consultationRepo,
		nftRepo:          nftRepo,
		auditService:     auditService,
	}
}

// IssueForConsultation mints a consultation-pass NFT and persists its
// metadata. Issuance is idempotent at consultation granularity: a second
// call fails with ErrAlreadyIssued instead of minting a duplicate. The
// pre-check catches the common case; the unique index on consultation_id
// catches two concurrent first calls.
func (u *ledgerUsecase) IssueForConsultation(ctx context.Context, req *dto.MintNFTRequest) (*dto.MintNFTResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", req.ConsultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	existing, err := u.nftRepo.FindByConsultationID(u.db.WithContext(ctx), req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to check existing metadata for %s: %+v", req.ConsultationID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyIssued
	}

	payload := dto.NFTMetadataPayload{
		Name:            fmt.Sprintf("%s Consultation Pass", req.DoctorName),
		Type:            entity.NFTType,
		AppointmentDate: req.AppointmentDate,
		ConsultationID:  req.ConsultationID.String(),
		Symbol:          entity.NFTSymbol,
	}

	tokenID, err := u.ledgerClient.MintToken(ctx, service.MintRequest{
		ConsultationID: req.ConsultationID.String(),
		Name:           payload.Name,
		Symbol:         payload.Symbol,
	})
	if err != nil {
		u.log.Errorf("Mint failed for consultation %s: %+v", req.ConsultationID, err)
		return nil, ErrLedgerFailure
	}

	metadata := &entity.NFTMetadata{
		ConsultationID: req.ConsultationID,
		TokenID:        tokenID,
		MetadataJSON: entity.JSON{
			"name":            payload.Name,
			"type":            payload.Type,
			"appointmentDate": payload.AppointmentDate,
			"consultationId":  payload.ConsultationID,
			"symbol":          payload.Symbol,
		},
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.nftRepo.Create(tx, metadata); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyIssued
		}
		u.log.Errorf("Failed to persist NFT metadata for %s: %+v", req.ConsultationID, err)
		return nil, err
	}

	if err := u.consultationRepo.SetNFTTokenID(tx, req.ConsultationID, tokenID); err != nil {
		u.log.Errorf("Failed to attach token id to consultation %s: %+v", req.ConsultationID, err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, tx, &userID, entity.AuditActionNFTMint, entity.JSON{
		"consultation_id": req.ConsultationID.String(),
		"token_id":        tokenID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("NFT minted: consultation=%s, token=%s", req.ConsultationID, tokenID)
	return &dto.MintNFTResponse{
		TokenID:  tokenID,
		Metadata: payload,
	}, nil
}

// VerifyPayment checks a transaction hash against the ledger and, when a
// consultation is supplied, records the hash on it.
func (u *ledgerUsecase) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	verified, err := u.ledgerClient.VerifyTransaction(ctx, req.TransactionHash)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return &dto.VerifyPaymentResponse{Verified: false}, nil
		}
		u.log.Warnf("Payment verification failed for %s: %+v", req.TransactionHash, err)
		return nil, ErrLedgerFailure
	}

	if verified && req.ConsultationID != nil {
		if err := u.consultationRepo.SetTransactionHash(u.db.WithContext(ctx), *req.ConsultationID, req.TransactionHash); err != nil {
			u.log.Warnf("Failed to record transaction hash on consultation %s: %+v", *req.ConsultationID, err)
			return nil, err
		}
	}

	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionPaymentVerify, entity.JSON{
		"transaction_hash": req.TransactionHash,
		"verified":         verified,
	}); err != nil {
		u.log.Warnf("Failed to audit payment verification: %+v", err)
	}

	return &dto.VerifyPaymentResponse{Verified: verified}, nil
}

// TransactionHistory fetches the ledger transaction list for an account.
func (u *ledgerUsecase) TransactionHistory(ctx context.Context, accountID string) (*dto.TransactionHistoryResponse, error) {
	if !entity.ValidWalletAddress(accountID) {
		return nil, ErrInvalidWallet
	}

	transactions, err := u.ledgerClient.AccountTransactions(ctx, accountID)
	if err != nil {
		u.log.Warnf("Failed to fetch transactions for %s: %+v", accountID, err)
		return nil, ErrLedgerFailure
	}

	responses := make([]dto.LedgerTransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, dto.LedgerTransactionResponse{
			TransactionID: tx.TransactionID,
			Type:          tx.Type,
			Result:        tx.Result,
			ConsensusAt:   tx.ConsensusAt,
		})
	}

	return &dto.TransactionHistoryResponse{
		Transactions: responses,
		Total:        len(responses),
	}, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (error code 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
