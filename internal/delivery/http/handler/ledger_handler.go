package handler

import (
	"encoding/json"
	"net/http"

	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/usecase"
	"medichain-service/pkg/response"
	"medichain-service/pkg/validator"

	"github.com/gorilla/mux"
)

type LedgerHandler struct {
	ledgerUsecase usecase.LedgerUsecase
	validator     *validator.CustomValidator
}

func NewLedgerHandler(ledgerUsecase usecase.LedgerUsecase, validator *validator.CustomValidator) *LedgerHandler {
	return &LedgerHandler{
		ledgerUsecase: ledgerUsecase,
		validator:     validator,
	}
}

func (h *LedgerHandler) MintNFT(w http.ResponseWriter, r *http.Request) {
	var req dto.MintNFTRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.ledgerUsecase.IssueForConsultation(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrAlreadyIssued:
			response.Conflict(w, "NFT already issued for this consultation")
		case usecase.ErrLedgerFailure:
			response.InternalServerError(w, "Ledger operation failed")
		default:
			response.InternalServerError(w, "Failed to mint NFT")
		}
		return
	}

	response.Success(w, http.StatusCreated, "NFT minted successfully", result)
}

func (h *LedgerHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.ledgerUsecase.VerifyPayment(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrLedgerFailure {
			response.InternalServerError(w, "Ledger operation failed")
			return
		}
		response.InternalServerError(w, "Failed to verify payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment verification complete", result)
}

func (h *LedgerHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountID := vars["accountId"]

	result, err := h.ledgerUsecase.TransactionHistory(r.Context(), accountID)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWallet:
			response.BadRequest(w, "Invalid account id")
		case usecase.ErrLedgerFailure:
			response.InternalServerError(w, "Ledger operation failed")
		default:
			response.InternalServerError(w, "Failed to fetch transaction history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Transaction history retrieved", result)
}
