package dto

import (
	"time"

	"github.com/google/uuid"
)

type MintNFTRequest struct {
	ConsultationID  uuid.UUID `json:"consultation_id" validate:"required"`
	DoctorName      string    `json:"doctor_name" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"`
}

type NFTMetadataPayload struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	AppointmentDate string `json:"appointmentDate"`
	ConsultationID  string `json:"consultationId"`
	Symbol          string `json:"symbol"`
}

type MintNFTResponse struct {
	TokenID  string             `json:"token_id"`
	Metadata NFTMetadataPayload `json:"metadata"`
}

type VerifyPaymentRequest struct {
	TransactionHash string     `json:"transaction_hash" validate:"required"`
	ConsultationID  *uuid.UUID `json:"consultation_id,omitempty"`
}

type VerifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

type LedgerTransactionResponse struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Result        string    `json:"result"`
	ConsensusAt   time.Time `json:"consensus_at"`
}

type TransactionHistoryResponse struct {
	Transactions []LedgerTransactionResponse `json:"transactions"`
	Total        int                         `json:"total"`
}
