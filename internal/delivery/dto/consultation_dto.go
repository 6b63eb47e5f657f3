package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateConsultationRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes" validate:"required,max=2000"`
	WalletAddress   string    `json:"wallet_address" validate:"required,hedera_account"`
}

type UpdateConsultationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type ConsultationResponse struct {
	ID              uuid.UUID       `json:"id"`
	PatientID       uuid.UUID       `json:"patient_id"`
	DoctorID        uuid.UUID       `json:"doctor_id"`
	PatientName     string          `json:"patient_name,omitempty"`
	PatientWallet   string          `json:"patient_wallet,omitempty"`
	DoctorName      string          `json:"doctor_name,omitempty"`
	Specialization  string          `json:"specialization,omitempty"`
	AppointmentDate time.Time       `json:"appointment_date"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	PriceHBAR       decimal.Decimal `json:"price_hbar"`
	NFTTokenID      string          `json:"nft_token_id,omitempty"`
	TransactionHash string          `json:"transaction_hash,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// WalletWarning is set when the booking succeeded but the convenience
	// wallet write onto the profile did not.
	WalletWarning string `json:"wallet_warning,omitempty"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

type DoctorStatsResponse struct {
	TotalPatients int             `json:"total_patients"`
	UpcomingToday int             `json:"upcoming_today"`
	Completed     int             `json:"completed"`
	Earnings      decimal.Decimal `json:"earnings"`
}
