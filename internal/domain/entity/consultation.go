package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusConfirmed ConsultationStatus = "confirmed"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Consultation represents a booked consultation between a patient and a doctor
type Consultation struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time          `gorm:"not null;index" json:"appointment_date"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	Status          ConsultationStatus `gorm:"type:consultation_status;not null;default:'pending';index" json:"status"`
	PriceHBAR       decimal.Decimal    `gorm:"column:price_hbar;type:decimal(10,2);not null" json:"price_hbar"`
	NFTTokenID      string             `gorm:"column:nft_token_id;type:varchar(64)" json:"nft_token_id,omitempty"`
	TransactionHash string             `gorm:"type:varchar(128)" json:"transaction_hash,omitempty"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Profile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Profile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsTerminal checks if the consultation can no longer change state
func (c *Consultation) IsTerminal() bool {
	return c.Status == ConsultationStatusCompleted || c.Status == ConsultationStatusCancelled
}

// transitionRule describes who may drive a single status edge.
// DoctorOnly edges advance the lifecycle; cancellation is open to either
// party to the consultation.
type transitionRule struct {
	DoctorOnly bool
}

// transitions is the full adjacency table of the consultation lifecycle.
// Terminal states have no outgoing edges, so nothing can move backward.
var transitions = map[ConsultationStatus]map[ConsultationStatus]transitionRule{
	ConsultationStatusPending: {
		ConsultationStatusConfirmed: {DoctorOnly: true},
		ConsultationStatusCancelled: {},
	},
	ConsultationStatusConfirmed: {
		ConsultationStatusCompleted: {DoctorOnly: true},
		ConsultationStatusCancelled: {},
	},
}

// CanTransition reports whether the edge from -> to exists in the lifecycle.
func CanTransition(from, to ConsultationStatus) bool {
	_, ok := transitions[from][to]
	return ok
}

// TransitionAllowedFor reports whether a given role may drive the edge
// from -> to. Returns false when the edge does not exist at all; callers
// that need to distinguish the two cases should check CanTransition first.
func TransitionAllowedFor(from, to ConsultationStatus, role UserRole) bool {
	rule, ok := transitions[from][to]
	if !ok {
		return false
	}
	if rule.DoctorOnly {
		return role == RoleDoctor
	}
	return role == RoleDoctor || role == RolePatient
}
