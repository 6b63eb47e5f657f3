package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role attached to a profile
type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

// Profile represents the identity record for a patient or doctor.
// Role is fixed at signup; wallet address may be attached later, either
// through the wallet-connection endpoint or implicitly during booking.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"full_name"`
	Role           UserRole  `gorm:"type:user_role;not null;index" json:"role"`
	Specialization string    `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	WalletAddress  string    `gorm:"type:varchar(64)" json:"wallet_address,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// IsDoctor checks if the profile belongs to a doctor
func (p *Profile) IsDoctor() bool {
	return p.Role == RoleDoctor
}

// IsPatient checks if the profile belongs to a patient
func (p *Profile) IsPatient() bool {
	return p.Role == RolePatient
}

// Hedera account ids look like 0.0.12345 (shard.realm.num).
var walletAddressPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// ValidWalletAddress reports whether s is a well-formed Hedera account id.
// Addresses arrive from the wallet-extension handshake and are untrusted
// input until they match this format.
func ValidWalletAddress(s string) bool {
	return walletAddressPattern.MatchString(s)
}
