package entity

import (
	"time"

	"github.com/google/uuid"
)

// NFT metadata constants, fixed by the consultation-pass token design
const (
	NFTType   = "NON_FUNGIBLE_UNIQUE"
	NFTSymbol = "MEDPASS"
)

// NFTMetadata holds the minted consultation-pass token record.
// At most one row exists per consultation (unique index) and rows are
// immutable after creation.
type NFTMetadata struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConsultationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"consultation_id"`
	TokenID        string    `gorm:"type:varchar(64);not null" json:"token_id"`
	MetadataJSON   JSON      `gorm:"column:metadata_json;type:jsonb;not null" json:"metadata_json"`
	IPFSHash       string    `gorm:"column:ipfs_hash;type:varchar(128)" json:"ipfs_hash,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"consultation,omitempty"`
}

func (NFTMetadata) TableName() string {
	return "nft_metadata"
}
