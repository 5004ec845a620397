// internal/models/journal.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerSettings is a single-row table (ID = 1) holding the fee policy in
// force. Changes apply only to purchases made after the change.
type LedgerSettings struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	PlatformFeeBps int64     `json:"platform_fee_bps" gorm:"type:bigint;not null"`
	FeeRecipientID uuid.UUID `json:"fee_recipient_id" gorm:"type:uuid;not null"`
	UpdatedBy      uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JournalEntry is an append-only provenance record. Each entry hashes its
// payload together with the previous entry's hash, so the whole journal can
// be re-verified like a chain of blocks.
type JournalEntry struct {
	ID         int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Event      JournalEvent `json:"event" gorm:"type:varchar(30);not null;index"`
	ActorID    uuid.UUID    `json:"actor_id" gorm:"type:uuid;not null"`
	ProductID  *int64       `json:"product_id" gorm:"index"`
	PurchaseID *int64       `json:"purchase_id" gorm:"index"`
	Data       JSONB        `json:"data" gorm:"type:jsonb"`
	PrevHash   string       `json:"prev_hash" gorm:"size:64;not null"`
	Hash       string       `json:"hash" gorm:"size:64;not null"`
	CreatedAt  time.Time    `json:"created_at"`
}
