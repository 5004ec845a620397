// internal/services/journal_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

// JournalService appends provenance entries for every ledger mutation.
// Entries form a hash chain: each hash covers the previous hash, the event
// type, and the canonical JSON payload, so the trail can be re-verified
// end to end.
type JournalService struct {
	db *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db}
}

// Record appends an entry inside the caller's transaction. The payload is
// normalized through a JSON round trip before hashing so re-verification
// after a database read produces identical bytes.
func (s *JournalService) Record(tx *gorm.DB, event models.JournalEvent, actorID uuid.UUID, productID, purchaseID *int64, data models.JSONB) (*models.JournalEntry, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journal payload: %w", err)
	}
	var normalized models.JSONB
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to normalize journal payload: %w", err)
	}
	canonical, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journal payload: %w", err)
	}

	prevHash := ""
	var prev models.JournalEntry
	err = tx.Order("id DESC").First(&prev).Error
	if err == nil {
		prevHash = prev.Hash
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read journal head: %w", err)
	}

	entry := &models.JournalEntry{
		Event:      event,
		ActorID:    actorID,
		ProductID:  productID,
		PurchaseID: purchaseID,
		Data:       normalized,
		PrevHash:   prevHash,
		Hash:       entryHash(prevHash, event, canonical),
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append journal entry: %w", err)
	}

	return entry, nil
}

// ProductTrail returns every entry touching a product, oldest first.
func (s *JournalService) ProductTrail(productID int64) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := s.db.Where("product_id = ?", productID).
		Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch journal trail: %w", err)
	}
	return entries, nil
}

// VerifyChain walks the whole journal recomputing hashes. A false result
// means an entry was altered or removed after the fact.
func (s *JournalService) VerifyChain() (bool, error) {
	var entries []models.JournalEntry
	if err := s.db.Order("id ASC").Find(&entries).Error; err != nil {
		return false, fmt.Errorf("failed to fetch journal: %w", err)
	}

	prevHash := ""
	for _, entry := range entries {
		canonical, err := json.Marshal(entry.Data)
		if err != nil {
			return false, fmt.Errorf("failed to marshal journal payload: %w", err)
		}
		if entry.PrevHash != prevHash {
			return false, nil
		}
		if entry.Hash != entryHash(prevHash, entry.Event, canonical) {
			return false, nil
		}
		prevHash = entry.Hash
	}

	return true, nil
}

func entryHash(prevHash string, event models.JournalEvent, canonical []byte) string {
	return utils.HashString(prevHash + "|" + string(event) + "|" + string(canonical))
}
