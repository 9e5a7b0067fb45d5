// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the VisitSlot
// model, including the conditional claim that keeps double-booking impossible.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// CreateSlot inserts a new AVAILABLE visit slot at the given time.
func CreateSlot(ctx context.Context, db *gorm.DB, date time.Time) (*domain.VisitSlot, error) {
	s := &domain.VisitSlot{
		ID:     uuid.NewString(),
		Date:   date.UTC(),
		Status: domain.SlotAvailable,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSlot fetches a slot by ID or returns ErrNotFound.
func GetSlot(ctx context.Context, db *gorm.DB, id string) (*domain.VisitSlot, error) {
	var s domain.VisitSlot
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSlots returns all slots ordered by date ascending, with the booked
// lead preloaded for the admin calendar.
func ListSlots(ctx context.Context, db *gorm.DB) ([]domain.VisitSlot, error) {
	var out []domain.VisitSlot
	err := db.WithContext(ctx).
		Preload("Lead").
		Order("date asc").
		Find(&out).Error
	return out, err
}

// ListUpcomingAvailable returns up to limit AVAILABLE slots with a date at or
// after now, soonest first.
func ListUpcomingAvailable(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]domain.VisitSlot, error) {
	var out []domain.VisitSlot
	err := db.WithContext(ctx).
		Where("status = ? AND date >= ?", domain.SlotAvailable, now).
		Order("date asc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ClaimSlot transitions one slot from AVAILABLE to BOOKED and binds it to
// leadID. The status predicate makes the read-check and the write a single
// conditional update: of any number of concurrent claimants exactly one
// observes RowsAffected == 1; every other caller gets ErrNotFound, whether
// the slot is missing or already booked. The caller disambiguates those two
// cases after the fact if it needs to.
func ClaimSlot(ctx context.Context, db *gorm.DB, slotID, leadID string) error {
	res := db.WithContext(ctx).
		Model(&domain.VisitSlot{}).
		Where("id = ? AND status = ?", slotID, domain.SlotAvailable).
		Updates(map[string]any{
			"status":  domain.SlotBooked,
			"lead_id": leadID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSlotIfAvailable deletes a slot only while it is still AVAILABLE.
// Booked slots (or missing IDs) leave zero rows affected and return
// ErrNotFound; the service layer turns that into the descriptive error.
func DeleteSlotIfAvailable(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.SlotAvailable).
		Delete(&domain.VisitSlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
