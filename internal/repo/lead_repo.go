// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Lead model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Merge rules for upserts (who may
// overwrite which field) live in services.LeadService.
//
// Error semantics:
//   - When a lead is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetLeadByPhone fetches a lead by its phone number (the natural key) or
// returns ErrNotFound.
func GetLeadByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Lead, error) {
	var l domain.Lead
	err := db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLead fetches a lead by ID or returns ErrNotFound.
func GetLead(ctx context.Context, db *gorm.DB, id string) (*domain.Lead, error) {
	var l domain.Lead
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLead inserts a new Lead row. The ID is a randomly generated UUID and
// LastContact is set to now (UTC) when the caller left it zero.
func CreateLead(ctx context.Context, db *gorm.DB, l *domain.Lead) (*domain.Lead, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LastContact.IsZero() {
		l.LastContact = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLeadFields applies a column map to the lead identified by id.
// Returns ErrNotFound when no row was touched.
func UpdateLeadFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLeadsPage returns a page of leads ordered by last contact descending
// (freshest conversations first). Use CountLeads for pagination metadata.
func ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	var out []domain.Lead
	err := db.WithContext(ctx).
		Order("last_contact desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountLeads returns the total number of leads.
func CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Lead{}).
		Count(&total).Error
	return total, err
}

// CountSlotsForLead returns how many visit slots reference the lead. Callers
// use it as the referential delete guard.
func CountSlotsForLead(ctx context.Context, db *gorm.DB, leadID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.VisitSlot{}).
		Where("lead_id = ?", leadID).
		Count(&total).Error
	return total, err
}

// DeleteLead hard-deletes a lead by ID. Returns ErrNotFound when the lead does
// not exist. A foreign-key violation (booked slots still pointing at the
// lead) propagates as the raw DB error; services check the guard first.
func DeleteLead(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Lead{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// glebarez/sqlite often returns plain-text errors, so the check is textual in
// addition to gorm's sentinel.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "duplicate key")
}
