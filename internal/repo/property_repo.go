// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Property
// model, including the free-text catalog search used by the assistant.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// CreateProperty inserts a new Property row with a UUID primary key.
func CreateProperty(ctx context.Context, db *gorm.DB, p *domain.Property) (*domain.Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.PropertyAvailable
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProperty fetches a property by ID or returns ErrNotFound.
func GetProperty(ctx context.Context, db *gorm.DB, id string) (*domain.Property, error) {
	var p domain.Property
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProperties returns all properties ordered by creation time descending.
func ListProperties(ctx context.Context, db *gorm.DB) ([]domain.Property, error) {
	var out []domain.Property
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateProperty applies a column map to the property identified by id.
// Returns ErrNotFound when no row was touched.
func UpdateProperty(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Property{}).
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

// DeleteProperty hard-deletes a property. Returns ErrNotFound when the row
// does not exist (no soft-delete, no undo).
func DeleteProperty(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchAvailableProperties returns up to limit AVAILABLE properties, newest
// first. When query is non-empty it is matched case-insensitively as a
// substring of the title, public description, location, the private sales
// context, or the serialized feature tags. Non-AVAILABLE rows never match,
// regardless of the query.
func SearchAvailableProperties(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Property, error) {
	q := db.WithContext(ctx).
		Where("status = ?", domain.PropertyAvailable)

	if query != "" {
		like := "%" + query + "%"
		// SQLite LIKE is case-insensitive for ASCII only; lower() both sides
		// so the behavior is uniform across collations.
		q = q.Where(
			db.Where("lower(title) LIKE lower(?)", like).
				Or("lower(description) LIKE lower(?)", like).
				Or("lower(location) LIKE lower(?)", like).
				Or("lower(ai_context) LIKE lower(?)", like).
				Or("lower(features) LIKE lower(?)", like),
		)
	}

	var out []domain.Property
	err := q.Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
