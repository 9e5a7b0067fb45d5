// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file handles the singleton assistant configuration.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// GetLiaConfig returns the singleton config row, or (nil, nil) when it was
// never saved. Callers supply their own default in that case.
func GetLiaConfig(ctx context.Context, db *gorm.DB) (*domain.LiaConfig, error) {
	var c domain.LiaConfig
	err := db.WithContext(ctx).
		Where("id = ?", domain.LiaConfigID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertLiaConfig creates or fully replaces the singleton config row in one
// statement. There is never a partial write: either the insert or the
// conflict-update lands atomically.
func UpsertLiaConfig(ctx context.Context, db *gorm.DB, systemPrompt string, isActive bool) (*domain.LiaConfig, error) {
	c := &domain.LiaConfig{
		ID:           domain.LiaConfigID,
		SystemPrompt: systemPrompt,
		IsActive:     isActive,
		UpdatedAt:    time.Now().UTC(),
	}
	// is_active=false must land in both paths, so the conflict update carries
	// the values explicitly instead of reading them back from the insert.
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"system_prompt": systemPrompt,
				"is_active":     isActive,
				"updated_at":    c.UpdatedAt,
			}),
		}).
		Create(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}
