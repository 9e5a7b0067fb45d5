// Package services – BrainService
//
// This file implements the assistant configuration: a single well-known row
// holding the system prompt and an on/off switch. There is deliberately no
// in-memory caching; every read goes to the store so an admin edit takes
// effect on the very next agent call.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// BrainService reads and writes the singleton assistant configuration.
type BrainService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Get returns the stored configuration, or nil when it was never saved.
// Callers render their own default prompt in that case.
func (s *BrainService) Get(ctx context.Context) (*domain.LiaConfig, error) {
	return repo.GetLiaConfig(ctx, s.DB)
}

// Update upserts the system prompt and active flag atomically: either both
// land or neither does.
func (s *BrainService) Update(ctx context.Context, systemPrompt string, isActive bool) (*domain.LiaConfig, error) {
	return repo.UpsertLiaConfig(ctx, s.DB, systemPrompt, isActive)
}
