// Package services – StatsService
//
// Thin wrapper over the dashboard aggregation queries.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/repo"
)

// StatsService serves the admin dashboard counters.
type StatsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewStatsService constructs a StatsService with a real clock.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// Overview returns the dashboard counters as of now.
func (s *StatsService) Overview(ctx context.Context) (*repo.DashboardStats, error) {
	return repo.GetDashboardStats(ctx, s.DB, s.Now())
}
