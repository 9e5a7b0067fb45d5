// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// dashboard cards.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// DashboardStats is the counters block rendered on the admin landing page.
type DashboardStats struct {
	TotalProperties     int64                          `json:"totalProperties"`
	AvailableProperties int64                          `json:"availableProperties"`
	TotalLeads          int64                          `json:"totalLeads"`
	LeadsByInterest     map[domain.InterestLevel]int64 `json:"leadsByInterest"`
	UpcomingVisits      int64                          `json:"upcomingVisits"`
}

// GetDashboardStats aggregates the dashboard counters in a handful of count
// queries. The numbers are advisory (no transaction): the dashboard tolerates
// being a write behind.
func GetDashboardStats(ctx context.Context, db *gorm.DB, now time.Time) (*DashboardStats, error) {
	s := &DashboardStats{
		LeadsByInterest: make(map[domain.InterestLevel]int64, 4),
	}

	if err := db.WithContext(ctx).Model(&domain.Property{}).Count(&s.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&domain.Property{}).
		Where("status = ?", domain.PropertyAvailable).
		Count(&s.AvailableProperties).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&domain.Lead{}).Count(&s.TotalLeads).Error; err != nil {
		return nil, err
	}

	type interestRow struct {
		InterestLevel domain.InterestLevel
		N             int64
	}
	var rows []interestRow
	if err := db.WithContext(ctx).Model(&domain.Lead{}).
		Select("interest_level, count(*) as n").
		Group("interest_level").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		s.LeadsByInterest[r.InterestLevel] = r.N
	}

	if err := db.WithContext(ctx).Model(&domain.VisitSlot{}).
		Where("status = ? AND date >= ?", domain.SlotBooked, now).
		Count(&s.UpcomingVisits).Error; err != nil {
		return nil, err
	}
	return s, nil
}
