package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("services_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// One connection keeps concurrent writers serialized on sqlite.
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// leadRepoShim satisfies LeadRepo with the real repository functions.
type leadRepoShim struct{}

func (leadRepoShim) GetLeadByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Lead, error) {
	return repo.GetLeadByPhone(ctx, db, phone)
}

func (leadRepoShim) CreateLead(ctx context.Context, db *gorm.DB, l *domain.Lead) (*domain.Lead, error) {
	return repo.CreateLead(ctx, db, l)
}

func (leadRepoShim) UpdateLeadFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateLeadFields(ctx, db, id, fields)
}

func (leadRepoShim) ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	return repo.ListLeadsPage(ctx, db, offset, limit)
}

func (leadRepoShim) CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountLeads(ctx, db)
}

func (leadRepoShim) CountSlotsForLead(ctx context.Context, db *gorm.DB, leadID string) (int64, error) {
	return repo.CountSlotsForLead(ctx, db, leadID)
}

func (leadRepoShim) DeleteLead(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteLead(ctx, db, id)
}
