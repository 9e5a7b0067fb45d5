package repo

import (
	"context"
	"testing"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

func TestGetLiaConfig_NilWhenNeverSaved(t *testing.T) {
	db := newTestDB(t, &domain.LiaConfig{})

	c, err := GetLiaConfig(context.Background(), db)
	if err != nil {
		t.Fatalf("GetLiaConfig: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil config, got %+v", c)
	}
}

func TestUpsertLiaConfig_CreateThenUpdate_SingleRow(t *testing.T) {
	db := newTestDB(t, &domain.LiaConfig{})
	ctx := context.Background()

	first, err := UpsertLiaConfig(ctx, db, "Você é LIA.", true)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.ID != domain.LiaConfigID {
		t.Fatalf("config ID = %q", first.ID)
	}

	if _, err := UpsertLiaConfig(ctx, db, "Prompt novo.", false); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var total int64
	if err := db.Model(&domain.LiaConfig{}).Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Fatalf("singleton violated: %d rows", total)
	}

	got, err := GetLiaConfig(ctx, db)
	if err != nil {
		t.Fatalf("GetLiaConfig: %v", err)
	}
	if got == nil || got.SystemPrompt != "Prompt novo." || got.IsActive {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUpsertLiaConfig_CreateInactive(t *testing.T) {
	db := newTestDB(t, &domain.LiaConfig{})
	ctx := context.Background()

	// First-ever save can already switch the assistant off.
	if _, err := UpsertLiaConfig(ctx, db, "Você é LIA.", false); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := GetLiaConfig(ctx, db)
	if err != nil {
		t.Fatalf("GetLiaConfig: %v", err)
	}
	if got == nil || got.IsActive {
		t.Fatalf("inactive create not persisted: %+v", got)
	}

	// And a later save can switch it back on.
	if _, err := UpsertLiaConfig(ctx, db, "Você é LIA.", true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if got, err = GetLiaConfig(ctx, db); err != nil || got == nil || !got.IsActive {
		t.Fatalf("reactivation not persisted: got=%+v err=%v", got, err)
	}
}
