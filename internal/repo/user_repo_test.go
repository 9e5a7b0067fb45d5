package repo

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

func TestSeedAdmin_CreatesHashedUser(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()

	u, err := SeedAdmin(ctx, db, "admin@example.com", "s3nha-forte", "Admin")
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if u.Role != domain.RoleAdmin || u.Email != "admin@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Password == "s3nha-forte" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3nha-forte")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()

	first, err := SeedAdmin(ctx, db, "admin@example.com", "a", "Admin")
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	second, err := SeedAdmin(ctx, db, "admin@example.com", "changed", "Admin")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if second.ID != first.ID || second.Password != first.Password {
		t.Fatalf("seed overwrote existing user: %+v vs %+v", first, second)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	if _, err := GetUserByEmail(context.Background(), db, "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
