// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers admin users: lookup for login and the
// idempotent provisioning step run at startup.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// GetUserByEmail fetches a user by email or returns ErrNotFound.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SeedAdmin provisions the ADMIN account when it does not exist yet. An
// existing row is left untouched, so rotating the env password requires a
// manual reset. Returns the persisted user either way.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (*domain.User, error) {
	if u, err := GetUserByEmail(ctx, db, email); err == nil {
		return u, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     domain.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		// Lost a race with a concurrent seeder; re-read the winner.
		if IsUniqueViolation(err) {
			return GetUserByEmail(ctx, db, email)
		}
		return nil, err
	}
	return u, nil
}
