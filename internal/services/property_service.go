// Package services – PropertyService
//
// This file implements admin CRUD over listings. Validation mirrors the
// admin form contract: meaningful title and description, a located, priced
// property with at least one photo. Features arrive as one comma-separated
// string from the form and are split into tags here.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// PropertyInput is the admin create/update payload.
type PropertyInput struct {
	Title       string
	Description string
	AIContext   string
	Location    string
	Price       float64
	Images      []string
	// Features is comma-separated, as typed in the form ("Piscina, Varanda").
	Features string
	Status    string
}

// PropertyService implements admin listing management.
type PropertyService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// validate enforces the form contract. All violations wrap ErrInvalidProperty
// so handlers can map the whole family to a 400.
func (in PropertyInput) validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Title)) < 5 {
		return fmt.Errorf("%w: o título deve ter pelo menos 5 caracteres", ErrInvalidProperty)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < 20 {
		return fmt.Errorf("%w: a descrição pública precisa ser mais detalhada", ErrInvalidProperty)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Location)) < 3 {
		return fmt.Errorf("%w: informe o endereço ou bairro", ErrInvalidProperty)
	}
	if in.Price < 1 {
		return fmt.Errorf("%w: o preço é obrigatório", ErrInvalidProperty)
	}
	if len(in.Images) == 0 {
		return fmt.Errorf("%w: adicione pelo menos uma foto", ErrInvalidProperty)
	}
	if in.Status != "" {
		switch domain.PropertyStatus(in.Status) {
		case domain.PropertyAvailable, domain.PropertySold, domain.PropertyRented, domain.PropertyReserved:
		default:
			return fmt.Errorf("%w: status desconhecido %q", ErrInvalidProperty, in.Status)
		}
	}
	return nil
}

// SplitFeatures turns the comma-separated form value into trimmed tags.
func SplitFeatures(s string) domain.StringList {
	parts := strings.Split(s, ",")
	out := make(domain.StringList, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Create validates and persists a new listing.
func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (*domain.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	status := domain.PropertyStatus(in.Status)
	if in.Status == "" {
		status = domain.PropertyAvailable
	}
	return repo.CreateProperty(ctx, s.DB, &domain.Property{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		AIContext:   strings.TrimSpace(in.AIContext),
		Location:    strings.TrimSpace(in.Location),
		Price:       in.Price,
		Images:      domain.StringList(in.Images),
		Features:    SplitFeatures(in.Features),
		Status:      status,
	})
}

// Get fetches one listing or ErrPropertyNotFound.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := repo.GetProperty(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	return p, err
}

// List returns every listing, newest first.
func (s *PropertyService) List(ctx context.Context) ([]domain.Property, error) {
	return repo.ListProperties(ctx, s.DB)
}

// Update validates and fully replaces the editable fields of a listing.
func (s *PropertyService) Update(ctx context.Context, id string, in PropertyInput) (*domain.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	status := domain.PropertyStatus(in.Status)
	if in.Status == "" {
		status = domain.PropertyAvailable
	}
	fields := map[string]any{
		"title":       strings.TrimSpace(in.Title),
		"description": strings.TrimSpace(in.Description),
		"ai_context":  strings.TrimSpace(in.AIContext),
		"location":    strings.TrimSpace(in.Location),
		"price":       in.Price,
		"images":      domain.StringList(in.Images),
		"features":    SplitFeatures(in.Features),
		"status":      status,
	}
	if err := repo.UpdateProperty(ctx, s.DB, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete hard-deletes a listing (no soft delete, no undo).
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteProperty(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPropertyNotFound
	}
	return err
}
