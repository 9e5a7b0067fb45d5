// Package services – LeadService
//
// This file implements the LeadService, which owns the phone-keyed intake of
// contacts. Every inbound touch — whether the customer wrote in or the
// assistant pushed a summary — lands here as an upsert on the lead row for
// that phone number. The merge rules protect customer-provided identity
// fields from being clobbered by assistant writes, and every touch refreshes
// LastContact.
//
// Service-level errors (e.g. ErrPhoneRequired, ErrLeadHasVisits) are returned
// for predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
	"github.com/lia-imoveis/backoffice/internal/sysutil"
)

// Names and notes recorded when the caller did not supply them. The agent
// sentinel is deliberately distinct from "Desconhecido" so the admin can tell
// assistant-initiated outreach from inbound customer contact at a glance.
const (
	defaultLeadName   = "Desconhecido"
	agentLeadName     = "Lead prospectado, ainda sem nome"
	firstContactNotes = "Primeiro contato via Lia"
)

// LeadRepo defines the repository contract required by LeadService.
type LeadRepo interface {
	// GetLeadByPhone fetches a lead by phone or returns repo.ErrNotFound.
	GetLeadByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Lead, error)

	// CreateLead inserts a new lead row.
	CreateLead(ctx context.Context, db *gorm.DB, l *domain.Lead) (*domain.Lead, error)

	// UpdateLeadFields applies a column map to an existing lead.
	UpdateLeadFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error

	// ListLeadsPage returns a page of leads, freshest contact first.
	ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error)

	// CountLeads returns the total number of leads.
	CountLeads(ctx context.Context, db *gorm.DB) (int64, error)

	// CountSlotsForLead counts visit slots referencing the lead.
	CountSlotsForLead(ctx context.Context, db *gorm.DB, leadID string) (int64, error)

	// DeleteLead hard-deletes a lead.
	DeleteLead(ctx context.Context, db *gorm.DB, id string) error
}

// LeadUpsertInput is the normalized intake payload. Interest carries the raw
// string from the wire; it is validated here, not at the transport boundary,
// because unknown classifications are silently dropped rather than rejected.
type LeadUpsertInput struct {
	Phone    string
	Name     string
	Interest string
	Notes    string
	// IsAgent marks writes originated by the assistant. Agent writes may
	// append notes and refresh LastContact but never overwrite the name or
	// interest level a human recorded.
	IsAgent bool
	// DefaultName, when set, is used on first contact only, in place of the
	// package defaults. It never overwrites the name of an existing lead.
	DefaultName string
}

// LeadService implements the lead intake and admin lead management use-cases.
type LeadService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the lead repository used by this service.
	Repo LeadRepo

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewLeadService constructs a LeadService with a real clock.
func NewLeadService(db *gorm.DB, r LeadRepo) *LeadService {
	return &LeadService{DB: db, Repo: r, Now: func() time.Time { return time.Now().UTC() }}
}

// Upsert creates or updates exactly one lead keyed by phone and returns the
// persisted lead.
//
// Semantics:
//   - Phone is mandatory; ErrPhoneRequired otherwise.
//   - Interest is matched case-insensitively against the known levels;
//     anything else is treated as "not provided".
//   - LastContact is refreshed on every call, create or update.
//   - When IsAgent is set, Name and Interest of an existing lead are left
//     untouched; only Notes and LastContact may change.
func (s *LeadService) Upsert(ctx context.Context, in LeadUpsertInput) (*domain.Lead, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	name := strings.TrimSpace(in.Name)
	notes := strings.TrimSpace(in.Notes)
	interest, interestOK := domain.ParseInterestLevel(in.Interest)
	now := s.Now()

	existing, err := s.Repo.GetLeadByPhone(ctx, s.DB, phone)
	switch {
	case err == nil:
		return s.update(ctx, existing, name, notes, interest, interestOK, in.IsAgent, now)
	case errors.Is(err, repo.ErrNotFound):
		created, err := s.create(ctx, phone, sysutil.FirstNonEmpty(name, strings.TrimSpace(in.DefaultName)), notes, interest, interestOK, in.IsAgent, now)
		if err != nil && repo.IsUniqueViolation(err) {
			// Lost a create race for this phone; merge onto the winner.
			winner, gerr := s.Repo.GetLeadByPhone(ctx, s.DB, phone)
			if gerr != nil {
				return nil, gerr
			}
			return s.update(ctx, winner, name, notes, interest, interestOK, in.IsAgent, now)
		}
		return created, err
	default:
		return nil, err
	}
}

func (s *LeadService) create(ctx context.Context, phone, name, notes string, interest domain.InterestLevel, interestOK, isAgent bool, now time.Time) (*domain.Lead, error) {
	if name == "" {
		if isAgent {
			name = agentLeadName
		} else {
			name = defaultLeadName
		}
	}
	if notes == "" {
		notes = firstContactNotes
	}
	if !interestOK {
		interest = domain.InterestCold
	}
	return s.Repo.CreateLead(ctx, s.DB, &domain.Lead{
		Phone:       phone,
		Name:        &name,
		Interest:    interest,
		Notes:       notes,
		LastContact: now,
	})
}

func (s *LeadService) update(ctx context.Context, existing *domain.Lead, name, notes string, interest domain.InterestLevel, interestOK, isAgent bool, now time.Time) (*domain.Lead, error) {
	fields := map[string]any{"last_contact": now}
	if notes != "" {
		fields["notes"] = notes
		existing.Notes = notes
	}
	if !isAgent {
		if name != "" {
			fields["name"] = name
			existing.Name = &name
		}
		if interestOK {
			fields["interest_level"] = interest
			existing.Interest = interest
		}
	}
	if err := s.Repo.UpdateLeadFields(ctx, s.DB, existing.ID, fields); err != nil {
		return nil, err
	}
	existing.LastContact = now
	return existing, nil
}

// ListPage returns a page of leads for the admin table, with the total count.
func (s *LeadService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountLeads(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Lead{}, 0, nil
	}

	items, err := s.Repo.ListLeadsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Delete removes a lead unless a visit slot still references it, in which
// case ErrLeadHasVisits is returned and both rows are left intact.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	n, err := s.Repo.CountSlotsForLead(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrLeadHasVisits
	}
	if err := s.Repo.DeleteLead(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrLeadNotFound
		}
		return err
	}
	return nil
}
