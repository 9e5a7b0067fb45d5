// Package services – BookingService
//
// This file implements the visit-booking workflow, the one path in the system
// with a real concurrency contract: a slot transitions AVAILABLE→BOOKED at
// most once, no matter how many callers race for it. The claim is a single
// conditional update (status predicate + rows-affected check). The lead
// upsert commits before the claim: a customer who loses the race is still a
// captured contact.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// bookingLeadName is recorded when a booking arrives without a name.
const bookingLeadName = "Cliente do Agendamento"

// BookingInput is the payload of a booking attempt from the assistant.
type BookingInput struct {
	SlotID string
	Phone  string
	Name   string
	// Email has no dedicated lead column; when present it is recorded in the
	// lead's notes.
	Email string
}

// BookingConfirmation is returned on a successful claim.
type BookingConfirmation struct {
	// Date is the scheduled visit time.
	Date time.Time
	// ClientName is the lead name after the upsert, for the agent to echo.
	ClientName string
}

// BookingService binds leads to visit slots with single-claim semantics.
type BookingService struct {
	// DB is the database handle; each booking runs in its own transaction.
	DB *gorm.DB
	// Leads performs the phone-keyed upsert step.
	Leads *LeadService
}

// Schedule attempts to bind a lead (upserted by phone) to the given slot.
//
// Flow:
//  1. Validate slot ID and phone.
//  2. Upsert the lead: interest forced to SCHEDULED (booking a visit always
//     escalates the classification), name defaulted, email noted. This
//     commits on its own: the contact survives even when the claim below
//     loses.
//  3. Claim the slot with a conditional update. Exactly one concurrent caller
//     wins; everyone else gets ErrSlotTaken (or ErrSlotNotFound when the ID
//     never existed). Rebooking an already-booked slot is rejected even for
//     the same phone.
//
// On success the slot date and the lead's display name are returned.
func (s *BookingService) Schedule(ctx context.Context, in BookingInput) (*BookingConfirmation, error) {
	slotID := strings.TrimSpace(in.SlotID)
	if slotID == "" {
		return nil, ErrSlotRequired
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, ErrPhoneRequired
	}

	notes := ""
	if e := strings.TrimSpace(in.Email); e != "" {
		notes = fmt.Sprintf("Email informado: %s", e)
	}

	lead, err := s.Leads.Upsert(ctx, LeadUpsertInput{
		Phone:       in.Phone,
		Name:        in.Name,
		Interest:    string(domain.InterestScheduled),
		Notes:       notes,
		DefaultName: bookingLeadName,
	})
	if err != nil {
		return nil, err
	}

	var out BookingConfirmation
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.ClaimSlot(ctx, tx, slotID, lead.ID); err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			// The claim touched zero rows: either the slot never existed or
			// someone else booked it first.
			if _, gerr := repo.GetSlot(ctx, tx, slotID); errors.Is(gerr, repo.ErrNotFound) {
				return ErrSlotNotFound
			} else if gerr != nil {
				return gerr
			}
			return ErrSlotTaken
		}

		slot, err := repo.GetSlot(ctx, tx, slotID)
		if err != nil {
			return err
		}
		out = BookingConfirmation{Date: slot.Date, ClientName: lead.DisplayName()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
