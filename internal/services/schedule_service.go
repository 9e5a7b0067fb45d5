// Package services – ScheduleService
//
// This file implements the visit calendar: the admin defines open
// availability, the assistant lists upcoming free slots, and booked slots are
// protected from deletion. Slot offers carry a human-readable Portuguese
// rendering of the date alongside the machine timestamp so the agent can
// paste it straight into a chat message.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// DefaultSlotsLimit caps how many upcoming slots are offered to the agent.
const DefaultSlotsLimit = 5

// SlotOffer is the agent-facing rendering of one free slot.
type SlotOffer struct {
	ID string `json:"id"`
	// TextoLegivel is a chat-ready rendering, e.g. "Segunda-feira, 20/12 às 14:00".
	TextoLegivel string `json:"texto_legivel"`
	// ISO is the RFC 3339 timestamp for tooling.
	ISO string `json:"iso"`
}

// ScheduleService manages visit slots for both the admin calendar and the
// agent's availability listing.
type ScheduleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Locale selects the language of TextoLegivel. Defaults to Brazilian
	// Portuguese, the language the assistant speaks.
	Locale language.Tag
	// Limit caps agent slot listings; zero falls back to DefaultSlotsLimit.
	Limit int
	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewScheduleService constructs a ScheduleService with pt-BR rendering and a
// real clock.
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		DB:     db,
		Locale: language.BrazilianPortuguese,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateSlot opens availability at the given time. The time must be in the
// future; a calendar of past visits helps nobody.
func (s *ScheduleService) CreateSlot(ctx context.Context, date time.Time) (*domain.VisitSlot, error) {
	if !date.After(s.Now()) {
		return nil, ErrSlotInPast
	}
	return repo.CreateSlot(ctx, s.DB, date)
}

// ListSlots returns the full calendar, soonest first, with booked leads
// preloaded for the admin view.
func (s *ScheduleService) ListSlots(ctx context.Context) ([]domain.VisitSlot, error) {
	return repo.ListSlots(ctx, s.DB)
}

// DeleteSlot removes a slot while it is still AVAILABLE. Booked slots return
// ErrSlotBooked; unknown IDs return ErrSlotNotFound.
func (s *ScheduleService) DeleteSlot(ctx context.Context, id string) error {
	err := repo.DeleteSlotIfAvailable(ctx, s.DB, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, gerr := repo.GetSlot(ctx, s.DB, id); errors.Is(gerr, repo.ErrNotFound) {
		return ErrSlotNotFound
	} else if gerr != nil {
		return gerr
	}
	return ErrSlotBooked
}

// UpcomingOffers returns up to Limit future AVAILABLE slots rendered for the
// agent, soonest first.
func (s *ScheduleService) UpcomingOffers(ctx context.Context) ([]SlotOffer, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultSlotsLimit
	}
	slots, err := repo.ListUpcomingAvailable(ctx, s.DB, s.Now(), limit)
	if err != nil {
		return nil, err
	}
	out := make([]SlotOffer, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotOffer{
			ID:           slot.ID,
			TextoLegivel: humanDate(slot.Date, s.Locale),
			ISO:          slot.Date.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// ptBRWeekdays maps time.Weekday to its Brazilian Portuguese name.
var ptBRWeekdays = [...]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

// humanDate renders a slot time for chat. Portuguese gets the full local
// form; any other locale falls back to Go's English layout.
func humanDate(t time.Time, loc language.Tag) string {
	base, _ := loc.Base()
	if base.String() == "pt" {
		return fmt.Sprintf("%s, %02d/%02d às %02d:%02d",
			ptBRWeekdays[t.Weekday()], t.Day(), int(t.Month()), t.Hour(), t.Minute())
	}
	return t.Format("Monday, 02/01 at 15:04")
}
