// Agent-facing HTTP handlers.
//
// This file exposes the endpoints consumed by the external chat assistant:
//   - GET  /api/lia/context   (property catalog projection)
//   - POST /api/lia/lead      (phone-keyed lead upsert)
//   - POST /api/lia/schedule  (visit booking)
//   - GET  /api/lia/slots     (upcoming free slots)
//
// These routes are server-to-server and deliberately unauthenticated; the
// trust boundary is the network, not a credential. Field names in request and
// response bodies are part of the agent prompt contract and must not change.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/services"
)

//
// DTOs
//

// LiaLeadRequest is the lead upsert payload pushed by the assistant.
type LiaLeadRequest struct {
	// Phone is the natural key of the lead (required).
	Phone string `json:"phone" example:"5511999998888"`
	// Name optionally identifies the contact.
	Name string `json:"name" example:"Maria Souza"`
	// InterestLevel is the assistant's classification (COLD/WARM/HOT/SCHEDULED).
	InterestLevel string `json:"interestLevel" example:"HOT"`
	// Notes carries a conversation summary.
	Notes string `json:"notes" example:"Procura apartamento de 2 quartos na zona sul"`
	// IsAgent marks automated writes: they may append notes and refresh the
	// contact time but never overwrite a human-recorded name or interest
	// level. Absent means a human-curated write.
	IsAgent bool `json:"isAgent"`
}

// LiaLeadResponse acknowledges a lead upsert.
type LiaLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
}

// LiaScheduleRequest is the booking payload sent by the assistant.
type LiaScheduleRequest struct {
	SlotID string `json:"slotId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Phone  string `json:"phone" example:"5511999998888"`
	Name   string `json:"name" example:"Maria Souza"`
	Email  string `json:"email" example:"maria@example.com"`
}

// LiaScheduleData is the confirmation detail block.
type LiaScheduleData struct {
	DataVisita time.Time `json:"data_visita"`
	Cliente    string    `json:"cliente"`
}

// LiaScheduleResponse confirms a successful booking.
type LiaScheduleResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    LiaScheduleData `json:"data"`
}

//
// Handlers
//

// GetContext godoc
// @ID          liaContext
// @Summary     Property catalog for the assistant
// @Description Returns up to five available properties, newest first, optionally filtered by a free-text query across title, description, location, hidden sales context and feature tags.
// @Tags        Lia
// @Produce     json
//
// @Param       query  query  string  false  "Free-text search term"  example(piscina)
//
// @Success     200  {array}   services.PropertyHighlight
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/lia/context [get]
func (h *Handlers) GetContext(c *gin.Context) {
	items, err := h.catalog.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCatalogFailed, "erro interno ao buscar imóveis")
		return
	}
	ok(c, http.StatusOK, items)
}

// UpsertLead godoc
// @ID          liaUpsertLead
// @Summary     Upsert a lead by phone
// @Description Creates or updates the lead for the given phone. When isAgent is true the write never overwrites a human-recorded name or interest level; unknown interest values are silently ignored.
// @Tags        Lia
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LiaLeadRequest  true  "Lead payload"
//
// @Success     200  {object}  handlers.LiaLeadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing phone"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/lia/lead [post]
func (h *Handlers) UpsertLead(c *gin.Context) {
	var req LiaLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.leads.Upsert(c.Request.Context(), services.LeadUpsertInput{
		Phone:    req.Phone,
		Name:     req.Name,
		Interest: req.InterestLevel,
		Notes:    req.Notes,
		IsAgent:  req.IsAgent,
	})
	if err != nil {
		if errors.Is(err, services.ErrPhoneRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "telefone é obrigatório")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeLeadFailed, "erro ao processar lead")
		return
	}
	ok(c, http.StatusOK, LiaLeadResponse{Success: true, LeadID: lead.ID})
}

// ScheduleVisit godoc
// @ID          liaScheduleVisit
// @Summary     Book a visit slot
// @Description Upserts the lead by phone and claims the slot. A slot is booked at most once; concurrent attempts past the first receive 409.
// @Tags        Lia
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LiaScheduleRequest  true  "Booking payload"
//
// @Success     200  {object}  handlers.LiaScheduleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing slotId or phone"
// @Failure     409  {object}  handlers.ErrorResponse  "Slot already booked or gone"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/lia/schedule [post]
func (h *Handlers) ScheduleVisit(c *gin.Context) {
	var req LiaScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	conf, err := h.booking.Schedule(c.Request.Context(), services.BookingInput{
		SlotID: req.SlotID,
		Phone:  req.Phone,
		Name:   req.Name,
		Email:  req.Email,
	})
	switch {
	case err == nil:
		ok(c, http.StatusOK, LiaScheduleResponse{
			Success: true,
			Message: "Agendamento realizado com sucesso",
			Data:    LiaScheduleData{DataVisita: conf.Date, Cliente: conf.ClientName},
		})
	case errors.Is(err, services.ErrSlotRequired), errors.Is(err, services.ErrPhoneRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dados incompletos")
	case errors.Is(err, services.ErrSlotNotFound), errors.Is(err, services.ErrSlotTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, "este horário acabou de ser reservado por outra pessoa")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeScheduleFailed, "erro interno")
	}
}

// ListSlots godoc
// @ID          liaListSlots
// @Summary     Upcoming free visit slots
// @Description Returns up to five future available slots, soonest first, rendered in Portuguese for the chat plus an ISO timestamp.
// @Tags        Lia
// @Produce     json
//
// @Success     200  {array}   services.SlotOffer
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/lia/slots [get]
func (h *Handlers) ListSlots(c *gin.Context) {
	offers, err := h.schedule.UpcomingOffers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "erro ao buscar horários")
		return
	}
	ok(c, http.StatusOK, offers)
}
