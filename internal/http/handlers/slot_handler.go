// Admin calendar handlers.
//
//   - GET    /api/admin/slots       (full calendar, leads preloaded)
//   - POST   /api/admin/slots       (open availability; future times only)
//   - DELETE /api/admin/slots/{id}  (blocked once booked)
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/services"
)

// CreateSlotRequest is the payload for opening a visit slot.
type CreateSlotRequest struct {
	// Date is the visit time, RFC 3339.
	Date time.Time `json:"date" binding:"required" example:"2026-12-20T14:00:00Z"`
}

// ListAdminSlots godoc
// @ID          adminListSlots
// @Summary     List the visit calendar
// @Description Returns every slot, soonest first, with the booked lead preloaded.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.VisitSlot
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/slots [get]
func (h *Handlers) ListAdminSlots(c *gin.Context) {
	slots, err := h.schedule.ListSlots(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to list slots")
		return
	}
	ok(c, http.StatusOK, slots)
}

// CreateSlot godoc
// @ID          adminCreateSlot
// @Summary     Open a visit slot
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateSlotRequest  true  "Slot payload"
// @Success     201  {object}  domain.VisitSlot
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid or past date"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/slots [post]
func (h *Handlers) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date required (RFC 3339)")
		return
	}

	slot, err := h.schedule.CreateSlot(c.Request.Context(), req.Date)
	if err != nil {
		if errors.Is(err, services.ErrSlotInPast) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "o horário precisa estar no futuro")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to create slot")
		return
	}
	ok(c, http.StatusCreated, slot)
}

// DeleteSlot godoc
// @ID          adminDeleteSlot
// @Summary     Delete a visit slot
// @Description Removes a slot while it is still available. Booked slots return 409.
// @Tags        Admin
// @Security    BearerAuth
// @Param       id  path  string  true  "Slot ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Slot already booked"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/slots/{id} [delete]
func (h *Handlers) DeleteSlot(c *gin.Context) {
	err := h.schedule.DeleteSlot(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrSlotNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "horário não encontrado")
	case errors.Is(err, services.ErrSlotBooked):
		fail(c, http.StatusConflict, ErrCodeConflict, "o horário já foi reservado e não pode ser removido")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to delete slot")
	}
}
