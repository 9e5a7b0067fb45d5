// Assistant configuration handlers.
//
//   - GET /api/admin/brain  (stored config, or JSON null when never saved)
//   - PUT /api/admin/brain  (upsert prompt + active switch)
//
// The admin UI renders its own default prompt when the stored config is null,
// so GET deliberately does not fabricate one.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BrainRequest is the payload for updating the assistant configuration.
type BrainRequest struct {
	SystemPrompt string `json:"systemPrompt" binding:"required"`
	IsActive     bool   `json:"isActive"`
}

// GetBrain godoc
// @ID          adminGetBrain
// @Summary     Fetch the assistant configuration
// @Description Returns the stored system prompt and active switch, or JSON null when never saved.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.LiaConfig
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/brain [get]
func (h *Handlers) GetBrain(c *gin.Context) {
	cfg, err := h.brain.Get(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to load configuration")
		return
	}
	// A nil config serializes as JSON null; the frontend falls back to its
	// default prompt.
	ok(c, http.StatusOK, cfg)
}

// UpdateBrain godoc
// @ID          adminUpdateBrain
// @Summary     Update the assistant configuration
// @Description Upserts the system prompt and active switch on the singleton config row.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.BrainRequest  true  "Configuration payload"
// @Success     200  {object}  domain.LiaConfig
// @Failure     400  {object}  handlers.ErrorResponse  "Missing prompt"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/brain [put]
func (h *Handlers) UpdateBrain(c *gin.Context) {
	var req BrainRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SystemPrompt) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "systemPrompt required")
		return
	}

	cfg, err := h.brain.Update(c.Request.Context(), req.SystemPrompt, req.IsActive)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to save configuration")
		return
	}
	ok(c, http.StatusOK, cfg)
}
