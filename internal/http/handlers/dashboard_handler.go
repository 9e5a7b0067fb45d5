// Dashboard handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard godoc
// @ID          adminDashboard
// @Summary     Dashboard counters
// @Description Returns the aggregate counters rendered on the admin landing page.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  repo.DashboardStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/dashboard [get]
func (h *Handlers) GetDashboard(c *gin.Context) {
	stats, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to aggregate stats")
		return
	}
	ok(c, http.StatusOK, stats)
}
