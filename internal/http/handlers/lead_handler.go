// Admin lead handlers.
//
//   - GET    /api/admin/leads          (paginated, freshest contact first)
//   - DELETE /api/admin/leads/{id}     (blocked while booked visits exist)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/services"
)

// ListLeadsResponse wraps a page of leads and pagination information.
type ListLeadsResponse struct {
	Leads      []domain.Lead `json:"leads"`
	Pagination Pagination    `json:"pagination"`
}

// ListLeads godoc
// @ID          adminListLeads
// @Summary     List leads (paginated)
// @Description Returns a page of leads ordered by most recent contact.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListLeadsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/leads [get]
func (h *Handlers) ListLeads(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.leads.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to list leads")
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListLeadsResponse{
		Leads: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// DeleteLead godoc
// @ID          adminDeleteLead
// @Summary     Delete a lead
// @Description Removes a lead. Rejected with 409 while a booked visit still references it.
// @Tags        Admin
// @Security    BearerAuth
// @Param       id  path  string  true  "Lead ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Lead has booked visits"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/leads/{id} [delete]
func (h *Handlers) DeleteLead(c *gin.Context) {
	err := h.leads.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrLeadNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "lead não encontrado")
	case errors.Is(err, services.ErrLeadHasVisits):
		fail(c, http.StatusConflict, ErrCodeConflict, "o lead possui visitas agendadas; cancele-as antes de excluir")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to delete lead")
	}
}
