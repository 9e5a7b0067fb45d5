// Admin property handlers.
//
// CRUD over listings for the back-office:
//   - GET    /api/admin/properties
//   - POST   /api/admin/properties
//   - GET    /api/admin/properties/{id}
//   - PUT    /api/admin/properties/{id}
//   - DELETE /api/admin/properties/{id}
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/services"
)

// PropertyRequest is the admin create/update payload for a listing.
type PropertyRequest struct {
	Title       string   `json:"title" binding:"required" example:"Cobertura no Leblon"`
	Description string   `json:"description" binding:"required"`
	AIContext   string   `json:"aiContext"`
	Location    string   `json:"location" binding:"required" example:"Leblon, Rio de Janeiro"`
	Price       float64  `json:"price" example:"3500000"`
	Images      []string `json:"images"`
	// Features is comma-separated, as typed in the admin form.
	Features string `json:"features" example:"Piscina, Varanda"`
	Status   string `json:"status" example:"AVAILABLE"`
}

func (r PropertyRequest) toInput() services.PropertyInput {
	return services.PropertyInput{
		Title:       r.Title,
		Description: r.Description,
		AIContext:   r.AIContext,
		Location:    r.Location,
		Price:       r.Price,
		Images:      r.Images,
		Features:    r.Features,
		Status:      r.Status,
	}
}

// validationMessage strips the sentinel prefix so only the human-readable part
// reaches the admin form.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// ListProperties godoc
// @ID          adminListProperties
// @Summary     List all properties
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.Property
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/properties [get]
func (h *Handlers) ListProperties(c *gin.Context) {
	items, err := h.properties.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to list properties")
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateProperty godoc
// @ID          adminCreateProperty
// @Summary     Create a property
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.PropertyRequest  true  "Listing payload"
// @Success     201  {object}  domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/properties [post]
func (h *Handlers) CreateProperty(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.properties.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, services.ErrInvalidProperty) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to create property")
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetProperty godoc
// @ID          adminGetProperty
// @Summary     Fetch one property
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  string  true  "Property ID"
// @Success     200  {object}  domain.Property
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/properties/{id} [get]
func (h *Handlers) GetProperty(c *gin.Context) {
	p, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "imóvel não encontrado")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to fetch property")
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateProperty godoc
// @ID          adminUpdateProperty
// @Summary     Update a property
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string                    true  "Property ID"
// @Param       body  body  handlers.PropertyRequest  true  "Listing payload"
// @Success     200  {object}  domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/properties/{id} [put]
func (h *Handlers) UpdateProperty(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.properties.Update(c.Request.Context(), c.Param("id"), req.toInput())
	switch {
	case err == nil:
		ok(c, http.StatusOK, p)
	case errors.Is(err, services.ErrInvalidProperty):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
	case errors.Is(err, services.ErrPropertyNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "imóvel não encontrado")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to update property")
	}
}

// DeleteProperty godoc
// @ID          adminDeleteProperty
// @Summary     Delete a property
// @Tags        Admin
// @Security    BearerAuth
// @Param       id  path  string  true  "Property ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/admin/properties/{id} [delete]
func (h *Handlers) DeleteProperty(c *gin.Context) {
	err := h.properties.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrPropertyNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "imóvel não encontrado")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to delete property")
	}
}
