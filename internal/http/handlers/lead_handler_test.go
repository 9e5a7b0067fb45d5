package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/services"
)

func TestListLeads_PaginationEnvelope(t *testing.T) {
	var gotPage, gotSize int
	h := newTestHandlers(stubSet{leads: stubLeadSvc{
		listPage: func(_ context.Context, page, pageSize int) ([]domain.Lead, int64, error) {
			gotPage, gotSize = page, pageSize
			return []domain.Lead{{ID: "l1"}, {ID: "l2"}}, 45, nil
		},
	}})

	w := perform(t, http.MethodGet, "/api/admin/leads?page=2&page_size=20", func(r *gin.Engine) {
		r.GET("/api/admin/leads", h.ListLeads)
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if gotPage != 2 || gotSize != 20 {
		t.Fatalf("page/size = %d/%d; want 2/20", gotPage, gotSize)
	}
	resp := decodeJSON[ListLeadsResponse](t, w)
	if resp.Pagination.Total != 45 || resp.Pagination.TotalPages != 3 {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}
	if !resp.Pagination.HasNext {
		t.Fatalf("expected has_next on page 2 of 3")
	}
	if len(resp.Leads) != 2 {
		t.Fatalf("leads = %d; want 2", len(resp.Leads))
	}
}

func TestListLeads_ClampsBadParams(t *testing.T) {
	var gotPage, gotSize int
	h := newTestHandlers(stubSet{leads: stubLeadSvc{
		listPage: func(_ context.Context, page, pageSize int) ([]domain.Lead, int64, error) {
			gotPage, gotSize = page, pageSize
			return nil, 0, nil
		},
	}})

	w := perform(t, http.MethodGet, "/api/admin/leads?page=-3&page_size=9999", func(r *gin.Engine) {
		r.GET("/api/admin/leads", h.ListLeads)
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if gotPage != 1 || gotSize != 100 {
		t.Fatalf("page/size = %d/%d; want clamped 1/100", gotPage, gotSize)
	}
}

func TestDeleteLead_NoContent(t *testing.T) {
	var gotID string
	h := newTestHandlers(stubSet{leads: stubLeadSvc{
		delete: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}})

	w := perform(t, http.MethodDelete, "/api/admin/leads/l9", func(r *gin.Engine) {
		r.DELETE("/api/admin/leads/:id", h.DeleteLead)
	}, nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", w.Code)
	}
	if gotID != "l9" {
		t.Fatalf("id = %q; want l9", gotID)
	}
}

func TestDeleteLead_NotFound404(t *testing.T) {
	h := newTestHandlers(stubSet{leads: stubLeadSvc{
		delete: func(context.Context, string) error { return services.ErrLeadNotFound },
	}})

	w := perform(t, http.MethodDelete, "/api/admin/leads/missing", func(r *gin.Engine) {
		r.DELETE("/api/admin/leads/:id", h.DeleteLead)
	}, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
	if resp := decodeJSON[ErrorResponse](t, w); resp.Message != "lead não encontrado" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestDeleteLead_HasVisits409(t *testing.T) {
	h := newTestHandlers(stubSet{leads: stubLeadSvc{
		delete: func(context.Context, string) error { return services.ErrLeadHasVisits },
	}})

	w := perform(t, http.MethodDelete, "/api/admin/leads/l1", func(r *gin.Engine) {
		r.DELETE("/api/admin/leads/:id", h.DeleteLead)
	}, nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d; want 409", w.Code)
	}
	if resp := decodeJSON[ErrorResponse](t, w); resp.Code != ErrCodeConflict {
		t.Fatalf("code = %q", resp.Code)
	}
}
