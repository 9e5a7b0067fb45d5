// Handler wiring.
//
// This file declares the service contracts consumed by the HTTP layer and the
// Handlers struct binding them. Handlers are transport-thin: they validate
// input, call application services, and translate sentinel errors into HTTP
// responses. All contracts are context-aware and safe for concurrent use.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
	"github.com/lia-imoveis/backoffice/internal/services"
	"github.com/lia-imoveis/backoffice/internal/utils"
)

// LeadService defines the lead intake and admin lead operations.
type LeadService interface {
	// Upsert creates or updates the lead keyed by phone.
	Upsert(ctx context.Context, in services.LeadUpsertInput) (*domain.Lead, error)
	// ListPage returns a page of leads, freshest contact first, plus the total.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error)
	// Delete removes a lead unless a visit slot still references it.
	Delete(ctx context.Context, id string) error
}

// BookingService defines the visit-booking operation.
type BookingService interface {
	// Schedule binds a lead to a slot; at most one caller wins a given slot.
	Schedule(ctx context.Context, in services.BookingInput) (*services.BookingConfirmation, error)
}

// CatalogService defines the agent-facing property projection.
type CatalogService interface {
	// Search returns available properties matching an optional free-text query.
	Search(ctx context.Context, query string) ([]services.PropertyHighlight, error)
}

// BrainService defines access to the assistant configuration singleton.
type BrainService interface {
	// Get returns the stored configuration, or nil when never saved.
	Get(ctx context.Context) (*domain.LiaConfig, error)
	// Update upserts the system prompt and active flag.
	Update(ctx context.Context, systemPrompt string, isActive bool) (*domain.LiaConfig, error)
}

// ScheduleService defines visit-calendar operations.
type ScheduleService interface {
	// CreateSlot opens availability at a future time.
	CreateSlot(ctx context.Context, date time.Time) (*domain.VisitSlot, error)
	// ListSlots returns the full calendar, soonest first.
	ListSlots(ctx context.Context) ([]domain.VisitSlot, error)
	// DeleteSlot removes a slot while it is still available.
	DeleteSlot(ctx context.Context, id string) error
	// UpcomingOffers lists upcoming free slots rendered for the agent.
	UpcomingOffers(ctx context.Context) ([]services.SlotOffer, error)
}

// PropertyService defines admin listing management.
type PropertyService interface {
	Create(ctx context.Context, in services.PropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, id string, in services.PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines admin login.
type AuthService interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// StatsService defines the dashboard aggregation.
type StatsService interface {
	Overview(ctx context.Context) (*repo.DashboardStats, error)
}

// Handlers groups the HTTP endpoints of the agent and admin APIs. It depends
// on abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	leads      LeadService
	booking    BookingService
	catalog    CatalogService
	brain      BrainService
	schedule   ScheduleService
	properties PropertyService
	auth       AuthService
	stats      StatsService
}

// New constructs a Handlers instance bound to the given services.
func New(
	leads LeadService,
	booking BookingService,
	catalog CatalogService,
	brain BrainService,
	schedule ScheduleService,
	properties PropertyService,
	auth AuthService,
	stats StatsService,
) *Handlers {
	return &Handlers{
		leads:      leads,
		booking:    booking,
		catalog:    catalog,
		brain:      brain,
		schedule:   schedule,
		properties: properties,
		auth:       auth,
		stats:      stats,
	}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
