package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

// ----- Fake repo -----

type fakeLeadRepo struct {
	getLead *domain.Lead
	getErr  error

	created   *domain.Lead
	createErr error

	updatedID     string
	updatedFields map[string]any
	updateErr     error

	countTotal int64
	countErr   error

	pageItems  []domain.Lead
	pageOffset int
	pageLimit  int

	slotsForLead    int64
	slotsForLeadErr error

	deletedID string
	deleteErr error
}

func (r *fakeLeadRepo) GetLeadByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Lead, error) {
	return r.getLead, r.getErr
}

func (r *fakeLeadRepo) CreateLead(ctx context.Context, db *gorm.DB, l *domain.Lead) (*domain.Lead, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	l.ID = "lead-1"
	r.created = l
	return l, nil
}

func (r *fakeLeadRepo) UpdateLeadFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	r.updatedID, r.updatedFields = id, fields
	return r.updateErr
}

func (r *fakeLeadRepo) ListLeadsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Lead, error) {
	r.pageOffset, r.pageLimit = offset, limit
	return r.pageItems, nil
}

func (r *fakeLeadRepo) CountLeads(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.countTotal, r.countErr
}

func (r *fakeLeadRepo) CountSlotsForLead(ctx context.Context, db *gorm.DB, leadID string) (int64, error) {
	return r.slotsForLead, r.slotsForLeadErr
}

func (r *fakeLeadRepo) DeleteLead(ctx context.Context, db *gorm.DB, id string) error {
	r.deletedID = id
	return r.deleteErr
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func notFoundRepo() *fakeLeadRepo { return &fakeLeadRepo{getErr: gorm.ErrRecordNotFound} }

// ----- Tests -----

func TestUpsert_PhoneRequired(t *testing.T) {
	s := NewLeadService(nil, notFoundRepo())
	if _, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "   "}); !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestUpsert_CreateDefaults_Customer(t *testing.T) {
	r := notFoundRepo()
	s := NewLeadService(nil, r)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = fixedClock(now)

	lead, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "5511988887777"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if lead.DisplayName() != "Desconhecido" {
		t.Fatalf("default name = %q", lead.DisplayName())
	}
	if r.created.Interest != domain.InterestCold {
		t.Fatalf("default interest = %q", r.created.Interest)
	}
	if r.created.Notes != "Primeiro contato via Lia" {
		t.Fatalf("default notes = %q", r.created.Notes)
	}
	if !r.created.LastContact.Equal(now) {
		t.Fatalf("last contact = %v", r.created.LastContact)
	}
}

func TestUpsert_CreateAgentSentinelName(t *testing.T) {
	r := notFoundRepo()
	s := NewLeadService(nil, r)

	lead, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "551199", IsAgent: true})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if lead.DisplayName() != "Lead prospectado, ainda sem nome" {
		t.Fatalf("agent sentinel name = %q", lead.DisplayName())
	}
}

func TestUpsert_CreateUsesDefaultNameOverSentinels(t *testing.T) {
	r := notFoundRepo()
	s := NewLeadService(nil, r)

	lead, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "551199", DefaultName: "Cliente do Agendamento"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if lead.DisplayName() != "Cliente do Agendamento" {
		t.Fatalf("default name = %q", lead.DisplayName())
	}
}

func TestUpsert_InterestNormalization(t *testing.T) {
	// lowercase is accepted
	r := notFoundRepo()
	s := NewLeadService(nil, r)
	if _, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "1", Interest: "hot"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if r.created.Interest != domain.InterestHot {
		t.Fatalf("interest = %q; want HOT", r.created.Interest)
	}

	// unknown values are silently dropped, never an error
	r2 := notFoundRepo()
	s2 := NewLeadService(nil, r2)
	if _, err := s2.Upsert(context.Background(), LeadUpsertInput{Phone: "1", Interest: "urgent"}); err != nil {
		t.Fatalf("unknown interest must not error: %v", err)
	}
	if r2.created.Interest != domain.InterestCold {
		t.Fatalf("interest = %q; want default COLD", r2.created.Interest)
	}
}

func existingLead(name string) *domain.Lead {
	return &domain.Lead{ID: "lead-9", Phone: "551188", Name: &name, Interest: domain.InterestWarm}
}

func TestUpsert_AgentCannotOverwriteIdentity(t *testing.T) {
	r := &fakeLeadRepo{getLead: existingLead("Maria")}
	s := NewLeadService(nil, r)

	lead, err := s.Upsert(context.Background(), LeadUpsertInput{
		Phone: "551188", Name: "Bot Temp", Interest: "cold", Notes: "resumo da conversa", IsAgent: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if lead.DisplayName() != "Maria" {
		t.Fatalf("agent write changed name to %q", lead.DisplayName())
	}
	if _, ok := r.updatedFields["name"]; ok {
		t.Fatalf("name column must not be written by agent: %v", r.updatedFields)
	}
	if _, ok := r.updatedFields["interest_level"]; ok {
		t.Fatalf("interest column must not be written by agent: %v", r.updatedFields)
	}
	if r.updatedFields["notes"] != "resumo da conversa" {
		t.Fatalf("notes not updated: %v", r.updatedFields)
	}
	if _, ok := r.updatedFields["last_contact"]; !ok {
		t.Fatalf("last_contact must always refresh: %v", r.updatedFields)
	}
}

func TestUpsert_CustomerUpdatesIdentity(t *testing.T) {
	r := &fakeLeadRepo{getLead: existingLead("Maria")}
	s := NewLeadService(nil, r)

	lead, err := s.Upsert(context.Background(), LeadUpsertInput{
		Phone: "551188", Name: "Maria Souza", Interest: "HOT",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if lead.DisplayName() != "Maria Souza" {
		t.Fatalf("name = %q", lead.DisplayName())
	}
	if r.updatedFields["name"] != "Maria Souza" {
		t.Fatalf("name field: %v", r.updatedFields)
	}
	if r.updatedFields["interest_level"] != domain.InterestHot {
		t.Fatalf("interest field: %v", r.updatedFields)
	}
}

func TestUpsert_UpdateOmitsUnprovidedFields(t *testing.T) {
	r := &fakeLeadRepo{getLead: existingLead("Maria")}
	s := NewLeadService(nil, r)

	if _, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "551188"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(r.updatedFields) != 1 {
		t.Fatalf("only last_contact should be written, got %v", r.updatedFields)
	}
}

func TestUpsert_RepoErrorPropagates(t *testing.T) {
	sentinel := errors.New("db down")
	s := NewLeadService(nil, &fakeLeadRepo{getErr: sentinel})
	if _, err := s.Upsert(context.Background(), LeadUpsertInput{Phone: "1"}); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestUpsert_TwiceSamePhone_SingleRowAndFreshContact(t *testing.T) {
	db := newTestDB(t)
	s := NewLeadService(db, leadRepoShim{})
	ctx := context.Background()

	t0 := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	s.Now = fixedClock(t0)
	first, err := s.Upsert(ctx, LeadUpsertInput{Phone: "5511977776666", Name: "Ana"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	s.Now = fixedClock(t0.Add(time.Hour))
	second, err := s.Upsert(ctx, LeadUpsertInput{Phone: "5511977776666", Notes: "quer visitar sábado"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("two rows for one phone: %s vs %s", first.ID, second.ID)
	}
	var total int64
	if err := db.Model(&domain.Lead{}).Count(&total).Error; err != nil || total != 1 {
		t.Fatalf("lead rows = %d (%v)", total, err)
	}
	if !second.LastContact.After(first.LastContact) {
		t.Fatalf("last contact not advanced: %v vs %v", second.LastContact, first.LastContact)
	}
}

func TestDelete_GuardsBookedVisits(t *testing.T) {
	r := &fakeLeadRepo{slotsForLead: 1}
	s := NewLeadService(nil, r)
	if err := s.Delete(context.Background(), "lead-9"); !errors.Is(err, ErrLeadHasVisits) {
		t.Fatalf("expected ErrLeadHasVisits, got %v", err)
	}
	if r.deletedID != "" {
		t.Fatalf("delete must not reach the store when guarded")
	}
}

func TestDelete_MissingLead(t *testing.T) {
	r := &fakeLeadRepo{deleteErr: gorm.ErrRecordNotFound}
	s := NewLeadService(nil, r)
	if err := s.Delete(context.Background(), "ghost"); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestListPage_Defaults(t *testing.T) {
	r := &fakeLeadRepo{countTotal: 42, pageItems: []domain.Lead{{ID: "a"}, {ID: "b"}}}
	s := NewLeadService(nil, r)

	items, total, err := s.ListPage(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 42 || len(items) != 2 {
		t.Fatalf("total=%d len=%d", total, len(items))
	}
	if r.pageOffset != 0 || r.pageLimit != 20 {
		t.Fatalf("defaults not applied: offset=%d limit=%d", r.pageOffset, r.pageLimit)
	}
}
