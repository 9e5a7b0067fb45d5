package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
)

type fakeCatalogRepo struct {
	props []domain.Property
	err   error

	gotQuery string
	gotLimit int
}

func (r *fakeCatalogRepo) SearchAvailableProperties(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Property, error) {
	r.gotQuery, r.gotLimit = query, limit
	return r.props, r.err
}

func TestCatalogSearch_Projection(t *testing.T) {
	r := &fakeCatalogRepo{props: []domain.Property{{
		ID:          "p1",
		Title:       "Cobertura no Leblon",
		Description: "Vista para o mar.",
		AIContext:   "Dono aceita oferta abaixo do anunciado.",
		Location:    "Leblon, Rio de Janeiro",
		Price:       3500000,
		Images:      domain.StringList{"cover.jpg", "pool.jpg"},
		Features:    domain.StringList{"Piscina", "Varanda"},
	}}}
	s := &CatalogService{Repo: r}

	got, err := s.Search(context.Background(), "  leblon ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if r.gotQuery != "leblon" {
		t.Fatalf("query not trimmed: %q", r.gotQuery)
	}
	if r.gotLimit != DefaultCatalogLimit {
		t.Fatalf("limit = %d", r.gotLimit)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}

	h := got[0]
	if h.ID != "p1" || h.Titulo != "Cobertura no Leblon" || h.Preco != 3500000 {
		t.Fatalf("projection: %+v", h)
	}
	want := "Descrição: Vista para o mar.\n\nDetalhes Internos (Use com sabedoria): Dono aceita oferta abaixo do anunciado."
	if h.DetalhesCompleto != want {
		t.Fatalf("detalhes = %q", h.DetalhesCompleto)
	}
	if h.Caracteristicas != "Piscina, Varanda" {
		t.Fatalf("caracteristicas = %q", h.Caracteristicas)
	}
	if h.ImagemCapa == nil || *h.ImagemCapa != "cover.jpg" {
		t.Fatalf("imagem_capa = %v", h.ImagemCapa)
	}
}

func TestCatalogSearch_MissingExtras(t *testing.T) {
	r := &fakeCatalogRepo{props: []domain.Property{{
		ID:          "p2",
		Title:       "Kitnet Centro",
		Description: "Compacta e bem localizada.",
		AIContext:   "   ",
	}}}
	s := &CatalogService{Repo: r}

	got, err := s.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	h := got[0]
	want := "Descrição: Compacta e bem localizada.\n\nDetalhes Internos (Use com sabedoria): Sem dados extras."
	if h.DetalhesCompleto != want {
		t.Fatalf("detalhes fallback = %q", h.DetalhesCompleto)
	}
	if h.ImagemCapa != nil {
		t.Fatalf("no images must project null cover, got %v", *h.ImagemCapa)
	}
	if h.Caracteristicas != "" {
		t.Fatalf("caracteristicas = %q", h.Caracteristicas)
	}
}

func TestCatalogSearch_CustomLimitAndError(t *testing.T) {
	r := &fakeCatalogRepo{err: errors.New("db down")}
	s := &CatalogService{Repo: r, Limit: 3}

	if _, err := s.Search(context.Background(), "casa"); err == nil {
		t.Fatalf("expected repo error")
	}
	if r.gotLimit != 3 {
		t.Fatalf("limit = %d", r.gotLimit)
	}
}
