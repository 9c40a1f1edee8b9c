package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/krm/catalog-api/internal/core/domain"
)

type stubHomeService struct {
	saved []domain.Home
}

func (s *stubHomeService) List(context.Context) ([]domain.Home, error) { return s.saved, nil }

func (s *stubHomeService) Get(_ context.Context, id string) (domain.Home, error) {
	for _, h := range s.saved {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Home{}, domain.ErrHomeNotFound
}

func (s *stubHomeService) Save(_ context.Context, h domain.Home) (domain.Home, error) {
	s.saved = append(s.saved, h)
	return h, nil
}

func TestHomeHandler_SaveThenGet(t *testing.T) {
	stub := &stubHomeService{}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/homes", strings.NewReader(`{"id":"h1","place":"Chennai","name":"KRM"}`))
	if err := h.Save(c); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.saved) != 1 || stub.saved[0].Place != "Chennai" {
		t.Fatalf("unexpected save: %d %+v", rec.Code, stub.saved)
	}

	c, rec = newJSONContext(newEcho(), http.MethodGet, "/homes/h1", nil)
	c.SetParamNames("id")
	c.SetParamValues("h1")
	if err := h.Get(c); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"name":"KRM"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestHomeHandler_Get_NotFound(t *testing.T) {
	c, _ := newJSONContext(newEcho(), http.MethodGet, "/homes/none", nil)
	c.SetParamNames("id")
	c.SetParamValues("none")
	if err := NewHomeHandler(&stubHomeService{}).Get(c); !errors.Is(err, domain.ErrHomeNotFound) {
		t.Fatalf("expected ErrHomeNotFound, got %v", err)
	}
}

func TestHomeHandler_Save_MissingID(t *testing.T) {
	c, _ := newJSONContext(newEcho(), http.MethodPost, "/homes", strings.NewReader(`{"place":"x"}`))
	if err := NewHomeHandler(&stubHomeService{}).Save(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
