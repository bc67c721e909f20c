package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanifkurn/ventix/internal/middleware"
	"github.com/hanifkurn/ventix/internal/models"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

type memBackend struct {
	mu        sync.Mutex
	events    map[uuid.UUID]*models.Event
	purchases map[uuid.UUID]models.Purchase
}

func newMemBackend() *memBackend {
	return &memBackend{
		events:    make(map[uuid.UUID]*models.Event),
		purchases: make(map[uuid.UUID]models.Purchase),
	}
}

func (m *memBackend) seed(title, price string, available int) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	event := &models.Event{
		ID:               uuid.New(),
		Title:            title,
		TicketPrice:      decimal.RequireFromString(price),
		AvailableTickets: available,
	}
	m.events[event.ID] = event
	return event.ID
}

func (m *memBackend) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return models.Event{}, ticketing.ErrEventNotFound
	}
	return *event, nil
}

func (m *memBackend) ListEvents(ctx context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]models.Event, 0, len(m.events))
	for _, event := range m.events {
		events = append(events, *event)
	}
	return events, nil
}

func (m *memBackend) Reserve(ctx context.Context, eventID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return ticketing.ErrEventNotFound
	}
	if event.AvailableTickets < qty {
		return ticketing.ErrInsufficientTickets
	}
	event.AvailableTickets -= qty
	return nil
}

func (m *memBackend) Release(ctx context.Context, eventID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return ticketing.ErrEventNotFound
	}
	event.AvailableTickets += qty
	return nil
}

func (m *memBackend) Append(ctx context.Context, purchase *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[purchase.ID] = *purchase
	return nil
}

func (m *memBackend) Get(ctx context.Context, id uuid.UUID) (models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	purchase, ok := m.purchases[id]
	if !ok {
		return models.Purchase{}, ticketing.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (m *memBackend) List(ctx context.Context) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	purchases := make([]models.Purchase, 0, len(m.purchases))
	for _, purchase := range m.purchases {
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

func (m *memBackend) Remove(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.purchases[id]; !ok {
		return ticketing.ErrPurchaseNotFound
	}
	delete(m.purchases, id)
	return nil
}

func (m *memBackend) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestRouter(backend *memBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := ticketing.NewService(backend, backend, backend, backend)

	r := gin.New()
	r.Use(middleware.TicketingMiddleware(svc))
	v1 := r.Group("/v1")
	v1.POST("/purchases/preview", PreviewBasket)
	v1.POST("/purchases", ConfirmPurchase)
	v1.GET("/purchases", ListPurchases)
	v1.GET("/purchases/:id", GetPurchase)
	v1.DELETE("/purchases/:id", CancelPurchase)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPurchaseEndpoints(t *testing.T) {
	t.Run("confirm then cancel", func(t *testing.T) {
		backend := newMemBackend()
		event := backend.seed("Rock Night Live", "30.00", 3)
		r := newTestRouter(backend)

		w := doJSON(t, r, http.MethodPost, "/v1/purchases", gin.H{
			"guest_name":  "Ana Guest",
			"guest_email": "ana@example.com",
			"event_ids":   []string{event.String()},
			"quantities":  []int{2},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created struct {
			Purchase models.Purchase `json:"purchase"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !created.Purchase.TotalCost.Equal(decimal.RequireFromString("60.00")) {
			t.Fatalf("expected total 60.00, got %s", created.Purchase.TotalCost)
		}

		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/v1/purchases/%s", created.Purchase.ID), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if got := backend.events[event].AvailableTickets; got != 3 {
			t.Fatalf("expected inventory restored to 3, got %d", got)
		}

		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/v1/purchases/%s", created.Purchase.ID), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on second cancel, got %d", w.Code)
		}
	})

	t.Run("oversell maps to conflict", func(t *testing.T) {
		backend := newMemBackend()
		event := backend.seed("Rock Night Live", "30.00", 3)
		r := newTestRouter(backend)

		w := doJSON(t, r, http.MethodPost, "/v1/purchases", gin.H{
			"guest_name":  "Ana Guest",
			"guest_email": "ana@example.com",
			"event_ids":   []string{event.String()},
			"quantities":  []int{5},
		})
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
		if got := backend.events[event].AvailableTickets; got != 3 {
			t.Fatalf("expected inventory untouched, got %d", got)
		}
	})

	t.Run("preview is lenient about unknown events", func(t *testing.T) {
		backend := newMemBackend()
		event := backend.seed("UI/UX Workshop", "25.50", 8)
		r := newTestRouter(backend)

		w := doJSON(t, r, http.MethodPost, "/v1/purchases/preview", gin.H{
			"event_ids":  []string{uuid.NewString(), event.String()},
			"quantities": []int{4, 2},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var preview struct {
			Lines []ticketing.PreviewLine `json:"lines"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(preview.Lines) != 1 {
			t.Fatalf("expected unknown event dropped, got %d lines", len(preview.Lines))
		}
	})

	t.Run("missing guest info is a bad request", func(t *testing.T) {
		backend := newMemBackend()
		event := backend.seed("C# Fundamentals", "15.99", 10)
		r := newTestRouter(backend)

		w := doJSON(t, r, http.MethodPost, "/v1/purchases", gin.H{
			"guest_email": "ana@example.com",
			"event_ids":   []string{event.String()},
			"quantities":  []int{1},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
