package ticketing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanifkurn/ventix/internal/models"
)

// fakeInventory backs both the catalog reader and the inventory ledger with
// the same event records, the way the real stores share one events table.
type fakeInventory struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event

	// reserveErr forces the next Reserve for an event to fail, to simulate
	// losing a race between the validation read and the decrement.
	reserveErr map[uuid.UUID]error
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		events:     make(map[uuid.UUID]*models.Event),
		reserveErr: make(map[uuid.UUID]error),
	}
}

func (f *fakeInventory) seed(title string, price string, available int) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	event := &models.Event{
		ID:               uuid.New(),
		Title:            title,
		TicketPrice:      decimal.RequireFromString(price),
		AvailableTickets: available,
	}
	f.events[event.ID] = event
	return event.ID
}

func (f *fakeInventory) available(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[id].AvailableTickets
}

func (f *fakeInventory) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return models.Event{}, ErrEventNotFound
	}
	return *event, nil
}

func (f *fakeInventory) ListEvents(ctx context.Context) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]models.Event, 0, len(f.events))
	for _, event := range f.events {
		events = append(events, *event)
	}
	return events, nil
}

func (f *fakeInventory) Reserve(ctx context.Context, eventID uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.reserveErr[eventID]; ok {
		delete(f.reserveErr, eventID)
		return err
	}
	event, ok := f.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if event.AvailableTickets < qty {
		return ErrInsufficientTickets
	}
	event.AvailableTickets -= qty
	return nil
}

func (f *fakeInventory) Release(ctx context.Context, eventID uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	event.AvailableTickets += qty
	return nil
}

type fakePurchaseStore struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]models.Purchase

	appendErr error
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{purchases: make(map[uuid.UUID]models.Purchase)}
}

func (f *fakePurchaseStore) Append(ctx context.Context, purchase *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.purchases[purchase.ID] = *purchase
	return nil
}

func (f *fakePurchaseStore) Get(ctx context.Context, id uuid.UUID) (models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	purchase, ok := f.purchases[id]
	if !ok {
		return models.Purchase{}, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (f *fakePurchaseStore) List(ctx context.Context) ([]models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	purchases := make([]models.Purchase, 0, len(f.purchases))
	for _, purchase := range f.purchases {
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

func (f *fakePurchaseStore) Remove(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.purchases[id]; !ok {
		return ErrPurchaseNotFound
	}
	delete(f.purchases, id)
	return nil
}

// passthroughTx has no rollback, so these tests exercise the coordinator's
// compensation paths rather than relying on storage transactions.
type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(inv *fakeInventory, store *fakePurchaseStore) *Service {
	return NewService(inv, inv, store, passthroughTx{})
}
