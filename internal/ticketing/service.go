package ticketing

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanifkurn/ventix/internal/models"
)

// GuestInfo identifies the purchaser on a confirm request.
type GuestInfo struct {
	Name  string `json:"guest_name" binding:"required"`
	Email string `json:"guest_email" binding:"required,email"`
}

// Service coordinates reservations and cancellations over the catalog, the
// inventory ledger and the purchase store.
type Service struct {
	catalog   CatalogReader
	ledger    InventoryLedger
	purchases PurchaseStore
	tx        TxManager
}

func NewService(catalog CatalogReader, ledger InventoryLedger, purchases PurchaseStore, tx TxManager) *Service {
	return &Service{
		catalog:   catalog,
		ledger:    ledger,
		purchases: purchases,
		tx:        tx,
	}
}

// reservationTimeout bounds how long a confirm or cancel may wait on
// storage. Hitting it aborts the transaction; rollback plus compensation
// guarantee no event is left partially decremented.
const reservationTimeout = 10 * time.Second

func isEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

func (g GuestInfo) validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrGuestInfoRequired
	}
	if _, err := mail.ParseAddress(g.Email); err != nil {
		return ErrGuestInfoRequired
	}
	return nil
}

// ConfirmPurchase runs the strict commit protocol: every basket line is
// re-resolved fresh from the catalog and validated in input order, the
// first failing line rejects the whole request, then each line's quantity
// is reserved through the ledger's conditional decrement and the aggregate
// is appended, all inside one transaction. If anything fails after a
// decrement has been applied, the already-reserved quantities are released
// again before the error surfaces, so a failed confirm leaves the ledger
// exactly as it found it.
func (s *Service) ConfirmPurchase(ctx context.Context, guest GuestInfo, basket Basket) (models.Purchase, error) {
	if err := guest.validate(); err != nil {
		return models.Purchase{}, err
	}
	lines, err := basket.normalize()
	if err != nil {
		return models.Purchase{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, reservationTimeout)
	defer cancel()

	var committed models.Purchase
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		purchase := models.Purchase{
			ID:          uuid.New(),
			GuestName:   guest.Name,
			GuestEmail:  guest.Email,
			PurchasedAt: time.Now().UTC(),
			TotalCost:   decimal.Zero,
		}

		// Validating: every line is checked against a fresh catalog read,
		// in input order, before any tickets are taken. A validation
		// failure therefore never needs compensation.
		titles := make([]string, 0, len(lines))
		for _, line := range lines {
			event, err := s.catalog.GetEvent(ctx, line.EventID)
			if err != nil {
				if isEventNotFound(err) {
					return &UnknownEventError{EventID: line.EventID}
				}
				return err
			}
			if line.Quantity < 1 {
				return &InvalidQuantityError{Title: event.Title}
			}
			if event.AvailableTickets < line.Quantity {
				return &InsufficientTicketsError{Title: event.Title, Remaining: event.AvailableTickets}
			}

			titles = append(titles, event.Title)
			purchase.LineItems = append(purchase.LineItems, models.LineItem{
				EventID:    event.ID,
				PurchaseID: purchase.ID,
				Quantity:   line.Quantity,
				UnitPrice:  event.TicketPrice,
			})
			purchase.TotalCost = purchase.TotalCost.Add(
				event.TicketPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		// Reserving: conditional decrements, one per line. On any failure
		// the already-applied decrements are released again, so the ledger
		// is back to its pre-transaction counts whether or not the store
		// rolls back.
		reserved := make([]models.LineItem, 0, len(purchase.LineItems))
		compensate := func() {
			for _, r := range reserved {
				_ = s.ledger.Release(ctx, r.EventID, r.Quantity)
			}
		}

		for i, item := range purchase.LineItems {
			if err := s.ledger.Reserve(ctx, item.EventID, item.Quantity); err != nil {
				if errors.Is(err, ErrInsufficientTickets) {
					// Lost a race since the validation read; report the
					// freshest count we can get.
					iErr := &InsufficientTicketsError{Title: titles[i], Remaining: 0}
					if fresh, ferr := s.catalog.GetEvent(ctx, item.EventID); ferr == nil {
						iErr.Title = fresh.Title
						iErr.Remaining = fresh.AvailableTickets
					}
					err = iErr
				}
				compensate()
				return err
			}
			reserved = append(reserved, item)
		}

		if err := s.purchases.Append(ctx, &purchase); err != nil {
			compensate()
			return err
		}
		committed = purchase
		return nil
	})
	if err != nil {
		return models.Purchase{}, err
	}
	return committed, nil
}

// CancelPurchase restores every line's quantity to the ledger and removes
// the aggregate, as one unit. A second cancel of the same id fails with
// ErrPurchaseNotFound, which is what prevents restoring tickets twice.
func (s *Service) CancelPurchase(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, reservationTimeout)
	defer cancel()

	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		purchase, err := s.purchases.Get(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range purchase.LineItems {
			if err := s.ledger.Release(ctx, item.EventID, item.Quantity); err != nil {
				return err
			}
		}
		return s.purchases.Remove(ctx, id)
	})
}

// GetPurchase looks up one committed purchase.
func (s *Service) GetPurchase(ctx context.Context, id uuid.UUID) (models.Purchase, error) {
	return s.purchases.Get(ctx, id)
}

// ListPurchases returns committed purchases, newest first.
func (s *Service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.purchases.List(ctx)
}

// ListEvents exposes the catalog for display.
func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.catalog.ListEvents(ctx)
}

// GetEvent exposes a single catalog record for display.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	return s.catalog.GetEvent(ctx, id)
}
