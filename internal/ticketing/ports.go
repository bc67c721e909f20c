package ticketing

import (
	"context"

	"github.com/google/uuid"

	"github.com/hanifkurn/ventix/internal/models"
)

// CatalogReader supplies event records. It is read-only: the service never
// writes availability through it, only through the InventoryLedger, and both
// are backed by the same event rows.
type CatalogReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// InventoryLedger is the authoritative per-event ticket counter.
//
// Reserve must be a single conditional operation, "decrement by qty only if
// the current count is at least qty", never a read followed by a write. It
// returns ErrInsufficientTickets when the condition fails and
// ErrEventNotFound for unknown ids. Release is the unconditional inverse
// used by cancellation and by compensation.
type InventoryLedger interface {
	Reserve(ctx context.Context, eventID uuid.UUID, qty int) error
	Release(ctx context.Context, eventID uuid.UUID, qty int) error
}

// PurchaseStore is durable keyed storage for committed purchase aggregates.
// No business logic lives behind it.
type PurchaseStore interface {
	Append(ctx context.Context, purchase *models.Purchase) error
	Get(ctx context.Context, id uuid.UUID) (models.Purchase, error)
	List(ctx context.Context) ([]models.Purchase, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// TxManager runs fn as one durable unit. A nested call joins the
// surrounding transaction instead of opening a new one.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
