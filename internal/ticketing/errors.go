package ticketing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrShapeMismatch is returned when the event id and quantity lists
	// differ in length or either is missing.
	ErrShapeMismatch = errors.New("event ids and quantities do not match")

	// ErrGuestInfoRequired is returned when the guest name or email is
	// missing or the email is not a plausible address.
	ErrGuestInfoRequired = errors.New("guest name and a valid email are required")

	// ErrEventNotFound is reported by the catalog and the ledger for
	// unknown event ids.
	ErrEventNotFound = errors.New("event not found")

	// ErrInsufficientTickets is reported by the ledger when a conditional
	// decrement fails.
	ErrInsufficientTickets = errors.New("not enough tickets available")

	// ErrPurchaseNotFound is reported by the purchase store.
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// UnknownEventError rejects a strict-commit basket line whose event id
// does not resolve in the catalog.
type UnknownEventError struct {
	EventID uuid.UUID
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("Event with ID %s not found.", e.EventID)
}

func (e *UnknownEventError) Unwrap() error { return ErrEventNotFound }

// InvalidQuantityError rejects a strict-commit basket line with a
// non-positive quantity.
type InvalidQuantityError struct {
	Title string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Invalid ticket quantity for %s.", e.Title)
}

// InsufficientTicketsError rejects a strict-commit basket line asking for
// more tickets than the event has left. Remaining is the count observed
// at validation time.
type InsufficientTicketsError struct {
	Title     string
	Remaining int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("Not enough tickets left for %s. Only %d remaining.", e.Title, e.Remaining)
}

func (e *InsufficientTicketsError) Unwrap() error { return ErrInsufficientTickets }
