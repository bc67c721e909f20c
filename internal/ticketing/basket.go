package ticketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Basket is one checkout attempt's raw selection, carried as two parallel
// lists the way the selection form submits them.
type Basket struct {
	EventIDs   []uuid.UUID `json:"event_ids"`
	Quantities []int       `json:"quantities"`
}

type basketLine struct {
	EventID  uuid.UUID
	Quantity int
}

// normalize pairs the two lists and merges repeated event ids by summing
// their quantities, keeping first-occurrence order. The line-item key is
// (event, purchase), so an event can only ever produce one line.
func (b Basket) normalize() ([]basketLine, error) {
	if b.EventIDs == nil || b.Quantities == nil || len(b.EventIDs) != len(b.Quantities) {
		return nil, ErrShapeMismatch
	}

	lines := make([]basketLine, 0, len(b.EventIDs))
	index := make(map[uuid.UUID]int, len(b.EventIDs))
	for i, eventID := range b.EventIDs {
		if at, seen := index[eventID]; seen {
			lines[at].Quantity += b.Quantities[i]
			continue
		}
		index[eventID] = len(lines)
		lines = append(lines, basketLine{EventID: eventID, Quantity: b.Quantities[i]})
	}
	return lines, nil
}

// PreviewLine is one priced row of a lenient basket preview.
type PreviewLine struct {
	EventID   uuid.UUID       `json:"event_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Preview prices a basket without touching inventory. Unknown event ids and
// non-positive quantities are dropped rather than rejected; only a malformed
// basket shape is an error. The commit path is strict about both. The
// asymmetry is deliberate: a guest fiddling with the selection form gets a
// best-effort total, a confirm gets a hard answer.
func (s *Service) Preview(ctx context.Context, basket Basket) ([]PreviewLine, decimal.Decimal, error) {
	lines, err := basket.normalize()
	if err != nil {
		return nil, decimal.Zero, err
	}

	preview := make([]PreviewLine, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		event, err := s.catalog.GetEvent(ctx, line.EventID)
		if err != nil {
			if isEventNotFound(err) {
				continue
			}
			return nil, decimal.Zero, err
		}

		subtotal := event.TicketPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		preview = append(preview, PreviewLine{
			EventID:   event.ID,
			Title:     event.Title,
			Quantity:  line.Quantity,
			UnitPrice: event.TicketPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return preview, total, nil
}
