package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanifkurn/ventix/internal/helpers"
	"github.com/hanifkurn/ventix/internal/middleware"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

type PreviewRequest struct {
	EventIDs   []uuid.UUID `json:"event_ids"`
	Quantities []int       `json:"quantities"`
}

type ConfirmRequest struct {
	GuestName  string      `json:"guest_name" binding:"required"`
	GuestEmail string      `json:"guest_email" binding:"required,email"`
	EventIDs   []uuid.UUID `json:"event_ids"`
	Quantities []int       `json:"quantities"`
}

// PreviewBasket prices a basket without reserving anything. Unknown events
// and non-positive quantities are dropped from the preview, matching the
// lenient selection-form behavior; confirm is the strict path.
func PreviewBasket(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket selection.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	lines, total, err := svc.Preview(c.Request.Context(), ticketing.Basket{
		EventIDs:   req.EventIDs,
		Quantities: req.Quantities,
	})
	if err != nil {
		if errors.Is(err, ticketing.ErrShapeMismatch) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket selection.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error previewing basket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines":      lines,
		"total_cost": total,
	})
}

// ConfirmPurchase commits the basket: validates every line against live
// inventory, decrements the counts and stores the purchase as one unit.
func ConfirmPurchase(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	purchase, err := svc.ConfirmPurchase(c.Request.Context(),
		ticketing.GuestInfo{Name: req.GuestName, Email: req.GuestEmail},
		ticketing.Basket{EventIDs: req.EventIDs, Quantities: req.Quantities},
	)
	if err != nil {
		respondWithPurchaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Purchase confirmed successfully.",
		"purchase": purchase,
	})
}

// CancelPurchase restores every line's tickets and removes the purchase.
func CancelPurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.CancelPurchase(c.Request.Context(), purchaseID); err != nil {
		if errors.Is(err, ticketing.ErrPurchaseNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel purchase.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase deleted and tickets restored successfully.",
	})
}

func ListPurchases(c *gin.Context) {
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	purchases, err := svc.ListPurchases(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchases.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func GetPurchase(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	purchase, err := svc.GetPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, ticketing.ErrPurchaseNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Purchase not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchase.")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

func respondWithPurchaseError(c *gin.Context, err error) {
	var (
		unknownEvent *ticketing.UnknownEventError
		invalidQty   *ticketing.InvalidQuantityError
		insufficient *ticketing.InsufficientTicketsError
	)
	switch {
	case errors.Is(err, ticketing.ErrShapeMismatch):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event selection.")
	case errors.Is(err, ticketing.ErrGuestInfoRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &unknownEvent):
		helpers.RespondWithError(c, http.StatusNotFound, unknownEvent.Error())
	case errors.As(err, &invalidQty):
		helpers.RespondWithError(c, http.StatusBadRequest, invalidQty.Error())
	case errors.As(err, &insufficient):
		helpers.RespondWithError(c, http.StatusConflict, insufficient.Error())
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm purchase.")
	}
}
