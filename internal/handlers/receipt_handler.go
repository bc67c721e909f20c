package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/hanifkurn/ventix/internal/helpers"
	"github.com/hanifkurn/ventix/internal/middleware"
	"github.com/hanifkurn/ventix/internal/models"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

func generateReceiptData(purchase *models.Purchase) string {
	secretKey := os.Getenv("RECEIPT_SECRET")
	signature := generateReceiptSignature(purchase.ID, purchase.GuestEmail, secretKey)
	return fmt.Sprintf("purchase:%s;email:%s;signature:%s",
		purchase.ID.String(),
		purchase.GuestEmail,
		signature,
	)
}

func generateReceiptSignature(purchaseID uuid.UUID, guestEmail, secretKey string) string {
	data := fmt.Sprintf("%s:%s", purchaseID.String(), guestEmail)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateReceiptQR renders a signed QR receipt for a committed purchase.
// Advisory only; the consistency contract lives in the ticketing service.
func GenerateReceiptQR(c *gin.Context) {
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

	qrImage, err := qrcode.Encode(generateReceiptData(&purchase), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
