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

// The event surface is read-only: the catalog is managed elsewhere and this
// service only displays it and sells against it.

func ListEvents(c *gin.Context) {
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	events, err := svc.ListEvents(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	event, err := svc.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, ticketing.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}
