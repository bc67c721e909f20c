package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hanifkurn/ventix/internal/ticketing"
)

func TicketingMiddleware(svc *ticketing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ticketing", svc)
		c.Next()
	}
}

func GetTicketingService(c *gin.Context) *ticketing.Service {
	svc, exists := c.Get("ticketing")
	if !exists {
		return nil
	}
	return svc.(*ticketing.Service)
}
