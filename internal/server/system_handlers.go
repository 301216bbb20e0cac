package server

import (
	"net/http"

	"afroboost/internal/api"
	"afroboost/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(dispatcher *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:            "ok",
			NotificationQueue: dispatcher.QueueLength(c.Request.Context()),
		})
	}
}

// @Summary      Queue a test notification
// @Tags         system
// @Produce      json
// @Param        phone query string true "Recipient WhatsApp number"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Router       /test-notification [get]
func TestNotification(outbound notify.Outbound) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "phone parameter required"})
			return
		}

		link := notify.WhatsAppLink(phone, "Test de notification Afroboost")
		if err := outbound.Open(link); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Notification sent"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
