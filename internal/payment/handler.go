package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// GetLinks godoc
// @Summary      Get payment links
// @Tags         payment
// @Produce      json
// @Success      200  {object}  Links
// @Failure      500  {object}  gin.H
// @Router       /api/payment-links [get]
func (h *Handler) GetLinks(c *gin.Context) {
	links, err := h.repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// UpdateLinks godoc
// @Summary      Update payment links
// @Tags         payment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateLinksRequest  true  "Payment links"
// @Success      200      {object}  Links
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/payment-links [put]
func (h *Handler) UpdateLinks(c *gin.Context) {
	var req UpdateLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), &Links{
		Stripe:        req.Stripe,
		Paypal:        req.Paypal,
		Twint:         req.Twint,
		CoachWhatsapp: req.CoachWhatsapp,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment links"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
